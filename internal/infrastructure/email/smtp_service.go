package email

import (
	"context"
	"fmt"
	"net/smtp"
)

// Sender delivers a rendered notification. Split from Notifier so the worker
// can deliver synchronously while the API only enqueues.
type Sender interface {
	Send(ctx context.Context, payload NotificationPayload) error
}

type smtpSender struct {
	smtpAddr string
	from     string
}

func NewSMTPSender(host, port, from string) Sender {
	return &smtpSender{
		smtpAddr: host + ":" + port,
		from:     from,
	}
}

func (s *smtpSender) Send(ctx context.Context, payload NotificationPayload) error {
	subject, body, err := render(payload)
	if err != nil {
		return err
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.from, payload.Recipient, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.from, []string{payload.Recipient}, msg); err != nil {
		return fmt.Errorf("send %s email: %w", payload.Kind, err)
	}
	return nil
}

func render(payload NotificationPayload) (subject, body string, err error) {
	switch payload.Kind {
	case KindWaitlistApproved:
		subject = "Your SoundReel account is active"
		body = "Good news - your account has been approved. You can now browse, like and follow creators on SoundReel."
	case KindCreatorApproved:
		name := payload.Data["artist_name"]
		subject = "Welcome to SoundReel creators"
		body = fmt.Sprintf("Your creator application for %q has been approved. You can start posting tracks and reels right away.", name)
	case KindCreatorRejected:
		subject = "Update on your creator application"
		body = "Your creator application was not approved this time."
		if reason := payload.Data["reason"]; reason != "" {
			body += "\n\nReviewer notes: " + reason
		}
	default:
		return "", "", fmt.Errorf("unknown notification kind %q", payload.Kind)
	}
	return subject, body, nil
}
