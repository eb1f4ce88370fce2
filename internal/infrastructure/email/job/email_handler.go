package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"soundreel-backend/internal/infrastructure/email"
)

// NotificationHandler processes queued notification emails in the worker.
type NotificationHandler struct {
	sender email.Sender
}

func NewNotificationHandler(sender email.Sender) *NotificationHandler {
	return &NotificationHandler{sender: sender}
}

func (h *NotificationHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload email.NotificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal notification payload")
		return asynq.SkipRetry
	}

	if err := h.sender.Send(ctx, payload); err != nil {
		log.Error().Err(err).
			Str("kind", string(payload.Kind)).
			Str("recipient", payload.Recipient).
			Msg("failed to send notification email")
		return fmt.Errorf("send notification: %w", err)
	}

	log.Info().
		Str("kind", string(payload.Kind)).
		Str("recipient", payload.Recipient).
		Msg("notification email sent")
	return nil
}
