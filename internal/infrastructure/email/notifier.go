package email

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Kind selects the notification template.
type Kind string

const (
	KindWaitlistApproved Kind = "waitlist-approved"
	KindCreatorApproved  Kind = "creator-approved"
	KindCreatorRejected  Kind = "creator-rejected"
)

// TypeNotification is the asynq task type shared by API and worker.
const TypeNotification = "email:notification"

// NotificationPayload travels through the queue to the worker.
type NotificationPayload struct {
	Kind      Kind              `json:"kind"`
	Recipient string            `json:"recipient"`
	Data      map[string]string `json:"data,omitempty"`
}

// Notifier is a fire-and-forget side channel. Notify must never fail the
// state transition that triggered it; implementations log and swallow their
// own errors.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, recipient string, data map[string]string)
}

// asynqNotifier enqueues notification tasks for the worker binary.
type asynqNotifier struct {
	client *asynq.Client
}

func NewAsynqNotifier(redisAddr, redisPassword string, redisDB int) Notifier {
	return &asynqNotifier{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

func (n *asynqNotifier) Notify(ctx context.Context, kind Kind, recipient string, data map[string]string) {
	payload, err := json.Marshal(NotificationPayload{
		Kind:      kind,
		Recipient: recipient,
		Data:      data,
	})
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Msg("failed to marshal notification payload")
		return
	}

	task := asynq.NewTask(TypeNotification, payload)
	if _, err := n.client.EnqueueContext(ctx, task, asynq.MaxRetry(5)); err != nil {
		log.Error().Err(err).
			Str("kind", string(kind)).
			Str("recipient", recipient).
			Msg("failed to enqueue notification email")
	}
}

// NoopNotifier is used in tests and when no broker is configured.
type NoopNotifier struct{}

func (NoopNotifier) Notify(ctx context.Context, kind Kind, recipient string, data map[string]string) {}
