package application

import (
	"context"

	"github.com/google/uuid"

	"soundreel-backend/internal/domains/application/model"
)

// Repository is the data access contract for creator applications.
type Repository interface {
	// Create inserts a pending application. Returns ErrApplicationExists
	// when the user already holds a pending or approved application (the
	// partial unique index is the authoritative check, so concurrent
	// submissions cannot both win).
	Create(ctx context.Context, app *model.Application) error

	// FindByID returns the application or ErrApplicationNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error)

	// FindLatestByUser returns the user's most recent application or
	// ErrApplicationNotFound.
	FindLatestByUser(ctx context.Context, userID string) (*model.Application, error)

	// List returns a page of applications plus the real total. Pending
	// filter orders oldest-first (review queue fairness), otherwise
	// newest-first.
	List(ctx context.Context, req ListApplicationsRequest) ([]model.Application, int, error)

	// Review transitions pending -> approved|rejected exactly once. On
	// approval the applicant's role is promoted to creator inside the same
	// transaction; if the promotion cannot be applied the review rolls
	// back. Returns ErrApplicationNotFound when the row is absent and
	// ErrAlreadyReviewed when it is no longer pending.
	Review(ctx context.Context, id uuid.UUID, reviewerID string, decision model.Status, notes *string) (*ReviewOutcome, error)
}
