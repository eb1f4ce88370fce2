package application

import (
	"context"

	"github.com/google/uuid"

	accountmodel "soundreel-backend/internal/domains/account/model"
	"soundreel-backend/internal/domains/application/model"
)

// Service is the creator application workflow.
type Service interface {
	// Submit files a pending application for the user. ErrNotEligible for
	// any caller who is not a listener.
	Submit(ctx context.Context, userID string, role accountmodel.Role, req SubmitApplicationRequest) (*model.Application, error)

	// GetMine returns the caller's most recent application.
	GetMine(ctx context.Context, userID string) (*model.Application, error)

	// List returns applications for admin review, paginated.
	List(ctx context.Context, req ListApplicationsRequest) ([]model.Application, int, error)

	// Review decides a pending application and notifies the applicant.
	Review(ctx context.Context, id uuid.UUID, reviewerID string, req ReviewApplicationRequest) (*model.Application, error)
}
