package account

import (
	"context"

	"soundreel-backend/internal/domains/account/model"
)

// Service is the business logic contract for the account aggregate.
type Service interface {
	// EnsureAccount backs the auth middleware: load-or-create on first
	// authenticated contact.
	EnsureAccount(ctx context.Context, id, email string) (*model.Account, error)

	// Self service
	GetMe(ctx context.Context, id string) (*AccountDTO, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*AccountDTO, error)

	// Public reads
	Search(ctx context.Context, req SearchRequest) ([]SearchResultDTO, int, error)
	GetPublicProfile(ctx context.Context, id string, viewerID *string) (*PublicProfileDTO, error)

	// Admin moderation
	ListAccounts(ctx context.Context, req ListAccountsRequest) ([]AccountDTO, int, error)
	ApproveWaitlisted(ctx context.Context, id string) (*AccountDTO, error)
	BatchApproveWaitlisted(ctx context.Context, req BatchApproveRequest) (*BatchApproveResult, error)
	Ban(ctx context.Context, adminID, targetID string, req BanRequest) (*AccountDTO, error)
	Unban(ctx context.Context, id string) (*AccountDTO, error)
}
