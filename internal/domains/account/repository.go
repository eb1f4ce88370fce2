package account

import (
	"context"

	"soundreel-backend/internal/domains/account/model"
)

// Repository is the data access contract for the accounts/profiles aggregate.
// State transitions are conditional writes: the WHERE clause carries the
// expected current state and zero affected rows means the predicate failed.
type Repository interface {
	// EnsureAccount inserts the account (waitlisted listener) and an empty
	// profile row on first contact, or returns the existing account.
	EnsureAccount(ctx context.Context, id, email string) (*model.Account, error)

	// FindByID returns the account or ErrAccountNotFound.
	FindByID(ctx context.Context, id string) (*model.Account, error)

	// FindWithProfile returns the account together with its profile.
	FindWithProfile(ctx context.Context, id string) (*model.Account, *model.Profile, error)

	// UpdateProfile applies a partial profile update.
	// Returns ErrUsernameTaken when the username unique constraint trips.
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*model.Profile, error)

	// Search matches username OR artist name case-insensitively, restricted
	// to active accounts, newest first. Returns the page and the real total.
	Search(ctx context.Context, query string, page, limit int) ([]SearchResultDTO, int, error)

	// GetPublicProfile joins follower/following counts and, when viewerID is
	// set and differs from id, whether the viewer follows this account.
	GetPublicProfile(ctx context.Context, id string, viewerID *string) (*PublicProfileDTO, error)

	// List is the admin account listing with role/status filters.
	List(ctx context.Context, req ListAccountsRequest) ([]AccountWithProfile, int, error)

	// ApproveWaitlisted transitions waitlisted -> active. Returns
	// ErrNotWaitlisted when the account is absent or not currently
	// waitlisted, which also defuses double-approval races.
	ApproveWaitlisted(ctx context.Context, id string) (*model.Account, error)

	// BatchApproveWaitlisted activates the count oldest waitlisted accounts
	// by created_at ascending. Returns the accounts actually approved, which
	// may be fewer than requested.
	BatchApproveWaitlisted(ctx context.Context, count int) ([]model.Account, error)

	// Ban transitions any live account to banned, recording reason and time.
	Ban(ctx context.Context, id string, reason *string) (*model.Account, error)

	// Unban transitions banned -> active and clears the ban fields. Returns
	// ErrNotBanned when the account is absent or not currently banned.
	Unban(ctx context.Context, id string) (*model.Account, error)
}
