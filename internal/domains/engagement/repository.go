package engagement

import (
	"context"

	"github.com/google/uuid"

	contentmodel "soundreel-backend/internal/domains/content/model"
	"soundreel-backend/internal/domains/engagement/model"
)

// Repository is the data access contract for likes and follows.
type Repository interface {
	// ToggleLike flips the user's like on the content and keeps like_count
	// in lockstep, all in one transaction. Returns
	// content.ErrContentNotFound when the target row does not exist.
	ToggleLike(ctx context.Context, userID string, contentType contentmodel.ContentType, contentID uuid.UUID) (*LikeResult, error)

	// Follow inserts the edge and returns it. ErrTargetNotFound when the
	// followee does not exist, ErrAlreadyFollowing on a duplicate.
	Follow(ctx context.Context, followerID, followingID string) (*model.Follow, error)

	// Unfollow is idempotent; removing an absent edge is a no-op.
	Unfollow(ctx context.Context, followerID, followingID string) error

	ListFollowers(ctx context.Context, userID string, page, limit int) ([]FollowEntryDTO, int, error)
	ListFollowing(ctx context.Context, userID string, page, limit int) ([]FollowEntryDTO, int, error)
}
