package engagement

import (
	"context"

	"github.com/google/uuid"

	contentmodel "soundreel-backend/internal/domains/content/model"
	"soundreel-backend/internal/domains/engagement/model"
)

// Service is the like and follow surface.
type Service interface {
	ToggleLike(ctx context.Context, userID string, contentType contentmodel.ContentType, contentID uuid.UUID) (*LikeResult, error)

	Follow(ctx context.Context, followerID, followingID string) (*model.Follow, error)
	Unfollow(ctx context.Context, followerID, followingID string) error

	ListFollowers(ctx context.Context, userID string, req ListFollowsRequest) ([]FollowEntryDTO, int, error)
	ListFollowing(ctx context.Context, userID string, req ListFollowsRequest) ([]FollowEntryDTO, int, error)
}
