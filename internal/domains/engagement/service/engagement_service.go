package service

import (
	"context"

	"github.com/google/uuid"

	contentmodel "soundreel-backend/internal/domains/content/model"
	"soundreel-backend/internal/domains/engagement"
	"soundreel-backend/internal/domains/engagement/model"
)

type engagementService struct {
	repo engagement.Repository
}

func NewEngagementService(repo engagement.Repository) engagement.Service {
	return &engagementService{repo: repo}
}

func (s *engagementService) ToggleLike(ctx context.Context, userID string, contentType contentmodel.ContentType, contentID uuid.UUID) (*engagement.LikeResult, error) {
	return s.repo.ToggleLike(ctx, userID, contentType, contentID)
}

func (s *engagementService) Follow(ctx context.Context, followerID, followingID string) (*model.Follow, error) {
	if followerID == followingID {
		return nil, engagement.ErrCannotFollowSelf
	}
	return s.repo.Follow(ctx, followerID, followingID)
}

func (s *engagementService) Unfollow(ctx context.Context, followerID, followingID string) error {
	// Unfollowing yourself is as meaningless as it is harmless.
	return s.repo.Unfollow(ctx, followerID, followingID)
}

func (s *engagementService) ListFollowers(ctx context.Context, userID string, req engagement.ListFollowsRequest) ([]engagement.FollowEntryDTO, int, error) {
	req.SetDefaults()
	return s.repo.ListFollowers(ctx, userID, req.Page, req.Limit)
}

func (s *engagementService) ListFollowing(ctx context.Context, userID string, req engagement.ListFollowsRequest) ([]engagement.FollowEntryDTO, int, error) {
	req.SetDefaults()
	return s.repo.ListFollowing(ctx, userID, req.Page, req.Limit)
}
