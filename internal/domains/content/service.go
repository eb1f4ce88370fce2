package content

import (
	"context"

	"github.com/google/uuid"

	"soundreel-backend/internal/domains/content/model"
)

// Service is the content publishing and discovery surface.
type Service interface {
	// CreateTrack uploads media first and inserts second; a failed insert
	// triggers best-effort cleanup of what was uploaded.
	CreateTrack(ctx context.Context, ownerID string, req CreateTrackRequest) (*model.Track, error)
	CreateReel(ctx context.Context, ownerID string, req CreateReelRequest) (*model.Reel, error)

	GetTrack(ctx context.Context, id uuid.UUID, viewerID *string) (*TrackDTO, error)
	GetReel(ctx context.Context, id uuid.UUID, viewerID *string) (*ReelDTO, error)

	ListTracks(ctx context.Context, req ListContentRequest, viewerID *string) ([]TrackDTO, int, error)
	ListReels(ctx context.Context, req ListContentRequest, viewerID *string) ([]ReelDTO, int, error)
	SearchTracks(ctx context.Context, req SearchTracksRequest, viewerID *string) ([]TrackDTO, int, error)

	ListMyTracks(ctx context.Context, ownerID string, req ListContentRequest) ([]model.Track, int, error)
	ListMyReels(ctx context.Context, ownerID string, req ListContentRequest) ([]model.Reel, int, error)

	UpdateTrack(ctx context.Context, id uuid.UUID, ownerID string, req UpdateTrackRequest) (*model.Track, error)
	UpdateReel(ctx context.Context, id uuid.UUID, ownerID string, req UpdateReelRequest) (*model.Reel, error)

	// DeleteTrack and DeleteReel remove the row first, then the media
	// best-effort. AdminDelete* skips the ownership check.
	DeleteTrack(ctx context.Context, id uuid.UUID, ownerID string) error
	DeleteReel(ctx context.Context, id uuid.UUID, ownerID string) error
	AdminDeleteTrack(ctx context.Context, id uuid.UUID) error
	AdminDeleteReel(ctx context.Context, id uuid.UUID) error

	// RecordPlay and RecordView are best-effort counters; failures are
	// logged and never surface to the caller.
	RecordPlay(ctx context.Context, id uuid.UUID)
	RecordView(ctx context.Context, id uuid.UUID)
}
