package content

import (
	"context"

	"github.com/google/uuid"

	"soundreel-backend/internal/domains/content/model"
)

// Repository is the data access contract for tracks and reels.
type Repository interface {
	CreateTrack(ctx context.Context, track *model.Track) error
	CreateReel(ctx context.Context, reel *model.Reel) error

	// GetTrackByID returns the track regardless of is_active so owners and
	// direct links keep working; viewerID attaches is_liked when present.
	GetTrackByID(ctx context.Context, id uuid.UUID, viewerID *string) (*TrackDTO, error)
	GetReelByID(ctx context.Context, id uuid.UUID, viewerID *string) (*ReelDTO, error)

	// ListTracks and ListReels return active rows newest-first with the real
	// total.
	ListTracks(ctx context.Context, page, limit int, viewerID *string) ([]TrackDTO, int, error)
	ListReels(ctx context.Context, page, limit int, viewerID *string) ([]ReelDTO, int, error)

	// SearchTracks matches title ILIKE; empty query lists everything active.
	SearchTracks(ctx context.Context, query string, page, limit int, viewerID *string) ([]TrackDTO, int, error)

	// ListTracksByOwner and ListReelsByOwner include inactive rows; this is
	// the owner's dashboard view.
	ListTracksByOwner(ctx context.Context, ownerID string, page, limit int) ([]model.Track, int, error)
	ListReelsByOwner(ctx context.Context, ownerID string, page, limit int) ([]model.Reel, int, error)

	// UpdateTrack and UpdateReel apply partial metadata edits scoped to the
	// owner; a wrong owner collapses to ErrContentNotFound.
	UpdateTrack(ctx context.Context, id uuid.UUID, ownerID string, req UpdateTrackRequest) (*model.Track, error)
	UpdateReel(ctx context.Context, id uuid.UUID, ownerID string, req UpdateReelRequest) (*model.Reel, error)

	// DeleteTrack and DeleteReel remove the row and return its media
	// locators for cleanup. A nil ownerID is the admin path and bypasses
	// ownership.
	DeleteTrack(ctx context.Context, id uuid.UUID, ownerID *string) ([]string, error)
	DeleteReel(ctx context.Context, id uuid.UUID, ownerID *string) ([]string, error)

	IncrementPlayCount(ctx context.Context, id uuid.UUID) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}
