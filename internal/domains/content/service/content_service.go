package service

import (
	"context"

	"github.com/google/uuid"

	"soundreel-backend/internal/domains/content"
	"soundreel-backend/internal/domains/content/model"
	"soundreel-backend/internal/infrastructure/storage"
	"soundreel-backend/pkg/logger"
)

type contentService struct {
	repo    content.Repository
	gateway storage.MediaGateway
}

func NewContentService(repo content.Repository, gateway storage.MediaGateway) content.Service {
	return &contentService{
		repo:    repo,
		gateway: gateway,
	}
}

// ========================================
// PUBLISHING
// ========================================

func (s *contentService) CreateTrack(ctx context.Context, ownerID string, req content.CreateTrackRequest) (*model.Track, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Audio == nil {
		return nil, content.ErrMediaRequired
	}

	// Validate everything before touching the gateway so a bad cover does
	// not leave an orphaned audio object behind.
	if err := storage.ValidateMedia(storage.CategoryAudio, req.Audio.Size, req.Audio.ContentType); err != nil {
		return nil, err
	}
	if req.Cover != nil {
		if err := storage.ValidateMedia(storage.CategoryImage, req.Cover.Size, req.Cover.ContentType); err != nil {
			return nil, err
		}
	}

	audioURL, err := s.gateway.Put(ctx, storage.CategoryAudio, ownerID, req.Audio.Data, req.Audio.ContentType)
	if err != nil {
		return nil, err
	}

	var coverURL *string
	if req.Cover != nil {
		url, err := s.gateway.Put(ctx, storage.CategoryImage, ownerID, req.Cover.Data, req.Cover.ContentType)
		if err != nil {
			s.cleanup(ctx, audioURL)
			return nil, err
		}
		coverURL = &url
	}

	track := &model.Track{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Title:           req.Title,
		DurationSeconds: req.DurationSeconds,
		AudioURL:        audioURL,
		CoverURL:        coverURL,
	}

	if err := s.repo.CreateTrack(ctx, track); err != nil {
		s.cleanup(ctx, audioURL)
		if coverURL != nil {
			s.cleanup(ctx, *coverURL)
		}
		return nil, err
	}

	return track, nil
}

func (s *contentService) CreateReel(ctx context.Context, ownerID string, req content.CreateReelRequest) (*model.Reel, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Video == nil {
		return nil, content.ErrMediaRequired
	}

	if err := storage.ValidateMedia(storage.CategoryVideo, req.Video.Size, req.Video.ContentType); err != nil {
		return nil, err
	}

	videoURL, err := s.gateway.Put(ctx, storage.CategoryVideo, ownerID, req.Video.Data, req.Video.ContentType)
	if err != nil {
		return nil, err
	}

	reel := &model.Reel{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Caption:  req.Caption,
		VideoURL: videoURL,
	}

	if err := s.repo.CreateReel(ctx, reel); err != nil {
		s.cleanup(ctx, videoURL)
		return nil, err
	}

	return reel, nil
}

// cleanup removes an uploaded object after a failed insert. The error stays
// in the logs; the caller's failure is the insert, not the cleanup.
func (s *contentService) cleanup(ctx context.Context, locator string) {
	if err := s.gateway.Delete(ctx, locator); err != nil {
		logger.Warn("orphaned media cleanup failed", map[string]interface{}{
			"locator": locator,
			"error":   err.Error(),
		})
	}
}

// ========================================
// DISCOVERY
// ========================================

func (s *contentService) GetTrack(ctx context.Context, id uuid.UUID, viewerID *string) (*content.TrackDTO, error) {
	return s.repo.GetTrackByID(ctx, id, viewerID)
}

func (s *contentService) GetReel(ctx context.Context, id uuid.UUID, viewerID *string) (*content.ReelDTO, error) {
	return s.repo.GetReelByID(ctx, id, viewerID)
}

func (s *contentService) ListTracks(ctx context.Context, req content.ListContentRequest, viewerID *string) ([]content.TrackDTO, int, error) {
	req.SetDefaults()
	return s.repo.ListTracks(ctx, req.Page, req.Limit, viewerID)
}

func (s *contentService) ListReels(ctx context.Context, req content.ListContentRequest, viewerID *string) ([]content.ReelDTO, int, error) {
	req.SetDefaults()
	return s.repo.ListReels(ctx, req.Page, req.Limit, viewerID)
}

func (s *contentService) SearchTracks(ctx context.Context, req content.SearchTracksRequest, viewerID *string) ([]content.TrackDTO, int, error) {
	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}
	return s.repo.SearchTracks(ctx, req.Query, req.Page, req.Limit, viewerID)
}

func (s *contentService) ListMyTracks(ctx context.Context, ownerID string, req content.ListContentRequest) ([]model.Track, int, error) {
	req.SetDefaults()
	return s.repo.ListTracksByOwner(ctx, ownerID, req.Page, req.Limit)
}

func (s *contentService) ListMyReels(ctx context.Context, ownerID string, req content.ListContentRequest) ([]model.Reel, int, error) {
	req.SetDefaults()
	return s.repo.ListReelsByOwner(ctx, ownerID, req.Page, req.Limit)
}

// ========================================
// EDITS AND DELETES
// ========================================

func (s *contentService) UpdateTrack(ctx context.Context, id uuid.UUID, ownerID string, req content.UpdateTrackRequest) (*model.Track, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateTrack(ctx, id, ownerID, req)
}

func (s *contentService) UpdateReel(ctx context.Context, id uuid.UUID, ownerID string, req content.UpdateReelRequest) (*model.Reel, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateReel(ctx, id, ownerID, req)
}

func (s *contentService) DeleteTrack(ctx context.Context, id uuid.UUID, ownerID string) error {
	locators, err := s.repo.DeleteTrack(ctx, id, &ownerID)
	if err != nil {
		return err
	}
	s.deleteMedia(ctx, locators)
	return nil
}

func (s *contentService) DeleteReel(ctx context.Context, id uuid.UUID, ownerID string) error {
	locators, err := s.repo.DeleteReel(ctx, id, &ownerID)
	if err != nil {
		return err
	}
	s.deleteMedia(ctx, locators)
	return nil
}

func (s *contentService) AdminDeleteTrack(ctx context.Context, id uuid.UUID) error {
	locators, err := s.repo.DeleteTrack(ctx, id, nil)
	if err != nil {
		return err
	}
	s.deleteMedia(ctx, locators)
	return nil
}

func (s *contentService) AdminDeleteReel(ctx context.Context, id uuid.UUID) error {
	locators, err := s.repo.DeleteReel(ctx, id, nil)
	if err != nil {
		return err
	}
	s.deleteMedia(ctx, locators)
	return nil
}

// deleteMedia runs after the row is gone. The delete already succeeded from
// the caller's point of view, so gateway failures only get logged.
func (s *contentService) deleteMedia(ctx context.Context, locators []string) {
	for _, locator := range locators {
		if err := s.gateway.Delete(ctx, locator); err != nil {
			logger.Warn("media delete failed", map[string]interface{}{
				"locator": locator,
				"error":   err.Error(),
			})
		}
	}
}

// ========================================
// COUNTERS
// ========================================

func (s *contentService) RecordPlay(ctx context.Context, id uuid.UUID) {
	if err := s.repo.IncrementPlayCount(ctx, id); err != nil {
		logger.Warn("record play failed", map[string]interface{}{
			"track_id": id.String(),
			"error":    err.Error(),
		})
	}
}

func (s *contentService) RecordView(ctx context.Context, id uuid.UUID) {
	if err := s.repo.IncrementViewCount(ctx, id); err != nil {
		logger.Warn("record view failed", map[string]interface{}{
			"reel_id": id.String(),
			"error":   err.Error(),
		})
	}
}
