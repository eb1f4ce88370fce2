package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundreel-backend/internal/domains/content"
	"soundreel-backend/internal/domains/content/model"
	"soundreel-backend/internal/infrastructure/storage"
)

// fakeGateway records every Put and Delete so compensation can be asserted.
type fakeGateway struct {
	puts    []string
	deletes []string
	putErr  map[storage.Category]error
}

func (g *fakeGateway) Put(ctx context.Context, category storage.Category, ownerID string, data []byte, contentType string) (string, error) {
	if err := g.putErr[category]; err != nil {
		return "", err
	}
	locator := fmt.Sprintf("http://media.local/soundreel-media/%s/%s/%d", category, ownerID, len(g.puts))
	g.puts = append(g.puts, locator)
	return locator, nil
}

func (g *fakeGateway) Delete(ctx context.Context, locator string) error {
	g.deletes = append(g.deletes, locator)
	return nil
}

type fakeContentRepo struct {
	content.Repository

	createTrackErr error
	createReelErr  error
	tracks         []*model.Track
	reels          []*model.Reel

	deleteLocators []string
	deleteErr      error
	deletedOwner   *string
}

func (f *fakeContentRepo) CreateTrack(ctx context.Context, track *model.Track) error {
	if f.createTrackErr != nil {
		return f.createTrackErr
	}
	f.tracks = append(f.tracks, track)
	return nil
}

func (f *fakeContentRepo) CreateReel(ctx context.Context, reel *model.Reel) error {
	if f.createReelErr != nil {
		return f.createReelErr
	}
	f.reels = append(f.reels, reel)
	return nil
}

func (f *fakeContentRepo) DeleteTrack(ctx context.Context, id uuid.UUID, ownerID *string) ([]string, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deletedOwner = ownerID
	return f.deleteLocators, nil
}

func (f *fakeContentRepo) DeleteReel(ctx context.Context, id uuid.UUID, ownerID *string) ([]string, error) {
	return f.DeleteTrack(ctx, id, ownerID)
}

func audioUpload(size int64) *content.MediaUpload {
	return &content.MediaUpload{Data: []byte("mp3"), Size: size, ContentType: "audio/mpeg"}
}

func videoUpload(size int64) *content.MediaUpload {
	return &content.MediaUpload{Data: []byte("mp4"), Size: size, ContentType: "video/mp4"}
}

func validTrackReq() content.CreateTrackRequest {
	return content.CreateTrackRequest{
		Title:           "Night Drive",
		DurationSeconds: 240,
		Audio:           audioUpload(1 << 20),
	}
}

// ========================================
// CreateTrack
// ========================================

func TestCreateTrack_Success(t *testing.T) {
	repo := &fakeContentRepo{}
	gw := &fakeGateway{}
	svc := NewContentService(repo, gw)

	track, err := svc.CreateTrack(context.Background(), "c1", validTrackReq())

	require.NoError(t, err)
	assert.Equal(t, "c1", track.OwnerID)
	assert.Len(t, gw.puts, 1)
	assert.Empty(t, gw.deletes)
	require.Len(t, repo.tracks, 1)
}

func TestCreateTrack_MissingAudio(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewContentService(&fakeContentRepo{}, gw)

	req := validTrackReq()
	req.Audio = nil

	_, err := svc.CreateTrack(context.Background(), "c1", req)

	assert.ErrorIs(t, err, content.ErrMediaRequired)
	assert.Empty(t, gw.puts)
}

func TestCreateTrack_AudioTooLarge(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewContentService(&fakeContentRepo{}, gw)

	req := validTrackReq()
	req.Audio = audioUpload(16 << 20)

	_, err := svc.CreateTrack(context.Background(), "c1", req)

	assert.ErrorIs(t, err, storage.ErrMediaTooLarge)
	assert.Empty(t, gw.puts, "gateway must not see an oversize upload")
}

func TestCreateTrack_WrongMime(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewContentService(&fakeContentRepo{}, gw)

	req := validTrackReq()
	req.Audio.ContentType = "audio/ogg"

	_, err := svc.CreateTrack(context.Background(), "c1", req)

	assert.ErrorIs(t, err, storage.ErrUnsupportedMediaType)
}

func TestCreateTrack_BadCoverValidatedBeforeAnyUpload(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewContentService(&fakeContentRepo{}, gw)

	req := validTrackReq()
	req.Cover = &content.MediaUpload{Data: []byte("gif"), Size: 1 << 10, ContentType: "image/gif"}

	_, err := svc.CreateTrack(context.Background(), "c1", req)

	assert.ErrorIs(t, err, storage.ErrUnsupportedMediaType)
	assert.Empty(t, gw.puts, "audio must not be uploaded when the cover is invalid")
}

func TestCreateTrack_InsertFailureCleansUpUploads(t *testing.T) {
	repo := &fakeContentRepo{createTrackErr: errors.New("db down")}
	gw := &fakeGateway{}
	svc := NewContentService(repo, gw)

	req := validTrackReq()
	req.Cover = &content.MediaUpload{Data: []byte("jpg"), Size: 1 << 10, ContentType: "image/jpeg"}

	_, err := svc.CreateTrack(context.Background(), "c1", req)

	require.Error(t, err)
	require.Len(t, gw.puts, 2)
	assert.ElementsMatch(t, gw.puts, gw.deletes, "both uploaded objects must be compensated")
}

func TestCreateTrack_CoverUploadFailureCleansUpAudio(t *testing.T) {
	gw := &fakeGateway{putErr: map[storage.Category]error{storage.CategoryImage: errors.New("minio down")}}
	svc := NewContentService(&fakeContentRepo{}, gw)

	req := validTrackReq()
	req.Cover = &content.MediaUpload{Data: []byte("jpg"), Size: 1 << 10, ContentType: "image/jpeg"}

	_, err := svc.CreateTrack(context.Background(), "c1", req)

	require.Error(t, err)
	require.Len(t, gw.puts, 1, "only the audio upload succeeded")
	assert.Equal(t, gw.puts, gw.deletes, "the orphaned audio must be deleted")
}

// ========================================
// CreateReel
// ========================================

func TestCreateReel_Success(t *testing.T) {
	repo := &fakeContentRepo{}
	gw := &fakeGateway{}
	svc := NewContentService(repo, gw)

	reel, err := svc.CreateReel(context.Background(), "c1", content.CreateReelRequest{
		Caption: "late night set",
		Video:   videoUpload(10 << 20),
	})

	require.NoError(t, err)
	assert.Equal(t, "c1", reel.OwnerID)
	require.Len(t, repo.reels, 1)
}

func TestCreateReel_VideoTooLarge(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewContentService(&fakeContentRepo{}, gw)

	_, err := svc.CreateReel(context.Background(), "c1", content.CreateReelRequest{
		Video: videoUpload(51 << 20),
	})

	assert.ErrorIs(t, err, storage.ErrMediaTooLarge)
}

func TestCreateReel_InsertFailureCleansUpVideo(t *testing.T) {
	repo := &fakeContentRepo{createReelErr: errors.New("db down")}
	gw := &fakeGateway{}
	svc := NewContentService(repo, gw)

	_, err := svc.CreateReel(context.Background(), "c1", content.CreateReelRequest{
		Video: videoUpload(1 << 20),
	})

	require.Error(t, err)
	assert.Equal(t, gw.puts, gw.deletes)
}

// ========================================
// Delete
// ========================================

func TestDeleteTrack_RemovesMediaAfterRow(t *testing.T) {
	repo := &fakeContentRepo{deleteLocators: []string{"loc-audio", "loc-cover"}}
	gw := &fakeGateway{}
	svc := NewContentService(repo, gw)

	err := svc.DeleteTrack(context.Background(), uuid.New(), "c1")

	require.NoError(t, err)
	assert.Equal(t, []string{"loc-audio", "loc-cover"}, gw.deletes)
	require.NotNil(t, repo.deletedOwner)
	assert.Equal(t, "c1", *repo.deletedOwner)
}

func TestDeleteTrack_NotFoundLeavesMediaAlone(t *testing.T) {
	repo := &fakeContentRepo{deleteErr: content.ErrContentNotFound}
	gw := &fakeGateway{}
	svc := NewContentService(repo, gw)

	err := svc.DeleteTrack(context.Background(), uuid.New(), "c1")

	assert.ErrorIs(t, err, content.ErrContentNotFound)
	assert.Empty(t, gw.deletes)
}

func TestAdminDeleteTrack_BypassesOwnership(t *testing.T) {
	repo := &fakeContentRepo{deleteLocators: []string{"loc-audio"}}
	gw := &fakeGateway{}
	svc := NewContentService(repo, gw)

	err := svc.AdminDeleteTrack(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, repo.deletedOwner, "admin path passes no owner filter")
	assert.Equal(t, []string{"loc-audio"}, gw.deletes)
}
