package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contentmodel "soundreel-backend/internal/domains/content/model"
	"soundreel-backend/internal/domains/engagement"
	"soundreel-backend/internal/domains/engagement/model"
)

type fakeEngagementRepo struct {
	engagement.Repository

	toggleResult *engagement.LikeResult
	toggleCalls  int

	followErr   error
	followCalls int

	unfollowCalls int
}

func (f *fakeEngagementRepo) ToggleLike(ctx context.Context, userID string, contentType contentmodel.ContentType, contentID uuid.UUID) (*engagement.LikeResult, error) {
	f.toggleCalls++
	return f.toggleResult, nil
}

func (f *fakeEngagementRepo) Follow(ctx context.Context, followerID, followingID string) (*model.Follow, error) {
	f.followCalls++
	if f.followErr != nil {
		return nil, f.followErr
	}
	return &model.Follow{FollowerID: followerID, FollowingID: followingID}, nil
}

func (f *fakeEngagementRepo) Unfollow(ctx context.Context, followerID, followingID string) error {
	f.unfollowCalls++
	return nil
}

// statefulEngagementRepo mirrors the repository's toggle contract: the
// branch is decided from the stored like rows, an existing row is deleted
// and the counter decremented, an absent row is inserted and the counter
// incremented, and a duplicate insert loses with ErrLikeConflict instead of
// flipping to the delete branch.
type statefulEngagementRepo struct {
	engagement.Repository

	likes      map[string]bool
	likeCounts map[uuid.UUID]int64

	// raceNextInsert makes the next insert lose to a concurrent toggle:
	// the row appears (the winner committed it) and the caller conflicts.
	raceNextInsert bool
}

func newStatefulEngagementRepo() *statefulEngagementRepo {
	return &statefulEngagementRepo{
		likes:      map[string]bool{},
		likeCounts: map[uuid.UUID]int64{},
	}
}

func likeKey(userID string, contentType contentmodel.ContentType, contentID uuid.UUID) string {
	return userID + "/" + string(contentType) + "/" + contentID.String()
}

func (f *statefulEngagementRepo) rowCount(contentID uuid.UUID) int64 {
	var n int64
	for key, present := range f.likes {
		if present && strings.HasSuffix(key, contentID.String()) {
			n++
		}
	}
	return n
}

func (f *statefulEngagementRepo) ToggleLike(ctx context.Context, userID string, contentType contentmodel.ContentType, contentID uuid.UUID) (*engagement.LikeResult, error) {
	key := likeKey(userID, contentType, contentID)

	if f.likes[key] {
		delete(f.likes, key)
		f.likeCounts[contentID]--
		return &engagement.LikeResult{Liked: false, LikeCount: f.likeCounts[contentID]}, nil
	}

	if f.raceNextInsert {
		f.raceNextInsert = false
		f.likes[key] = true
		f.likeCounts[contentID]++
		return nil, engagement.ErrLikeConflict
	}

	f.likes[key] = true
	f.likeCounts[contentID]++
	return &engagement.LikeResult{Liked: true, LikeCount: f.likeCounts[contentID]}, nil
}

func TestToggleLike_Passthrough(t *testing.T) {
	repo := &fakeEngagementRepo{toggleResult: &engagement.LikeResult{Liked: true, LikeCount: 5}}
	svc := NewEngagementService(repo)

	result, err := svc.ToggleLike(context.Background(), "u1", contentmodel.ContentTypeTrack, uuid.New())

	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(5), result.LikeCount)
	assert.Equal(t, 1, repo.toggleCalls)
}

func TestToggleLike_CounterStaysInLockstepWithRows(t *testing.T) {
	repo := newStatefulEngagementRepo()
	svc := NewEngagementService(repo)
	trackID := uuid.New()

	toggle := func(userID string) *engagement.LikeResult {
		result, err := svc.ToggleLike(context.Background(), userID, contentmodel.ContentTypeTrack, trackID)
		require.NoError(t, err)
		assert.Equal(t, repo.rowCount(trackID), result.LikeCount)
		return result
	}

	assert.True(t, toggle("u1").Liked)
	assert.True(t, toggle("u2").Liked)
	assert.False(t, toggle("u1").Liked)
	assert.True(t, toggle("u1").Liked)
	assert.False(t, toggle("u2").Liked)

	final := toggle("u2")
	assert.True(t, final.Liked)
	assert.Equal(t, int64(2), final.LikeCount)
	assert.Equal(t, int64(2), repo.rowCount(trackID))
}

func TestToggleLike_DuplicateInsertLosesWithConflict(t *testing.T) {
	repo := newStatefulEngagementRepo()
	svc := NewEngagementService(repo)
	trackID := uuid.New()

	// Two toggles from the same user race on an absent like row. The loser
	// must be rejected, not fall through to the delete branch.
	repo.raceNextInsert = true
	_, err := svc.ToggleLike(context.Background(), "u1", contentmodel.ContentTypeTrack, trackID)
	assert.ErrorIs(t, err, engagement.ErrLikeConflict)

	// The winner's like stands: net exactly one like, counter in lockstep.
	assert.Equal(t, int64(1), repo.rowCount(trackID))
	assert.Equal(t, int64(1), repo.likeCounts[trackID])

	// The next toggle sees committed state and unlikes normally.
	result, err := svc.ToggleLike(context.Background(), "u1", contentmodel.ContentTypeTrack, trackID)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, int64(0), result.LikeCount)
	assert.Equal(t, int64(0), repo.rowCount(trackID))
}

func TestFollow_ReturnsEdge(t *testing.T) {
	repo := &fakeEngagementRepo{}
	svc := NewEngagementService(repo)

	follow, err := svc.Follow(context.Background(), "u1", "u2")

	require.NoError(t, err)
	assert.Equal(t, "u1", follow.FollowerID)
	assert.Equal(t, "u2", follow.FollowingID)
}

func TestFollow_SelfRejectedBeforeRepo(t *testing.T) {
	repo := &fakeEngagementRepo{}
	svc := NewEngagementService(repo)

	_, err := svc.Follow(context.Background(), "u1", "u1")

	assert.ErrorIs(t, err, engagement.ErrCannotFollowSelf)
	assert.Zero(t, repo.followCalls, "self-follow must not reach the repository")
}

func TestFollow_DuplicatePassesThrough(t *testing.T) {
	repo := &fakeEngagementRepo{followErr: engagement.ErrAlreadyFollowing}
	svc := NewEngagementService(repo)

	_, err := svc.Follow(context.Background(), "u1", "u2")

	assert.ErrorIs(t, err, engagement.ErrAlreadyFollowing)
}

func TestFollow_MissingTargetPassesThrough(t *testing.T) {
	repo := &fakeEngagementRepo{followErr: engagement.ErrTargetNotFound}
	svc := NewEngagementService(repo)

	_, err := svc.Follow(context.Background(), "u1", "ghost")

	assert.ErrorIs(t, err, engagement.ErrTargetNotFound)
}

func TestUnfollow_Idempotent(t *testing.T) {
	repo := &fakeEngagementRepo{}
	svc := NewEngagementService(repo)

	require.NoError(t, svc.Unfollow(context.Background(), "u1", "u2"))
	require.NoError(t, svc.Unfollow(context.Background(), "u1", "u2"))
	assert.Equal(t, 2, repo.unfollowCalls)
}
