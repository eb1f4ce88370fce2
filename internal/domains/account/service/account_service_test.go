package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundreel-backend/internal/domains/account"
	"soundreel-backend/internal/domains/account/model"
	"soundreel-backend/internal/infrastructure/email"
)

// fakeAccountRepo is an in-memory stand-in for the postgres repository.
type fakeAccountRepo struct {
	account.Repository

	accounts map[string]*model.Account
	profiles map[string]*model.Profile

	updateProfileErr error
	approveErr       error
	batchApproved    []model.Account
	bannedID         string
	bannedReason     *string
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts: make(map[string]*model.Account),
		profiles: make(map[string]*model.Profile),
	}
}

func (f *fakeAccountRepo) put(a *model.Account) {
	f.accounts[a.ID] = a
	f.profiles[a.ID] = &model.Profile{UserID: a.ID}
}

func (f *fakeAccountRepo) FindByID(ctx context.Context, id string) (*model.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return a, nil
}

func (f *fakeAccountRepo) FindWithProfile(ctx context.Context, id string) (*model.Account, *model.Profile, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, nil, account.ErrAccountNotFound
	}
	return a, f.profiles[id], nil
}

func (f *fakeAccountRepo) UpdateProfile(ctx context.Context, id string, req account.UpdateProfileRequest) (*model.Profile, error) {
	if f.updateProfileErr != nil {
		return nil, f.updateProfileErr
	}
	p := f.profiles[id]
	if req.Username != nil {
		p.Username = req.Username
	}
	if req.ArtistName != nil {
		p.ArtistName = req.ArtistName
	}
	return p, nil
}

func (f *fakeAccountRepo) ApproveWaitlisted(ctx context.Context, id string) (*model.Account, error) {
	if f.approveErr != nil {
		return nil, f.approveErr
	}
	a, ok := f.accounts[id]
	if !ok || a.Status != model.StatusWaitlisted {
		return nil, account.ErrNotWaitlisted
	}
	a.Status = model.StatusActive
	return a, nil
}

func (f *fakeAccountRepo) BatchApproveWaitlisted(ctx context.Context, count int) ([]model.Account, error) {
	if count > len(f.batchApproved) {
		return f.batchApproved, nil
	}
	return f.batchApproved[:count], nil
}

func (f *fakeAccountRepo) Ban(ctx context.Context, id string, reason *string) (*model.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	f.bannedID = id
	f.bannedReason = reason
	a.Status = model.StatusBanned
	a.BanReason = reason
	return a, nil
}

// recordingNotifier captures every notification for assertion.
type recordingNotifier struct {
	kinds      []email.Kind
	recipients []string
}

func (n *recordingNotifier) Notify(ctx context.Context, kind email.Kind, recipient string, data map[string]string) {
	n.kinds = append(n.kinds, kind)
	n.recipients = append(n.recipients, recipient)
}

func strPtr(s string) *string { return &s }

// ========================================
// UpdateProfile
// ========================================

func TestUpdateProfile_ListenerCannotSetArtistName(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.put(&model.Account{ID: "u1", Role: model.RoleListener, Status: model.StatusActive})
	svc := NewAccountService(repo, email.NoopNotifier{})

	_, err := svc.UpdateProfile(context.Background(), "u1", account.UpdateProfileRequest{
		ArtistName: strPtr("DJ Nobody"),
	})

	assert.ErrorIs(t, err, account.ErrArtistNameNotAllowed)
}

func TestUpdateProfile_CreatorCanSetArtistName(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.put(&model.Account{ID: "c1", Role: model.RoleCreator, Status: model.StatusActive})
	svc := NewAccountService(repo, email.NoopNotifier{})

	dto, err := svc.UpdateProfile(context.Background(), "c1", account.UpdateProfileRequest{
		ArtistName: strPtr("Velvet Static"),
	})

	require.NoError(t, err)
	require.NotNil(t, dto.ArtistName)
	assert.Equal(t, "Velvet Static", *dto.ArtistName)
}

func TestUpdateProfile_UsernameValidation(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.put(&model.Account{ID: "u1", Role: model.RoleListener, Status: model.StatusActive})
	svc := NewAccountService(repo, email.NoopNotifier{})

	for _, bad := range []string{"ab", "has space", "bad-dash", "über"} {
		_, err := svc.UpdateProfile(context.Background(), "u1", account.UpdateProfileRequest{
			Username: strPtr(bad),
		})
		assert.Error(t, err, "username %q should be rejected", bad)
	}

	_, err := svc.UpdateProfile(context.Background(), "u1", account.UpdateProfileRequest{
		Username: strPtr("good_name_42"),
	})
	assert.NoError(t, err)
}

func TestUpdateProfile_UsernameConflictPassesThrough(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.put(&model.Account{ID: "u1", Role: model.RoleListener, Status: model.StatusActive})
	repo.updateProfileErr = account.ErrUsernameTaken
	svc := NewAccountService(repo, email.NoopNotifier{})

	_, err := svc.UpdateProfile(context.Background(), "u1", account.UpdateProfileRequest{
		Username: strPtr("taken"),
	})

	assert.ErrorIs(t, err, account.ErrUsernameTaken)
}

// ========================================
// Waitlist approval
// ========================================

func TestApproveWaitlisted_SendsEmail(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.put(&model.Account{ID: "w1", Email: "w1@example.com", Role: model.RoleListener, Status: model.StatusWaitlisted})
	notifier := &recordingNotifier{}
	svc := NewAccountService(repo, notifier)

	dto, err := svc.ApproveWaitlisted(context.Background(), "w1")

	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, dto.Status)
	require.Len(t, notifier.kinds, 1)
	assert.Equal(t, email.KindWaitlistApproved, notifier.kinds[0])
	assert.Equal(t, "w1@example.com", notifier.recipients[0])
}

func TestApproveWaitlisted_AlreadyActive(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.put(&model.Account{ID: "a1", Status: model.StatusActive})
	notifier := &recordingNotifier{}
	svc := NewAccountService(repo, notifier)

	_, err := svc.ApproveWaitlisted(context.Background(), "a1")

	assert.ErrorIs(t, err, account.ErrNotWaitlisted)
	assert.Empty(t, notifier.kinds, "no email on a failed approval")
}

func TestBatchApprove_PartialResultAndEmails(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.batchApproved = []model.Account{
		{ID: "w1", Email: "w1@example.com", Status: model.StatusActive},
		{ID: "w2", Email: "w2@example.com", Status: model.StatusActive},
	}
	notifier := &recordingNotifier{}
	svc := NewAccountService(repo, notifier)

	result, err := svc.BatchApproveWaitlisted(context.Background(), account.BatchApproveRequest{Count: 10})

	require.NoError(t, err)
	assert.Equal(t, 10, result.Requested)
	assert.Equal(t, 2, result.Approved)
	assert.Equal(t, []string{"w1@example.com", "w2@example.com"}, notifier.recipients)
}

func TestBatchApprove_CountBounds(t *testing.T) {
	svc := NewAccountService(newFakeAccountRepo(), email.NoopNotifier{})

	for _, count := range []int{0, -1, 101} {
		_, err := svc.BatchApproveWaitlisted(context.Background(), account.BatchApproveRequest{Count: count})
		assert.Error(t, err, "count %d should be rejected", count)
	}
}

// ========================================
// Ban / Unban
// ========================================

func TestBan_SelfBanRejected(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.put(&model.Account{ID: "admin1", Role: model.RoleAdmin, Status: model.StatusActive})
	svc := NewAccountService(repo, email.NoopNotifier{})

	_, err := svc.Ban(context.Background(), "admin1", "admin1", account.BanRequest{})

	assert.ErrorIs(t, err, account.ErrSelfBan)
	assert.Empty(t, repo.bannedID)
}

func TestBan_RecordsReason(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.put(&model.Account{ID: "u1", Status: model.StatusActive})
	svc := NewAccountService(repo, email.NoopNotifier{})

	dto, err := svc.Ban(context.Background(), "admin1", "u1", account.BanRequest{Reason: strPtr("spam uploads")})

	require.NoError(t, err)
	assert.Equal(t, model.StatusBanned, dto.Status)
	require.NotNil(t, repo.bannedReason)
	assert.Equal(t, "spam uploads", *repo.bannedReason)
}
