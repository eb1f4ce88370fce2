package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountmodel "soundreel-backend/internal/domains/account/model"
	"soundreel-backend/internal/domains/application"
	"soundreel-backend/internal/domains/application/model"
	"soundreel-backend/internal/infrastructure/email"
)

type fakeApplicationRepo struct {
	application.Repository

	createErr error
	created   *model.Application

	reviewOutcome *application.ReviewOutcome
	reviewErr     error
	reviewedID    uuid.UUID
	reviewerID    string
	decision      model.Status
	notes         *string
}

func (f *fakeApplicationRepo) Create(ctx context.Context, app *model.Application) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = app
	return nil
}

func (f *fakeApplicationRepo) Review(ctx context.Context, id uuid.UUID, reviewerID string, decision model.Status, notes *string) (*application.ReviewOutcome, error) {
	if f.reviewErr != nil {
		return nil, f.reviewErr
	}
	f.reviewedID = id
	f.reviewerID = reviewerID
	f.decision = decision
	f.notes = notes
	return f.reviewOutcome, nil
}

type recordingNotifier struct {
	kinds      []email.Kind
	recipients []string
	data       []map[string]string
}

func (n *recordingNotifier) Notify(ctx context.Context, kind email.Kind, recipient string, data map[string]string) {
	n.kinds = append(n.kinds, kind)
	n.recipients = append(n.recipients, recipient)
	n.data = append(n.data, data)
}

func strPtr(s string) *string { return &s }

func validSubmit() application.SubmitApplicationRequest {
	return application.SubmitApplicationRequest{
		ArtistName:        "Velvet Static",
		ApplicationReason: strings.Repeat("I make ambient techno. ", 4),
	}
}

// ========================================
// Submit
// ========================================

func TestSubmit_Valid(t *testing.T) {
	repo := &fakeApplicationRepo{}
	svc := NewApplicationService(repo, email.NoopNotifier{})

	app, err := svc.Submit(context.Background(), "u1", accountmodel.RoleListener, validSubmit())

	require.NoError(t, err)
	assert.Equal(t, "u1", app.UserID)
	assert.Equal(t, model.StatusPending, app.Status)
	assert.NotEqual(t, uuid.Nil, app.ID)
	require.NotNil(t, repo.created)
}

func TestSubmit_ReasonTooShort(t *testing.T) {
	repo := &fakeApplicationRepo{}
	svc := NewApplicationService(repo, email.NoopNotifier{})

	req := validSubmit()
	req.ApplicationReason = strings.Repeat("x", 49)

	_, err := svc.Submit(context.Background(), "u1", accountmodel.RoleListener, req)

	assert.Error(t, err)
	assert.Nil(t, repo.created, "repository must not be touched on validation failure")
}

func TestSubmit_ReasonAtLowerBound(t *testing.T) {
	repo := &fakeApplicationRepo{}
	svc := NewApplicationService(repo, email.NoopNotifier{})

	req := validSubmit()
	req.ApplicationReason = strings.Repeat("x", 50)

	_, err := svc.Submit(context.Background(), "u1", accountmodel.RoleListener, req)

	assert.NoError(t, err)
}

func TestSubmit_BadPortfolioURL(t *testing.T) {
	svc := NewApplicationService(&fakeApplicationRepo{}, email.NoopNotifier{})

	req := validSubmit()
	req.PortfolioURL = strPtr("not a url")

	_, err := svc.Submit(context.Background(), "u1", accountmodel.RoleListener, req)

	assert.Error(t, err)
}

func TestSubmit_NonListenerRejected(t *testing.T) {
	for _, role := range []accountmodel.Role{accountmodel.RoleCreator, accountmodel.RoleAdmin} {
		repo := &fakeApplicationRepo{}
		svc := NewApplicationService(repo, email.NoopNotifier{})

		_, err := svc.Submit(context.Background(), "u1", role, validSubmit())

		assert.ErrorIs(t, err, application.ErrNotEligible, string(role))
		assert.Nil(t, repo.created, "repository must not be touched for role %s", role)
	}
}

func TestSubmit_ActiveApplicationConflict(t *testing.T) {
	repo := &fakeApplicationRepo{createErr: application.ErrApplicationExists}
	svc := NewApplicationService(repo, email.NoopNotifier{})

	_, err := svc.Submit(context.Background(), "u1", accountmodel.RoleListener, validSubmit())

	assert.ErrorIs(t, err, application.ErrApplicationExists)
}

// ========================================
// Review
// ========================================

func TestReview_ApprovedNotifiesWithArtistName(t *testing.T) {
	appID := uuid.New()
	repo := &fakeApplicationRepo{
		reviewOutcome: &application.ReviewOutcome{
			Application: &model.Application{
				ID:         appID,
				UserID:     "u1",
				ArtistName: "Velvet Static",
				Status:     model.StatusApproved,
			},
			ApplicantEmail: "u1@example.com",
		},
	}
	notifier := &recordingNotifier{}
	svc := NewApplicationService(repo, notifier)

	app, err := svc.Review(context.Background(), appID, "admin1", application.ReviewApplicationRequest{
		Decision: model.StatusApproved,
	})

	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, app.Status)
	assert.Equal(t, "admin1", repo.reviewerID)
	require.Len(t, notifier.kinds, 1)
	assert.Equal(t, email.KindCreatorApproved, notifier.kinds[0])
	assert.Equal(t, "u1@example.com", notifier.recipients[0])
	assert.Equal(t, "Velvet Static", notifier.data[0]["artist_name"])
}

func TestReview_RejectedNotifiesWithReason(t *testing.T) {
	appID := uuid.New()
	repo := &fakeApplicationRepo{
		reviewOutcome: &application.ReviewOutcome{
			Application: &model.Application{
				ID:              appID,
				UserID:          "u1",
				Status:          model.StatusRejected,
				RejectionReason: strPtr("portfolio too thin"),
			},
			ApplicantEmail: "u1@example.com",
		},
	}
	notifier := &recordingNotifier{}
	svc := NewApplicationService(repo, notifier)

	_, err := svc.Review(context.Background(), appID, "admin1", application.ReviewApplicationRequest{
		Decision: model.StatusRejected,
		Notes:    strPtr("portfolio too thin"),
	})

	require.NoError(t, err)
	require.Len(t, notifier.kinds, 1)
	assert.Equal(t, email.KindCreatorRejected, notifier.kinds[0])
	assert.Equal(t, "portfolio too thin", notifier.data[0]["reason"])
}

func TestReview_InvalidDecision(t *testing.T) {
	svc := NewApplicationService(&fakeApplicationRepo{}, email.NoopNotifier{})

	_, err := svc.Review(context.Background(), uuid.New(), "admin1", application.ReviewApplicationRequest{
		Decision: model.StatusPending,
	})

	assert.Error(t, err)
}

func TestReview_AlreadyReviewedPassesThrough(t *testing.T) {
	repo := &fakeApplicationRepo{reviewErr: application.ErrAlreadyReviewed}
	notifier := &recordingNotifier{}
	svc := NewApplicationService(repo, notifier)

	_, err := svc.Review(context.Background(), uuid.New(), "admin1", application.ReviewApplicationRequest{
		Decision: model.StatusApproved,
	})

	assert.ErrorIs(t, err, application.ErrAlreadyReviewed)
	assert.Empty(t, notifier.kinds, "no email when the review fails")
}
