package service

import (
	"context"

	"github.com/google/uuid"

	accountmodel "soundreel-backend/internal/domains/account/model"
	"soundreel-backend/internal/domains/application"
	"soundreel-backend/internal/domains/application/model"
	"soundreel-backend/internal/infrastructure/email"
)

type applicationService struct {
	repo     application.Repository
	notifier email.Notifier
}

func NewApplicationService(repo application.Repository, notifier email.Notifier) application.Service {
	return &applicationService{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *applicationService) Submit(ctx context.Context, userID string, role accountmodel.Role, req application.SubmitApplicationRequest) (*model.Application, error) {
	if role != accountmodel.RoleListener {
		return nil, application.ErrNotEligible
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	app := &model.Application{
		ID:                uuid.New(),
		UserID:            userID,
		ArtistName:        req.ArtistName,
		ApplicationReason: req.ApplicationReason,
		PortfolioURL:      req.PortfolioURL,
		Status:            model.StatusPending,
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

func (s *applicationService) GetMine(ctx context.Context, userID string) (*model.Application, error) {
	return s.repo.FindLatestByUser(ctx, userID)
}

func (s *applicationService) List(ctx context.Context, req application.ListApplicationsRequest) ([]model.Application, int, error) {
	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}

	return s.repo.List(ctx, req)
}

func (s *applicationService) Review(ctx context.Context, id uuid.UUID, reviewerID string, req application.ReviewApplicationRequest) (*model.Application, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	outcome, err := s.repo.Review(ctx, id, reviewerID, req.Decision, req.Notes)
	if err != nil {
		return nil, err
	}

	app := outcome.Application
	switch app.Status {
	case model.StatusApproved:
		s.notifier.Notify(ctx, email.KindCreatorApproved, outcome.ApplicantEmail, map[string]string{
			"artist_name": app.ArtistName,
		})
	case model.StatusRejected:
		data := map[string]string{}
		if app.RejectionReason != nil {
			data["reason"] = *app.RejectionReason
		}
		s.notifier.Notify(ctx, email.KindCreatorRejected, outcome.ApplicantEmail, data)
	}

	return app, nil
}
