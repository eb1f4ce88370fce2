package service

import (
	"context"
	"fmt"

	"soundreel-backend/internal/domains/account"
	"soundreel-backend/internal/domains/account/model"
	"soundreel-backend/internal/infrastructure/email"
)

type accountService struct {
	repo     account.Repository
	notifier email.Notifier
}

func NewAccountService(repo account.Repository, notifier email.Notifier) account.Service {
	return &accountService{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *accountService) EnsureAccount(ctx context.Context, id, email string) (*model.Account, error) {
	return s.repo.EnsureAccount(ctx, id, email)
}

// ========================================
// SELF SERVICE
// ========================================

func (s *accountService) GetMe(ctx context.Context, id string) (*account.AccountDTO, error) {
	a, p, err := s.repo.FindWithProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := account.ToDTO(a, p)
	return &dto, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, id string, req account.UpdateProfileRequest) (*account.AccountDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// artist_name is creator identity; listeners cannot pre-claim one.
	if req.ArtistName != nil && a.Role != model.RoleCreator && a.Role != model.RoleAdmin {
		return nil, account.ErrArtistNameNotAllowed
	}

	p, err := s.repo.UpdateProfile(ctx, id, req)
	if err != nil {
		return nil, err
	}

	dto := account.ToDTO(a, p)
	return &dto, nil
}

// ========================================
// PUBLIC READS
// ========================================

func (s *accountService) Search(ctx context.Context, req account.SearchRequest) ([]account.SearchResultDTO, int, error) {
	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}

	return s.repo.Search(ctx, req.Query, req.Page, req.Limit)
}

func (s *accountService) GetPublicProfile(ctx context.Context, id string, viewerID *string) (*account.PublicProfileDTO, error) {
	return s.repo.GetPublicProfile(ctx, id, viewerID)
}

// ========================================
// ADMIN MODERATION
// ========================================

func (s *accountService) ListAccounts(ctx context.Context, req account.ListAccountsRequest) ([]account.AccountDTO, int, error) {
	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}

	items, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]account.AccountDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, account.ToDTO(&item.Account, &item.Profile))
	}
	return dtos, total, nil
}

func (s *accountService) ApproveWaitlisted(ctx context.Context, id string) (*account.AccountDTO, error) {
	a, err := s.repo.ApproveWaitlisted(ctx, id)
	if err != nil {
		return nil, err
	}

	// Fire-and-forget: a failed email never rolls the approval back.
	s.notifier.Notify(ctx, email.KindWaitlistApproved, a.Email, nil)

	dto := account.ToDTO(a, nil)
	return &dto, nil
}

func (s *accountService) BatchApproveWaitlisted(ctx context.Context, req account.BatchApproveRequest) (*account.BatchApproveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	approved, err := s.repo.BatchApproveWaitlisted(ctx, req.Count)
	if err != nil {
		return nil, fmt.Errorf("batch approve: %w", err)
	}

	result := &account.BatchApproveResult{
		Requested: req.Count,
		Approved:  len(approved),
		Accounts:  make([]account.AccountDTO, 0, len(approved)),
	}
	for i := range approved {
		a := approved[i]
		s.notifier.Notify(ctx, email.KindWaitlistApproved, a.Email, nil)
		result.Accounts = append(result.Accounts, account.ToDTO(&a, nil))
	}

	return result, nil
}

func (s *accountService) Ban(ctx context.Context, adminID, targetID string, req account.BanRequest) (*account.AccountDTO, error) {
	if adminID == targetID {
		return nil, account.ErrSelfBan
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.Ban(ctx, targetID, req.Reason)
	if err != nil {
		return nil, err
	}

	dto := account.ToDTO(a, nil)
	return &dto, nil
}

func (s *accountService) Unban(ctx context.Context, id string) (*account.AccountDTO, error) {
	a, err := s.repo.Unban(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := account.ToDTO(a, nil)
	return &dto, nil
}
