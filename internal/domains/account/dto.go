package account

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"soundreel-backend/internal/domains/account/model"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ========================================
// SELF-SERVICE DTOs
// ========================================

// UpdateProfileRequest is a partial update; nil fields are left untouched.
type UpdateProfileRequest struct {
	Username    *string `json:"username"`
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`
	ArtistName  *string `json:"artist_name"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.When(r.Username != nil,
				validation.Length(3, 50),
				validation.Match(usernameRegex).Error("must contain only letters, numbers and underscores"),
			),
		),
		validation.Field(&r.DisplayName,
			validation.When(r.DisplayName != nil, validation.Length(0, 100)),
		),
		validation.Field(&r.Bio,
			validation.When(r.Bio != nil, validation.Length(0, 1000)),
		),
		validation.Field(&r.AvatarURL,
			validation.When(r.AvatarURL != nil && *r.AvatarURL != "", is.URL),
		),
		validation.Field(&r.ArtistName,
			validation.When(r.ArtistName != nil, validation.Length(2, 100)),
		),
	)
}

// AccountDTO is the caller's own account view (GET /me).
type AccountDTO struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	Role        model.Role   `json:"role"`
	Status      model.Status `json:"status"`
	Username    *string      `json:"username"`
	DisplayName *string      `json:"display_name"`
	Bio         *string      `json:"bio"`
	AvatarURL   *string      `json:"avatar_url"`
	ArtistName  *string      `json:"artist_name,omitempty"`
	ApprovedAt  *time.Time   `json:"approved_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

func ToDTO(a *model.Account, p *model.Profile) AccountDTO {
	dto := AccountDTO{
		ID:         a.ID,
		Email:      a.Email,
		Role:       a.Role,
		Status:     a.Status,
		ApprovedAt: a.ApprovedAt,
		CreatedAt:  a.CreatedAt,
	}
	if p != nil {
		dto.Username = p.Username
		dto.DisplayName = p.DisplayName
		dto.Bio = p.Bio
		dto.AvatarURL = p.AvatarURL
		dto.ArtistName = p.ArtistName
	}
	return dto
}

// ========================================
// PUBLIC PROFILE DTOs
// ========================================

// PublicProfileDTO is the profile as other users see it. Follower counts are
// computed on read; IsFollowing is only set when a viewer is known and is not
// the profile owner.
type PublicProfileDTO struct {
	ID             string     `json:"id"`
	Username       *string    `json:"username"`
	DisplayName    *string    `json:"display_name"`
	Bio            *string    `json:"bio"`
	AvatarURL      *string    `json:"avatar_url"`
	ArtistName     *string    `json:"artist_name,omitempty"`
	Role           model.Role `json:"role"`
	FollowerCount  int        `json:"follower_count"`
	FollowingCount int        `json:"following_count"`
	IsFollowing    *bool      `json:"is_following,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// SearchRequest matches username or artist name, active accounts only.
type SearchRequest struct {
	Query string `form:"q"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

func (r *SearchRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

func (r SearchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query, validation.Required, validation.Length(1, 100)),
	)
}

type SearchResultDTO struct {
	ID          string     `json:"id"`
	Username    *string    `json:"username"`
	DisplayName *string    `json:"display_name"`
	AvatarURL   *string    `json:"avatar_url"`
	ArtistName  *string    `json:"artist_name,omitempty"`
	Role        model.Role `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ========================================
// ADMIN DTOs
// ========================================

// ListAccountsRequest filters the admin account listing.
type ListAccountsRequest struct {
	Role   *model.Role   `form:"role"`
	Status *model.Status `form:"status"`
	Page   int           `form:"page"`
	Limit  int           `form:"limit"`
}

func (r *ListAccountsRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

func (r ListAccountsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role,
			validation.When(r.Role != nil, validation.In(model.RoleListener, model.RoleCreator, model.RoleAdmin)),
		),
		validation.Field(&r.Status,
			validation.When(r.Status != nil, validation.In(model.StatusWaitlisted, model.StatusActive, model.StatusBanned)),
		),
	)
}

// BatchApproveRequest approves the oldest waitlisted accounts, FIFO.
type BatchApproveRequest struct {
	Count int `json:"count"`
}

func (r BatchApproveRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Count, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

// BatchApproveResult reports how many accounts were actually activated.
// Approving fewer than requested is not an error.
type BatchApproveResult struct {
	Requested int          `json:"requested"`
	Approved  int          `json:"approved"`
	Accounts  []AccountDTO `json:"accounts"`
}

type BanRequest struct {
	Reason *string `json:"reason"`
}

func (r BanRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Reason,
			validation.When(r.Reason != nil, validation.Length(0, 500)),
		),
	)
}

// AccountWithProfile pairs the aggregate halves for listings.
type AccountWithProfile struct {
	Account model.Account
	Profile model.Profile
}
