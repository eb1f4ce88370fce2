package model

import "time"

type Role string

const (
	RoleListener Role = "listener"
	RoleCreator  Role = "creator"
	RoleAdmin    Role = "admin"
)

type Status string

const (
	StatusWaitlisted Status = "waitlisted"
	StatusActive     Status = "active"
	StatusBanned     Status = "banned"
)

// Account is the identity-linked record. The ID is the identity provider's
// opaque subject string and never changes. Role and status are independent
// axes: role moves listener -> creator through the application workflow,
// status moves waitlisted -> active -> banned -> active through admin
// moderation. Accounts are never hard-deleted.
type Account struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	Status     Status     `json:"status"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	BanReason  *string    `json:"ban_reason,omitempty"`
	BannedAt   *time.Time `json:"banned_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Profile holds the display data, 1:1 with Account. Username is globally
// unique; artist_name only means something once the owner is a creator.
type Profile struct {
	UserID      string    `json:"user_id"`
	Username    *string   `json:"username"`
	DisplayName *string   `json:"display_name"`
	Bio         *string   `json:"bio"`
	AvatarURL   *string   `json:"avatar_url"`
	ArtistName  *string   `json:"artist_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s Status) Valid() bool {
	switch s {
	case StatusWaitlisted, StatusActive, StatusBanned:
		return true
	}
	return false
}

func (r Role) Valid() bool {
	switch r {
	case RoleListener, RoleCreator, RoleAdmin:
		return true
	}
	return false
}
