package model

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Application is a creator elevation request. It transitions exactly once,
// pending -> approved or pending -> rejected; both outcomes are terminal.
// At most one application per user may be pending or approved at a time,
// backed by a partial unique index on (user_id) WHERE status IN
// ('pending','approved').
type Application struct {
	ID                uuid.UUID  `json:"id"`
	UserID            string     `json:"user_id"`
	ArtistName        string     `json:"artist_name"`
	ApplicationReason string     `json:"application_reason"`
	PortfolioURL      *string    `json:"portfolio_url,omitempty"`
	Status            Status     `json:"status"`
	SubmittedAt       time.Time  `json:"submitted_at"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty"`
	ReviewerID        *string    `json:"reviewer_id,omitempty"`
	AdminNotes        *string    `json:"admin_notes,omitempty"`
	RejectionReason   *string    `json:"rejection_reason,omitempty"`
}
