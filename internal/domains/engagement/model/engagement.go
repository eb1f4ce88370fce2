package model

import (
	"time"

	"github.com/google/uuid"

	contentmodel "soundreel-backend/internal/domains/content/model"
)

// Like is one user's like on one piece of content. UNIQUE(user_id,
// content_type, content_id) backs the toggle semantics.
type Like struct {
	UserID      string                   `json:"user_id"`
	ContentType contentmodel.ContentType `json:"content_type"`
	ContentID   uuid.UUID                `json:"content_id"`
	CreatedAt   time.Time                `json:"created_at"`
}

// Follow is a directed edge in the follow graph. The CHECK constraint keeps
// self-follows out even if the service check is bypassed.
type Follow struct {
	FollowerID  string    `json:"follower_id"`
	FollowingID string    `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
