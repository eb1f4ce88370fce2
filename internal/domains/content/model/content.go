package model

import (
	"time"

	"github.com/google/uuid"
)

// ContentType discriminates likeable content rows.
type ContentType string

const (
	ContentTypeTrack ContentType = "track"
	ContentTypeReel  ContentType = "reel"
)

func (t ContentType) Valid() bool {
	return t == ContentTypeTrack || t == ContentTypeReel
}

// Track is a published audio piece. audio_url and cover_url are media gateway
// locators; the row owns them and deletion cleans them up best-effort.
type Track struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         string    `json:"owner_id"`
	Title           string    `json:"title"`
	DurationSeconds int       `json:"duration_seconds"`
	AudioURL        string    `json:"audio_url"`
	CoverURL        *string   `json:"cover_url,omitempty"`
	PlayCount       int64     `json:"play_count"`
	LikeCount       int64     `json:"like_count"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Reel is a short published video.
type Reel struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Caption   string    `json:"caption"`
	VideoURL  string    `json:"video_url"`
	ViewCount int64     `json:"view_count"`
	LikeCount int64     `json:"like_count"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
