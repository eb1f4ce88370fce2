package content

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"soundreel-backend/internal/domains/content/model"
)

// MediaUpload carries one file out of a multipart form.
type MediaUpload struct {
	Data        []byte
	Size        int64
	ContentType string
}

// CreateTrackRequest publishes a track. Audio is required, cover optional.
type CreateTrackRequest struct {
	Title           string
	DurationSeconds int
	Audio           *MediaUpload
	Cover           *MediaUpload
}

func (r CreateTrackRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required,
			validation.Length(1, 200),
		),
		validation.Field(&r.DurationSeconds,
			validation.Required,
			validation.Min(1),
			validation.Max(3600),
		),
	)
}

// UpdateTrackRequest edits metadata. is_active=false is the owner's
// soft delete; the row and media stay around.
type UpdateTrackRequest struct {
	Title    *string `json:"title"`
	IsActive *bool   `json:"is_active"`
}

func (r UpdateTrackRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Required, validation.Length(1, 200)),
		),
	)
}

// CreateReelRequest publishes a reel.
type CreateReelRequest struct {
	Caption string
	Video   *MediaUpload
}

func (r CreateReelRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Caption,
			validation.Length(0, 500),
		),
	)
}

type UpdateReelRequest struct {
	Caption  *string `json:"caption"`
	IsActive *bool   `json:"is_active"`
}

func (r UpdateReelRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Caption,
			validation.When(r.Caption != nil, validation.Length(0, 500)),
		),
	)
}

// ListContentRequest paginates public listings and owner dashboards.
type ListContentRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (r *ListContentRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

// SearchTracksRequest is the track search query. An empty query degrades to
// the plain active listing.
type SearchTracksRequest struct {
	Query string `form:"q"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

func (r *SearchTracksRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

func (r SearchTracksRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query, validation.Length(0, 100)),
	)
}

// TrackDTO is a track plus viewer context.
type TrackDTO struct {
	model.Track
	IsLiked *bool `json:"is_liked,omitempty"`
}

// ReelDTO is a reel plus viewer context.
type ReelDTO struct {
	model.Reel
	IsLiked *bool `json:"is_liked,omitempty"`
}
