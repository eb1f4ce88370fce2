package engagement

import "time"

// LikeResult is the outcome of one toggle. LikeCount is the counter value
// after the toggle committed.
type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// FollowEntryDTO is one row in a followers or following listing.
type FollowEntryDTO struct {
	ID          string    `json:"id"`
	Username    *string   `json:"username,omitempty"`
	DisplayName *string   `json:"display_name,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	FollowedAt  time.Time `json:"followed_at"`
}

// ListFollowsRequest paginates the follow listings.
type ListFollowsRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (r *ListFollowsRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}
