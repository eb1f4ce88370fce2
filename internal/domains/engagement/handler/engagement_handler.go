package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"soundreel-backend/internal/domains/content"
	contentmodel "soundreel-backend/internal/domains/content/model"
	"soundreel-backend/internal/domains/engagement"
	"soundreel-backend/internal/shared/middleware"
	"soundreel-backend/internal/shared/response"
	"soundreel-backend/pkg/logger"
)

// EngagementHandler serves likes and the follow graph.
type EngagementHandler struct {
	service engagement.Service
}

func NewEngagementHandler(service engagement.Service) *EngagementHandler {
	return &EngagementHandler{service: service}
}

// LikeTrack handles POST /tracks/:id/like
func (h *EngagementHandler) LikeTrack(c *gin.Context) {
	h.toggleLike(c, contentmodel.ContentTypeTrack)
}

// LikeReel handles POST /reels/:id/like
func (h *EngagementHandler) LikeReel(c *gin.Context) {
	h.toggleLike(c, contentmodel.ContentTypeReel)
}

func (h *EngagementHandler) toggleLike(c *gin.Context, contentType contentmodel.ContentType) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid content id")
		return
	}

	result, err := h.service.ToggleLike(c.Request.Context(), c.GetString(middleware.ContextUserID), contentType, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Follow handles POST /users/:id/follow
func (h *EngagementHandler) Follow(c *gin.Context) {
	followerID := c.GetString(middleware.ContextUserID)
	follow, err := h.service.Follow(c.Request.Context(), followerID, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, follow)
}

// Unfollow handles DELETE /users/:id/follow
func (h *EngagementHandler) Unfollow(c *gin.Context) {
	followerID := c.GetString(middleware.ContextUserID)
	if err := h.service.Unfollow(c.Request.Context(), followerID, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"following": false})
}

// ListFollowers handles GET /users/:id/followers
func (h *EngagementHandler) ListFollowers(c *gin.Context) {
	h.listFollows(c, h.service.ListFollowers)
}

// ListFollowing handles GET /users/:id/following
func (h *EngagementHandler) ListFollowing(c *gin.Context) {
	h.listFollows(c, h.service.ListFollowing)
}

type followLister func(ctx context.Context, userID string, req engagement.ListFollowsRequest) ([]engagement.FollowEntryDTO, int, error)

func (h *EngagementHandler) listFollows(c *gin.Context, list followLister) {
	var req engagement.ListFollowsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.SetDefaults()

	entries, total, err := list(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, entries, response.NewMeta(req.Page, req.Limit, total))
}

func (h *EngagementHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engagement.ErrCannotFollowSelf):
		response.BadRequest(c, "You cannot follow yourself")
	case errors.Is(err, engagement.ErrAlreadyFollowing):
		response.Conflict(c, "Already following this user")
	case errors.Is(err, engagement.ErrLikeConflict):
		response.Conflict(c, "Like changed concurrently, try again")
	case errors.Is(err, engagement.ErrTargetNotFound):
		response.NotFound(c, "Account not found")
	case errors.Is(err, content.ErrContentNotFound):
		response.NotFound(c, "Content not found")
	default:
		logger.Error("engagement handler error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
