package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"soundreel-backend/internal/domains/content"
	"soundreel-backend/internal/shared/middleware"
	"soundreel-backend/internal/shared/response"
)

// ReelHandler serves the reel endpoints.
type ReelHandler struct {
	service content.Service
}

func NewReelHandler(service content.Service) *ReelHandler {
	return &ReelHandler{service: service}
}

// Create handles POST /reels (multipart/form-data)
func (h *ReelHandler) Create(c *gin.Context) {
	video, err := readFormFile(c, "video")
	if err != nil {
		response.BadRequest(c, "video file is required")
		return
	}

	req := content.CreateReelRequest{
		Caption: c.PostForm("caption"),
		Video:   video,
	}

	reel, err := h.service.CreateReel(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		handleContentError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, reel)
}

// Get handles GET /reels/:id
func (h *ReelHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid reel id")
		return
	}

	reel, err := h.service.GetReel(c.Request.Context(), id, viewerID(c))
	if err != nil {
		handleContentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, reel)
}

// List handles GET /reels and GET /reels/feed
func (h *ReelHandler) List(c *gin.Context) {
	var req content.ListContentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.SetDefaults()

	reels, total, err := h.service.ListReels(c.Request.Context(), req, viewerID(c))
	if err != nil {
		handleContentError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, reels, response.NewMeta(req.Page, req.Limit, total))
}

// ListMine handles GET /me/reels
func (h *ReelHandler) ListMine(c *gin.Context) {
	var req content.ListContentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.SetDefaults()

	reels, total, err := h.service.ListMyReels(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		handleContentError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, reels, response.NewMeta(req.Page, req.Limit, total))
}

// Update handles PUT /reels/:id
func (h *ReelHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid reel id")
		return
	}

	var req content.UpdateReelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	reel, err := h.service.UpdateReel(c.Request.Context(), id, c.GetString(middleware.ContextUserID), req)
	if err != nil {
		handleContentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, reel)
}

// Delete handles DELETE /reels/:id
func (h *ReelHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid reel id")
		return
	}

	if err := h.service.DeleteReel(c.Request.Context(), id, c.GetString(middleware.ContextUserID)); err != nil {
		handleContentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// RecordView handles POST /reels/:id/view
func (h *ReelHandler) RecordView(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid reel id")
		return
	}

	h.service.RecordView(c.Request.Context(), id)
	response.Success(c, http.StatusAccepted, gin.H{"recorded": true})
}
