package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"soundreel-backend/internal/domains/content"
	"soundreel-backend/internal/infrastructure/storage"
	"soundreel-backend/internal/shared/middleware"
	"soundreel-backend/internal/shared/response"
	"soundreel-backend/pkg/logger"
)

// TrackHandler serves the track endpoints.
type TrackHandler struct {
	service content.Service
}

func NewTrackHandler(service content.Service) *TrackHandler {
	return &TrackHandler{service: service}
}

// Create handles POST /tracks (multipart/form-data)
func (h *TrackHandler) Create(c *gin.Context) {
	title := c.PostForm("title")
	duration, err := strconv.Atoi(c.PostForm("duration_seconds"))
	if err != nil {
		response.BadRequest(c, "duration_seconds must be an integer")
		return
	}

	audio, err := readFormFile(c, "audio")
	if err != nil {
		response.BadRequest(c, "audio file is required")
		return
	}

	// Cover is optional; only a broken part is an error.
	cover, err := readFormFile(c, "cover")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		response.BadRequest(c, "cover file is invalid")
		return
	}

	req := content.CreateTrackRequest{
		Title:           title,
		DurationSeconds: duration,
		Audio:           audio,
		Cover:           cover,
	}

	track, err := h.service.CreateTrack(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		handleContentError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, track)
}

// Get handles GET /tracks/:id
func (h *TrackHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid track id")
		return
	}

	track, err := h.service.GetTrack(c.Request.Context(), id, viewerID(c))
	if err != nil {
		handleContentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, track)
}

// List handles GET /tracks
func (h *TrackHandler) List(c *gin.Context) {
	var req content.ListContentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.SetDefaults()

	tracks, total, err := h.service.ListTracks(c.Request.Context(), req, viewerID(c))
	if err != nil {
		handleContentError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, tracks, response.NewMeta(req.Page, req.Limit, total))
}

// Search handles GET /tracks/search
func (h *TrackHandler) Search(c *gin.Context) {
	var req content.SearchTracksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.SetDefaults()

	tracks, total, err := h.service.SearchTracks(c.Request.Context(), req, viewerID(c))
	if err != nil {
		handleContentError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, tracks, response.NewMeta(req.Page, req.Limit, total))
}

// ListMine handles GET /me/tracks
func (h *TrackHandler) ListMine(c *gin.Context) {
	var req content.ListContentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.SetDefaults()

	tracks, total, err := h.service.ListMyTracks(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		handleContentError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, tracks, response.NewMeta(req.Page, req.Limit, total))
}

// Update handles PUT /tracks/:id
func (h *TrackHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid track id")
		return
	}

	var req content.UpdateTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	track, err := h.service.UpdateTrack(c.Request.Context(), id, c.GetString(middleware.ContextUserID), req)
	if err != nil {
		handleContentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, track)
}

// Delete handles DELETE /tracks/:id
func (h *TrackHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid track id")
		return
	}

	if err := h.service.DeleteTrack(c.Request.Context(), id, c.GetString(middleware.ContextUserID)); err != nil {
		handleContentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// RecordPlay handles POST /tracks/:id/play
func (h *TrackHandler) RecordPlay(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid track id")
		return
	}

	h.service.RecordPlay(c.Request.Context(), id)
	response.Success(c, http.StatusAccepted, gin.H{"recorded": true})
}

// ========================================
// SHARED HELPERS
// ========================================

func viewerID(c *gin.Context) *string {
	if viewer := c.GetString(middleware.ContextUserID); viewer != "" {
		return &viewer
	}
	return nil
}

// readFormFile pulls one part out of the multipart form into memory. Size
// limits are enforced downstream against the media rules.
func readFormFile(c *gin.Context, field string) (*content.MediaUpload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &content.MediaUpload{
		Data:        data,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

func handleContentError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.BadRequest(c, err.Error())
	case errors.Is(err, content.ErrMediaRequired):
		response.BadRequest(c, "Media file is required")
	case errors.Is(err, storage.ErrMediaTooLarge):
		response.BadRequest(c, err.Error())
	case errors.Is(err, storage.ErrUnsupportedMediaType):
		response.BadRequest(c, err.Error())
	case errors.Is(err, content.ErrContentNotFound):
		response.NotFound(c, "Content not found")
	default:
		logger.Error("content handler error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
