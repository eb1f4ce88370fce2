package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"soundreel-backend/internal/domains/content"
	"soundreel-backend/internal/shared/response"
)

// AdminContentHandler serves the moderation deletes. Ownership checks are
// deliberately absent; the route guard already requires admin.
type AdminContentHandler struct {
	service content.Service
}

func NewAdminContentHandler(service content.Service) *AdminContentHandler {
	return &AdminContentHandler{service: service}
}

// DeleteTrack handles DELETE /admin/tracks/:id
func (h *AdminContentHandler) DeleteTrack(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid track id")
		return
	}

	if err := h.service.AdminDeleteTrack(c.Request.Context(), id); err != nil {
		handleContentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// DeleteReel handles DELETE /admin/reels/:id
func (h *AdminContentHandler) DeleteReel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid reel id")
		return
	}

	if err := h.service.AdminDeleteReel(c.Request.Context(), id); err != nil {
		handleContentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
