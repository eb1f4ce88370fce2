package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"soundreel-backend/internal/domains/account"
	"soundreel-backend/internal/shared/middleware"
	"soundreel-backend/internal/shared/response"
	"soundreel-backend/pkg/logger"
)

// AccountHandler serves the self-service and public profile endpoints.
type AccountHandler struct {
	service account.Service
}

func NewAccountHandler(service account.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

// GetMe handles GET /me
func (h *AccountHandler) GetMe(c *gin.Context) {
	dto, err := h.service.GetMe(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// UpdateProfile handles PUT /me
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req account.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dto, err := h.service.UpdateProfile(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// Search handles GET /users/search
func (h *AccountHandler) Search(c *gin.Context) {
	var req account.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.SetDefaults()

	results, total, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, results, response.NewMeta(req.Page, req.Limit, total))
}

// GetPublicProfile handles GET /users/:id
func (h *AccountHandler) GetPublicProfile(c *gin.Context) {
	var viewerID *string
	if viewer := c.GetString(middleware.ContextUserID); viewer != "" {
		viewerID = &viewer
	}

	dto, err := h.service.GetPublicProfile(c.Request.Context(), c.Param("id"), viewerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

func (h *AccountHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.BadRequest(c, err.Error())
	case errors.Is(err, account.ErrArtistNameNotAllowed):
		response.BadRequest(c, "Artist name can only be set by creators")
	case errors.Is(err, account.ErrAccountNotFound):
		response.NotFound(c, "Account not found")
	case errors.Is(err, account.ErrUsernameTaken):
		response.Conflict(c, "Username already taken")
	default:
		logger.Error("account handler error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
