package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	accountmodel "soundreel-backend/internal/domains/account/model"
	"soundreel-backend/internal/domains/application"
	"soundreel-backend/internal/shared/middleware"
	"soundreel-backend/internal/shared/response"
	"soundreel-backend/pkg/logger"
)

// ApplicationHandler serves the creator application endpoints for both
// applicants and admins.
type ApplicationHandler struct {
	service application.Service
}

func NewApplicationHandler(service application.Service) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Submit handles POST /applications
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req application.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	role := accountmodel.Role(c.GetString(middleware.ContextRole))
	app, err := h.service.Submit(c.Request.Context(), userID, role, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, app)
}

// GetMine handles GET /applications/me
func (h *ApplicationHandler) GetMine(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	app, err := h.service.GetMine(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, app)
}

// List handles GET /admin/applications
func (h *ApplicationHandler) List(c *gin.Context) {
	var req application.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.SetDefaults()

	apps, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, apps, response.NewMeta(req.Page, req.Limit, total))
}

// Review handles POST /admin/applications/:id/review
func (h *ApplicationHandler) Review(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid application id")
		return
	}

	var req application.ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	reviewerID := c.GetString(middleware.ContextUserID)
	app, err := h.service.Review(c.Request.Context(), id, reviewerID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, app)
}

func (h *ApplicationHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.BadRequest(c, err.Error())
	case errors.Is(err, application.ErrNotEligible):
		response.Conflict(c, "Only listener accounts can apply for creator status")
	case errors.Is(err, application.ErrApplicationExists):
		response.Conflict(c, "An application is already pending or approved")
	case errors.Is(err, application.ErrAlreadyReviewed):
		response.Conflict(c, "Application has already been reviewed")
	case errors.Is(err, application.ErrApplicationNotFound):
		response.NotFound(c, "Application not found")
	default:
		logger.Error("application handler error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
