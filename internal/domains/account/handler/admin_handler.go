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

// AdminAccountHandler serves the moderation endpoints: waitlist approval
// (single and FIFO batch), ban and unban, and the account listing.
type AdminAccountHandler struct {
	service account.Service
}

func NewAdminAccountHandler(service account.Service) *AdminAccountHandler {
	return &AdminAccountHandler{service: service}
}

// ListAccounts handles GET /admin/users
func (h *AdminAccountHandler) ListAccounts(c *gin.Context) {
	var req account.ListAccountsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.SetDefaults()

	dtos, total, err := h.service.ListAccounts(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, dtos, response.NewMeta(req.Page, req.Limit, total))
}

// ApproveWaitlisted handles POST /admin/users/:id/approve
func (h *AdminAccountHandler) ApproveWaitlisted(c *gin.Context) {
	dto, err := h.service.ApproveWaitlisted(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// BatchApproveWaitlisted handles POST /admin/waitlist/approve
func (h *AdminAccountHandler) BatchApproveWaitlisted(c *gin.Context) {
	var req account.BatchApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.BatchApproveWaitlisted(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Ban handles POST /admin/users/:id/ban
func (h *AdminAccountHandler) Ban(c *gin.Context) {
	var req account.BanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	adminID := c.GetString(middleware.ContextUserID)
	dto, err := h.service.Ban(c.Request.Context(), adminID, c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// Unban handles POST /admin/users/:id/unban
func (h *AdminAccountHandler) Unban(c *gin.Context) {
	dto, err := h.service.Unban(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

func (h *AdminAccountHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.BadRequest(c, err.Error())
	case errors.Is(err, account.ErrSelfBan):
		response.BadRequest(c, "Admins cannot ban themselves")
	case errors.Is(err, account.ErrNotWaitlisted):
		response.NotFound(c, "Account not found or not waitlisted")
	case errors.Is(err, account.ErrNotBanned):
		response.NotFound(c, "Account not found or not banned")
	case errors.Is(err, account.ErrAccountNotFound):
		response.NotFound(c, "Account not found")
	default:
		logger.Error("admin account handler error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
