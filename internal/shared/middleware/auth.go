package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"soundreel-backend/internal/domains/account/model"
	"soundreel-backend/internal/infrastructure/identity"
	"soundreel-backend/internal/shared/response"
)

// Context keys populated by the auth middleware.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
	ContextStatus = "status"
)

// AccountResolver loads or implicitly creates the account row for a verified
// principal. Implemented by the account service; declared here to keep the
// middleware free of a service dependency.
type AccountResolver interface {
	EnsureAccount(ctx context.Context, id, email string) (*model.Account, error)
}

// Auth verifies the bearer credential and resolves the caller's account.
// First contact with the system creates the account (waitlisted listener),
// which is how signup works: the identity provider owns credentials, we own
// everything after.
func Auth(verifier identity.Verifier, accounts AccountResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "Missing or malformed authorization header")
			c.Abort()
			return
		}

		authenticate(c, verifier, accounts, token)
	}
}

// OptionalAuth resolves the caller when a credential is present but lets
// anonymous requests through. Used on public reads that personalize their
// response (isLiked, isFollowing) for signed-in viewers.
func OptionalAuth(verifier identity.Verifier, accounts AccountResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		authenticate(c, verifier, accounts, token)
	}
}

func authenticate(c *gin.Context, verifier identity.Verifier, accounts AccountResolver, token string) {
	principal, err := verifier.Verify(c.Request.Context(), token)
	if err != nil {
		response.Unauthorized(c, "Invalid or expired credential")
		c.Abort()
		return
	}

	acct, err := accounts.EnsureAccount(c.Request.Context(), principal.ID, principal.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to resolve account")
		c.Abort()
		return
	}

	c.Set(ContextUserID, acct.ID)
	c.Set(ContextEmail, acct.Email)
	c.Set(ContextRole, string(acct.Role))
	c.Set(ContextStatus, string(acct.Status))
	c.Next()
}

// RequireActive denies waitlisted and banned accounts, naming the actual
// state so clients can render the right next step.
func RequireActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch model.Status(c.GetString(ContextStatus)) {
		case model.StatusActive:
			c.Next()
		case model.StatusWaitlisted:
			response.Forbidden(c, "Account pending approval")
			c.Abort()
		case model.StatusBanned:
			response.Forbidden(c, "Account has been banned")
			c.Abort()
		default:
			response.Unauthorized(c, "Authentication required")
			c.Abort()
		}
	}
}

// RequireCreator gates content publishing. Admins pass too.
func RequireCreator() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := model.Role(c.GetString(ContextRole))
		if role != model.RoleCreator && role != model.RoleAdmin {
			response.Forbidden(c, "Creator role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if model.Role(c.GetString(ContextRole)) != model.RoleAdmin {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
