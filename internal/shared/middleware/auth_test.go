package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"soundreel-backend/internal/domains/account/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runGuard(t *testing.T, guard gin.HandlerFunc, role model.Role, status model.Status) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(ContextRole, string(role))
	c.Set(ContextStatus, string(status))

	guard(c)
	if !c.IsAborted() {
		w.WriteHeader(http.StatusOK)
	}
	return w
}

func TestRequireActive(t *testing.T) {
	cases := []struct {
		name   string
		status model.Status
		code   int
	}{
		{"active passes", model.StatusActive, http.StatusOK},
		{"waitlisted forbidden", model.StatusWaitlisted, http.StatusForbidden},
		{"banned forbidden", model.StatusBanned, http.StatusForbidden},
		{"unknown unauthorized", model.Status(""), http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := runGuard(t, RequireActive(), model.RoleListener, tc.status)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestRequireActive_Messages(t *testing.T) {
	w := runGuard(t, RequireActive(), model.RoleListener, model.StatusWaitlisted)
	assert.Contains(t, w.Body.String(), "pending approval")

	w = runGuard(t, RequireActive(), model.RoleListener, model.StatusBanned)
	assert.Contains(t, w.Body.String(), "banned")
}

func TestRequireCreator(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, runGuard(t, RequireCreator(), model.RoleListener, model.StatusActive).Code)
	assert.Equal(t, http.StatusOK, runGuard(t, RequireCreator(), model.RoleCreator, model.StatusActive).Code)
	assert.Equal(t, http.StatusOK, runGuard(t, RequireCreator(), model.RoleAdmin, model.StatusActive).Code)
}

func TestRequireAdmin(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, runGuard(t, RequireAdmin(), model.RoleListener, model.StatusActive).Code)
	assert.Equal(t, http.StatusForbidden, runGuard(t, RequireAdmin(), model.RoleCreator, model.StatusActive).Code)
	assert.Equal(t, http.StatusOK, runGuard(t, RequireAdmin(), model.RoleAdmin, model.StatusActive).Code)
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc123", "abc123", true},
		{"bearer abc123", "abc123", true},
		{"Bearer ", "", false},
		{"Basic abc123", "", false},
		{"", "", false},
		{"abc123", "", false},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			c.Request.Header.Set("Authorization", tc.header)
		}

		token, ok := bearerToken(c)
		assert.Equal(t, tc.ok, ok, "header %q", tc.header)
		if tc.ok {
			assert.Equal(t, tc.token, token)
		}
	}
}
