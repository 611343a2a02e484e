package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/intl-tools/translator-service/internal/domain/model"
	"github.com/intl-tools/translator-service/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubIdentity satisfies service.IdentityService for token checks only.
type stubIdentity struct {
	service.IdentityService
	token string
	user  *model.User
}

func (s *stubIdentity) ValidateToken(_ context.Context, token string) (*model.User, error) {
	if token != "" && token == s.token {
		return s.user, nil
	}
	return nil, service.ErrInvalidToken
}

func authTestRouter(identity service.IdentityService, allowQueryToken bool) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), TokenAuth(identity, allowQueryToken))
	router.GET("/probe", func(c *gin.Context) {
		user := GetCurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user": user.Username})
	})
	return router
}

func TestTokenAuth(t *testing.T) {
	identity := &stubIdentity{
		token: "valid-token",
		user:  &model.User{Username: "mira", Role: model.RoleTranslator},
	}

	tests := []struct {
		name            string
		header          string
		query           string
		allowQueryToken bool
		wantStatus      int
	}{
		{
			name:       "valid bearer token",
			header:     "Bearer valid-token",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong token",
			header:     "Bearer nope",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			header:     "valid-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:            "query token allowed",
			query:           "?token=valid-token",
			allowQueryToken: true,
			wantStatus:      http.StatusOK,
		},
		{
			name:       "query token rejected when not allowed",
			query:      "?token=valid-token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := authTestRouter(identity, tt.allowQueryToken)

			req := httptest.NewRequest(http.MethodGet, "/probe"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), "mira")
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		role       model.Role
		wantStatus int
	}{
		{name: "admin passes", role: model.RoleAdmin, wantStatus: http.StatusOK},
		{name: "reviewer blocked", role: model.RoleReviewer, wantStatus: http.StatusForbidden},
		{name: "viewer blocked", role: model.RoleViewer, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) {
				c.Set(string(CurrentUserKey), &model.User{Role: tt.role})
			})
			router.Use(RequireAdmin())
			router.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestGetCurrentUser_Unauthenticated(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Nil(t, GetCurrentUser(c))
}
