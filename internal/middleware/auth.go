package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/intl-tools/translator-service/internal/domain/dto"
	"github.com/intl-tools/translator-service/internal/domain/model"
	"github.com/intl-tools/translator-service/internal/service"
)

// TokenAuth returns a middleware that authenticates requests with an opaque
// bearer token. Tokens come from the Authorization header; when
// allowQueryToken is set, a token query parameter is accepted as well so
// export URLs can be pasted into build tooling.
func TokenAuth(identity service.IdentityService, allowQueryToken bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" && allowQueryToken {
			token = c.Query("token")
		}

		user, err := identity.ValidateToken(c.Request.Context(), token)
		if err != nil {
			requestID := GetRequestID(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewError(
				dto.ErrCodeUnauthorized, "Missing or invalid token",
			).WithRequestID(requestID))
			return
		}

		c.Set(string(CurrentUserKey), user)
		c.Next()
	}
}

// RequireAdmin returns a middleware that rejects non-admin users. It must be
// installed after TokenAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetCurrentUser(c)
		if user == nil || !user.Role.IsAdmin() {
			requestID := GetRequestID(c)
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewError(
				dto.ErrCodeForbidden, "Admin privileges required",
			).WithRequestID(requestID))
			return
		}
		c.Next()
	}
}

// GetCurrentUser retrieves the authenticated user from the gin context, or
// nil if the request is unauthenticated.
func GetCurrentUser(c *gin.Context) *model.User {
	if v, exists := c.Get(string(CurrentUserKey)); exists {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

// extractBearerToken pulls the token out of an "Authorization: Bearer" header.
func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
