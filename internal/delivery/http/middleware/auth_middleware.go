package middleware

import (
	"net/http"
	"strings"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards admin routes. It accepts the token from the
// Authorization header or the auth_token cookie, verifies it through the
// auth usecase, and requires the admin role. Claims land in the context for
// downstream handlers.
func AuthMiddleware(authUC domain.AuthUsecase) gin.HandlerFunc {
	seclog := security.DefaultLogger()

	return func(c *gin.Context) {
		var tokenString string

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := c.Cookie("auth_token"); err == nil && cookie != "" {
			tokenString = cookie
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := authUC.Verify(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		if claims.Role != "admin" {
			seclog.LogEvent(security.SecurityEvent{
				Event:   security.EventUnauthorizedAccess,
				Subject: security.MaskEmail(claims.Email),
				IP:      c.ClientIP(),
			})
			response.Error(c, http.StatusForbidden, "Admin access required", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyAdminEmail), claims.Email)
		c.Set(string(domain.KeyAdminRole), claims.Role)

		c.Next()
	}
}
