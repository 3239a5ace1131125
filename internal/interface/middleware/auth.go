package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grainworks/portfolio-api/internal/application"
	"github.com/grainworks/portfolio-api/pkg/helpers"
	"github.com/grainworks/portfolio-api/pkg/response"
)

// Auth resolves the session cookie into a user and stores "userID" in the
// context. Requests without a valid, unexpired session get 401 and never
// reach the handler.
func Auth(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookie)
		if err != nil || token == "" {
			response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
			c.Abort()
			return
		}
		user, err := auth.Resolve(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			msg := "authentication required"
			if err == application.ErrStoreUnavailable {
				status = http.StatusServiceUnavailable
				msg = err.Error()
			}
			response.Error[any](c, status, msg, nil)
			c.Abort()
			return
		}
		c.Set("userID", user.ID)
		c.Set("userEmail", user.Email)
		c.Next()
	}
}
