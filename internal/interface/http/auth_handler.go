package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/grainworks/portfolio-api/internal/application"
	"github.com/grainworks/portfolio-api/internal/interface/middleware"
	"github.com/grainworks/portfolio-api/pkg/helpers"
	"github.com/grainworks/portfolio-api/pkg/response"
	"github.com/grainworks/portfolio-api/pkg/validation"
)

type AuthHandler struct {
	Auth    *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(auth *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	user, sess, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password,
		middleware.IPFromCtx(c), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, application.ErrInvalidLogin) {
			response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
			return
		}
		respondErr(c, h.Logger, err)
		return
	}

	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	response.Success(c, http.StatusOK, gin.H{
		"id":    user.ID,
		"email": user.Email,
	}, "login successful", map[string]any{"expires_at": sess.ExpiresAt})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(helpers.SessionCookie)
	if err := h.Auth.Logout(c.Request.Context(), token); err != nil {
		respondErr(c, h.Logger, err)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"id":    c.GetString("userID"),
		"email": c.GetString("userEmail"),
	}, "current user", nil)
}
