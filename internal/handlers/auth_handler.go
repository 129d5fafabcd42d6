package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"supaboard/internal/middlewares"
	"supaboard/internal/models"
	"supaboard/internal/responses"
	"supaboard/internal/utils"
)

// SessionMaxAge is the cookie lifetime in seconds.
const SessionMaxAge = int(utils.SessionTTL / time.Second)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Logout(ctx context.Context, token string) error
}

type AuthHandler struct {
	authService  AuthService
	secureCookie bool
}

// NewAuthHandler marks the session cookie Secure when secureCookie is set,
// which is the case in production.
func NewAuthHandler(authService AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusCreated, user, "New user registered successfully")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		responses.Error(c, err)
		return
	}

	h.setSessionCookie(c, token, SessionMaxAge)
	responses.Success(c, http.StatusOK, user, "Signed in successfully")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(middlewares.SessionCookie)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		responses.Error(c, err)
		return
	}

	h.setSessionCookie(c, "", -1)
	responses.Success(c, http.StatusOK, nil, "Signed out successfully")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.SessionCookie, value, maxAge, "/", "", h.secureCookie, true)
}
