package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/application/service"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService service.AuthAppService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthAppService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a student account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, user)
}

// Login exchanges credentials for an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, token)
}

// Logout revokes the bearer token of the request.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		handleError(c, err)
		return
	}
	noContent(c)
}
