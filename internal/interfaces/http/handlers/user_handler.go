package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/application/service"
	"github.com/turtacn/acadmin/internal/domain/models"
)

// UserHandler exposes user administration.
type UserHandler struct {
	userService service.UserAppService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserAppService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	page, pageSize, ok := pageQuery(c)
	if !ok {
		return
	}
	users, err := h.userService.ListUsers(c.Request.Context(), page, pageSize)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}

func (h *UserHandler) AssignRole(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req dto.AssignRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	h.updateRole(c, id, req.Role, h.userService.AssignRole)
}

func (h *UserHandler) RemoveRole(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	h.updateRole(c, id, c.Param("role"), h.userService.RemoveRole)
}

func (h *UserHandler) updateRole(c *gin.Context, id uint, raw string,
	apply func(context.Context, uint, models.RoleName) (*dto.UserResponse, error)) {
	role, err := models.ParseRoleName(raw)
	if err != nil {
		handleError(c, err)
		return
	}
	user, err := apply(c.Request.Context(), id, role)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}

func (h *UserHandler) Activate(c *gin.Context) {
	h.toggle(c, h.userService.Activate)
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	h.toggle(c, h.userService.Deactivate)
}

func (h *UserHandler) toggle(c *gin.Context, apply func(context.Context, uint) (*dto.UserResponse, error)) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	user, err := apply(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}
