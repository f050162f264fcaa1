package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/application/service"
)

// InternshipHandler exposes internship offers and applications.
type InternshipHandler struct {
	internshipService service.InternshipAppService
}

// NewInternshipHandler creates a new InternshipHandler.
func NewInternshipHandler(internshipService service.InternshipAppService) *InternshipHandler {
	return &InternshipHandler{internshipService: internshipService}
}

func (h *InternshipHandler) CreateInternship(c *gin.Context) {
	var req dto.CreateInternshipRequest
	if !bindJSON(c, &req) {
		return
	}
	internship, err := h.internshipService.CreateInternship(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, internship)
}

// Apply files an application on behalf of the authenticated student.
func (h *InternshipHandler) Apply(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	internshipID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	application, err := h.internshipService.Apply(c.Request.Context(), internshipID, claims.UserID)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, application)
}

func (h *InternshipHandler) ListApplications(c *gin.Context) {
	internshipID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	applications, err := h.internshipService.ListApplications(c.Request.Context(), internshipID)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, applications)
}

func (h *InternshipHandler) Approve(c *gin.Context) {
	h.decide(c, h.internshipService.Approve)
}

func (h *InternshipHandler) Reject(c *gin.Context) {
	h.decide(c, h.internshipService.Reject)
}

func (h *InternshipHandler) decide(c *gin.Context, apply func(context.Context, uint, string) (*dto.ApplicationResponse, error)) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req dto.DecisionRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	application, err := apply(c.Request.Context(), id, req.Note)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, application)
}
