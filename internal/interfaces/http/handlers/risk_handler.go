package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/application/service"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/pkg/constants"
	"github.com/turtacn/acadmin/pkg/errors"
)

// staffRoles may read any student's risk data.
var staffRoles = []models.RoleName{models.RoleAdmin, models.RoleCoordinator, models.RoleTeacher}

// RiskHandler exposes risk assessment, simulation and the dashboard.
type RiskHandler struct {
	riskService service.RiskAppService
}

// NewRiskHandler creates a new RiskHandler.
func NewRiskHandler(riskService service.RiskAppService) *RiskHandler {
	return &RiskHandler{riskService: riskService}
}

// CalculateRisk assesses one student in one group and persists the result.
// The optional body overrides measured metrics.
func (h *RiskHandler) CalculateRisk(c *gin.Context) {
	studentID, ok := uintParam(c, "student_id")
	if !ok {
		return
	}
	groupID, ok := uintParam(c, "group_id")
	if !ok {
		return
	}
	var overrides dto.RiskOverrides
	if !bindOptionalJSON(c, &overrides) {
		return
	}
	assessment, err := h.riskService.CalculateRisk(c.Request.Context(), studentID, groupID, &overrides)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, assessment)
}

func (h *RiskHandler) SimulateRisk(c *gin.Context) {
	var req dto.SimulateRiskRequest
	if !bindJSON(c, &req) {
		return
	}
	assessment, err := h.riskService.SimulateRisk(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, assessment)
}

func (h *RiskHandler) AssessGroup(c *gin.Context) {
	groupID, ok := uintParam(c, "group_id")
	if !ok {
		return
	}
	assessments, err := h.riskService.AssessGroup(c.Request.Context(), groupID)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, assessments)
}

// GetGroupDashboard aggregates the group's latest assessments. min_level
// defaults to LOW, which includes every assessed student.
func (h *RiskHandler) GetGroupDashboard(c *gin.Context) {
	groupID, ok := uintParam(c, "group_id")
	if !ok {
		return
	}
	minLevel := models.RiskLow
	if raw := c.Query("min_level"); raw != "" {
		level, err := models.ParseRiskLevel(raw)
		if err != nil {
			handleError(c, err)
			return
		}
		minLevel = level
	}
	dashboard, err := h.riskService.GetGroupDashboard(c.Request.Context(), groupID, minLevel)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, dashboard)
}

func (h *RiskHandler) GetStudentRiskFactors(c *gin.Context) {
	studentID, ok := h.authorizedStudent(c)
	if !ok {
		return
	}
	groupID, ok := uintParam(c, "group_id")
	if !ok {
		return
	}
	factors, err := h.riskService.GetStudentRiskFactors(c.Request.Context(), studentID, groupID)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, factors)
}

func (h *RiskHandler) GetRiskHistory(c *gin.Context) {
	studentID, ok := h.authorizedStudent(c)
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", constants.DefaultRiskHistoryLimit)
	if !ok {
		return
	}
	history, err := h.riskService.GetRiskHistory(c.Request.Context(), studentID, limit)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, history)
}

// authorizedStudent parses :student_id. Staff may read anyone; students only themselves.
func (h *RiskHandler) authorizedStudent(c *gin.Context) (uint, bool) {
	claims, ok := currentClaims(c)
	if !ok {
		return 0, false
	}
	studentID, ok := uintParam(c, "student_id")
	if !ok {
		return 0, false
	}
	if !claims.HasAnyRole(staffRoles...) && claims.UserID != studentID {
		handleError(c, errors.ErrForbidden("students can only read their own risk data"))
		return 0, false
	}
	return studentID, true
}
