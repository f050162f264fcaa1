package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/application/service"
)

// RecordHandler stores attendance, grades and submissions.
type RecordHandler struct {
	recordService service.RecordAppService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordService service.RecordAppService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

func (h *RecordHandler) RecordAttendance(c *gin.Context) {
	var req dto.RecordAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.recordService.RecordAttendance(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

func (h *RecordHandler) RecordGrade(c *gin.Context) {
	var req dto.RecordGradeRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.recordService.RecordGrade(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

func (h *RecordHandler) RecordSubmission(c *gin.Context) {
	var req dto.RecordSubmissionRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.recordService.RecordSubmission(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, resp)
}
