package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/application/service"
)

// CourseHandler exposes subjects, groups and enrollments.
type CourseHandler struct {
	courseService service.CourseAppService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService service.CourseAppService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

func (h *CourseHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if !bindJSON(c, &req) {
		return
	}
	subject, err := h.courseService.CreateSubject(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, subject)
}

func (h *CourseHandler) ListSubjects(c *gin.Context) {
	page, pageSize, ok := pageQuery(c)
	if !ok {
		return
	}
	subjects, err := h.courseService.ListSubjects(c.Request.Context(), page, pageSize)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, subjects)
}

func (h *CourseHandler) CreateGroup(c *gin.Context) {
	var req dto.CreateGroupRequest
	if !bindJSON(c, &req) {
		return
	}
	group, err := h.courseService.CreateGroup(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, group)
}

// Enroll adds the student in the body to the group in the path.
func (h *CourseHandler) Enroll(c *gin.Context) {
	groupID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req dto.EnrollRequest
	if !bindJSON(c, &req) {
		return
	}
	enrollment, err := h.courseService.Enroll(c.Request.Context(), groupID, req.StudentID)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, enrollment)
}

func (h *CourseHandler) Drop(c *gin.Context) {
	groupID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	studentID, ok := uintParam(c, "student_id")
	if !ok {
		return
	}
	if err := h.courseService.Drop(c.Request.Context(), groupID, studentID); err != nil {
		handleError(c, err)
		return
	}
	noContent(c)
}

func (h *CourseHandler) ListGroupStudents(c *gin.Context) {
	groupID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	students, err := h.courseService.ListGroupStudents(c.Request.Context(), groupID)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, students)
}
