package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/application/service"
	"github.com/turtacn/acadmin/internal/application/service/mocks"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/pkg/constants"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

var (
	_ service.AuthAppService        = (*mocks.MockAuthAppService)(nil)
	_ service.UserAppService        = (*mocks.MockUserAppService)(nil)
	_ service.CourseAppService      = (*mocks.MockCourseAppService)(nil)
	_ service.RecordAppService      = (*mocks.MockRecordAppService)(nil)
	_ service.ReservationAppService = (*mocks.MockReservationAppService)(nil)
	_ service.InternshipAppService  = (*mocks.MockInternshipAppService)(nil)
	_ service.RiskAppService        = (*mocks.MockRiskAppService)(nil)
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newEngine returns an engine whose requests carry claims, as RequireJWT would set them.
func newEngine(claims *models.Claims) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set(string(constants.ContextKeyClaims), claims)
		}
		c.Next()
	})
	return r
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()
	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func student(id uint) *models.Claims {
	return &models.Claims{UserID: id, Roles: []models.RoleName{models.RoleStudent}}
}

func teacher(id uint) *models.Claims {
	return &models.Claims{UserID: id, Roles: []models.RoleName{models.RoleTeacher}}
}

func TestAuthHandler_Register(t *testing.T) {
	svc := new(mocks.MockAuthAppService)
	h := NewAuthHandler(svc)
	r := newEngine(nil)
	r.POST("/register", h.Register)

	t.Run("validation errors carry field details", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/register", map[string]string{"email": "nope", "password": "short"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode(t, w)
		assert.Equal(t, errors.CodeInvalidRequest, resp.Error.Code)
		assert.Contains(t, resp.Error.Details, "email")
		assert.Contains(t, resp.Error.Details, "password")
		assert.Contains(t, resp.Error.Details, "full_name")
	})

	t.Run("malformed body", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/register", "{")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("created", func(t *testing.T) {
		req := &dto.RegisterRequest{Email: "ana@uni.edu", Password: "s3cret-pass", FullName: "Ana"}
		svc.On("Register", mock.Anything, req).Return(&dto.UserResponse{ID: 1, Email: req.Email}, nil).Once()
		w := doJSON(r, http.MethodPost, "/register", req)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, decode(t, w).Success)
	})

	t.Run("duplicate email", func(t *testing.T) {
		req := &dto.RegisterRequest{Email: "dup@uni.edu", Password: "s3cret-pass", FullName: "Dup"}
		svc.On("Register", mock.Anything, req).Return(nil, errors.ErrConflict("email already registered")).Once()
		w := doJSON(r, http.MethodPost, "/register", req)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
	svc.AssertExpectations(t)
}

func TestAuthHandler_LoginAndLogout(t *testing.T) {
	svc := new(mocks.MockAuthAppService)
	h := NewAuthHandler(svc)
	claims := student(4)
	r := newEngine(claims)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)

	login := &dto.LoginRequest{Email: "ana@uni.edu", Password: "pw"}
	svc.On("Login", mock.Anything, login).Return(nil, errors.ErrRateLimitExceeded("login")).Once()
	w := doJSON(r, http.MethodPost, "/login", login)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	svc.On("Login", mock.Anything, login).Return(&dto.TokenResponse{AccessToken: "tok", TokenType: "Bearer"}, nil).Once()
	w = doJSON(r, http.MethodPost, "/login", login)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "tok", data["access_token"])

	svc.On("Logout", mock.Anything, claims).Return(nil).Once()
	w = doJSON(r, http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}

func TestAuthHandler_LogoutWithoutClaims(t *testing.T) {
	r := newEngine(nil)
	r.POST("/logout", NewAuthHandler(new(mocks.MockAuthAppService)).Logout)
	w := doJSON(r, http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler(t *testing.T) {
	svc := new(mocks.MockUserAppService)
	h := NewUserHandler(svc)
	r := newEngine(nil)
	r.GET("/users", h.ListUsers)
	r.GET("/users/:id", h.GetUser)
	r.POST("/users/:id/roles", h.AssignRole)
	r.DELETE("/users/:id/roles/:role", h.RemoveRole)
	r.POST("/users/:id/deactivate", h.Deactivate)

	svc.On("ListUsers", mock.Anything, 2, 5).Return(dto.NewPagedList([]*dto.UserResponse{{ID: 6}}, 2, 5, 6), nil).Once()
	w := doJSON(r, http.MethodGet, "/users?page=2&page_size=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/users?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/users/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("GetUser", mock.Anything, uint(9)).Return(nil, errors.ErrNotFound("user", 9)).Once()
	w = doJSON(r, http.MethodGet, "/users/9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, errors.CodeNotFound, decode(t, w).Error.Code)

	w = doJSON(r, http.MethodPost, "/users/3/roles", map[string]string{"role": "dean"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("AssignRole", mock.Anything, uint(3), models.RoleTeacher).Return(&dto.UserResponse{ID: 3, Roles: []string{"teacher"}}, nil).Once()
	w = doJSON(r, http.MethodPost, "/users/3/roles", map[string]string{"role": "teacher"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/users/3/roles/dean", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("RemoveRole", mock.Anything, uint(3), models.RoleStudent).Return(&dto.UserResponse{ID: 3}, nil).Once()
	w = doJSON(r, http.MethodDelete, "/users/3/roles/student", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	svc.On("Deactivate", mock.Anything, uint(3)).Return(&dto.UserResponse{ID: 3, IsActive: false}, nil).Once()
	w = doJSON(r, http.MethodPost, "/users/3/deactivate", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestCourseHandler(t *testing.T) {
	svc := new(mocks.MockCourseAppService)
	h := NewCourseHandler(svc)
	r := newEngine(nil)
	r.POST("/subjects", h.CreateSubject)
	r.POST("/groups/:id/enrollments", h.Enroll)
	r.DELETE("/groups/:id/enrollments/:student_id", h.Drop)
	r.GET("/groups/:id/students", h.ListGroupStudents)

	subject := &dto.CreateSubjectRequest{Code: "CS101", Name: "Programming", Credits: 6}
	svc.On("CreateSubject", mock.Anything, subject).Return(&dto.SubjectResponse{ID: 1, Code: "CS101"}, nil).Once()
	w := doJSON(r, http.MethodPost, "/subjects", subject)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/groups/x/enrollments", map[string]uint{"student_id": 4})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("Enroll", mock.Anything, uint(2), uint(4)).Return(nil, errors.ErrConflict("group is full")).Once()
	w = doJSON(r, http.MethodPost, "/groups/2/enrollments", map[string]uint{"student_id": 4})
	assert.Equal(t, http.StatusConflict, w.Code)

	svc.On("Drop", mock.Anything, uint(2), uint(4)).Return(nil).Once()
	w = doJSON(r, http.MethodDelete, "/groups/2/enrollments/4", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	svc.On("ListGroupStudents", mock.Anything, uint(2)).Return([]*dto.UserResponse{{ID: 4}}, nil).Once()
	w = doJSON(r, http.MethodGet, "/groups/2/students", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w).Data, 1)
	svc.AssertExpectations(t)
}

func TestRecordHandler(t *testing.T) {
	svc := new(mocks.MockRecordAppService)
	h := NewRecordHandler(svc)
	r := newEngine(nil)
	r.POST("/grades", h.RecordGrade)
	r.POST("/attendance", h.RecordAttendance)

	w := doJSON(r, http.MethodPost, "/grades", map[string]interface{}{"student_id": 1, "group_id": 2, "title": "Midterm", "score": 140})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Error.Details, "score")

	svc.On("RecordGrade", mock.Anything, mock.AnythingOfType("*dto.RecordGradeRequest")).Return(&dto.RecordResponse{ID: 11}, nil).Once()
	w = doJSON(r, http.MethodPost, "/grades", map[string]interface{}{"student_id": 1, "group_id": 2, "title": "Midterm", "score": 55})
	assert.Equal(t, http.StatusCreated, w.Code)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	svc.On("RecordAttendance", mock.Anything, &dto.RecordAttendanceRequest{StudentID: 1, GroupID: 2, SessionDate: day}).
		Return(nil, errors.ErrForbidden("student is not enrolled")).Once()
	w = doJSON(r, http.MethodPost, "/attendance", map[string]interface{}{"student_id": 1, "group_id": 2, "session_date": day, "present": false})
	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertExpectations(t)
}

func TestReservationHandler(t *testing.T) {
	svc := new(mocks.MockReservationAppService)
	h := NewReservationHandler(svc)
	claims := teacher(8)
	r := newEngine(claims)
	r.POST("/reservations", h.Reserve)
	r.POST("/reservations/:id/cancel", h.Cancel)
	r.GET("/resources/:id/reservations", h.ListForResource)

	start := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	w := doJSON(r, http.MethodPost, "/reservations", map[string]interface{}{"resource_id": 1, "starts_at": start, "ends_at": start.Add(-time.Hour)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Error.Details, "ends_at")

	req := &dto.ReserveRequest{ResourceID: 1, StartsAt: start, EndsAt: start.Add(time.Hour)}
	svc.On("Reserve", mock.Anything, uint(8), req).Return(nil, errors.ErrConflict("resource is not available")).Once()
	w = doJSON(r, http.MethodPost, "/reservations", req)
	assert.Equal(t, http.StatusConflict, w.Code)

	svc.On("Reserve", mock.Anything, uint(8), req).Return(&dto.ReservationResponse{ID: 3, UserID: 8, Status: "PENDING"}, nil).Once()
	w = doJSON(r, http.MethodPost, "/reservations", req)
	assert.Equal(t, http.StatusCreated, w.Code)

	svc.On("Cancel", mock.Anything, uint(3), claims).Return(&dto.ReservationResponse{ID: 3, Status: "CANCELLED"}, nil).Once()
	w = doJSON(r, http.MethodPost, "/reservations/3/cancel", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	svc.On("ListForResource", mock.Anything, uint(1)).Return([]*dto.ReservationResponse{}, nil).Once()
	w = doJSON(r, http.MethodGet, "/resources/1/reservations", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestInternshipHandler(t *testing.T) {
	svc := new(mocks.MockInternshipAppService)
	h := NewInternshipHandler(svc)
	r := newEngine(student(5))
	r.POST("/internships/:id/applications", h.Apply)
	r.POST("/applications/:id/approve", h.Approve)
	r.POST("/applications/:id/reject", h.Reject)

	svc.On("Apply", mock.Anything, uint(2), uint(5)).Return(&dto.ApplicationResponse{ID: 1, Status: "PENDING"}, nil).Once()
	w := doJSON(r, http.MethodPost, "/internships/2/applications", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	svc.On("Approve", mock.Anything, uint(1), "").Return(nil, errors.ErrConflict("no slots left")).Once()
	w = doJSON(r, http.MethodPost, "/applications/1/approve", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	svc.On("Reject", mock.Anything, uint(1), "missing CV").Return(&dto.ApplicationResponse{ID: 1, Status: "REJECTED", Note: "missing CV"}, nil).Once()
	w = doJSON(r, http.MethodPost, "/applications/1/reject", map[string]string{"note": "missing CV"})
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestRiskHandler_CalculateRisk(t *testing.T) {
	svc := new(mocks.MockRiskAppService)
	h := NewRiskHandler(svc)
	r := newEngine(teacher(1))
	r.POST("/risk/students/:student_id/groups/:group_id/assess", h.CalculateRisk)

	svc.On("CalculateRisk", mock.Anything, uint(7), uint(3), &dto.RiskOverrides{}).
		Return(&dto.RiskAssessmentResponse{ID: 1, StudentID: 7, RiskScore: 44, RiskLevel: "MEDIUM", Persisted: true}, nil).Once()
	w := doJSON(r, http.MethodPost, "/risk/students/7/groups/3/assess", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.EqualValues(t, 44, data["risk_score"])

	rate := 40.0
	svc.On("CalculateRisk", mock.Anything, uint(7), uint(3), &dto.RiskOverrides{AttendanceRate: &rate}).
		Return(&dto.RiskAssessmentResponse{ID: 2, RiskScore: 24}, nil).Once()
	w = doJSON(r, http.MethodPost, "/risk/students/7/groups/3/assess", map[string]float64{"attendance_rate": 40})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/risk/students/7/groups/3/assess", map[string]float64{"average_grade": 120})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("CalculateRisk", mock.Anything, uint(7), uint(3), &dto.RiskOverrides{}).
		Return(&dto.RiskAssessmentResponse{ID: 3, RiskScore: 44}, nil).Once()
	chunked := httptest.NewRequest(http.MethodPost, "/risk/students/7/groups/3/assess", strings.NewReader(""))
	chunked.ContentLength = -1
	chunked.TransferEncoding = []string{"chunked"}
	chunked.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, chunked)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/risk/students/7/groups/3/assess", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("CalculateRisk", mock.Anything, uint(9), uint(3), &dto.RiskOverrides{}).Return(nil, errors.ErrNotFound("user", 9)).Once()
	w = doJSON(r, http.MethodPost, "/risk/students/9/groups/3/assess", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertExpectations(t)
}

func TestRiskHandler_SimulateAndAssessGroup(t *testing.T) {
	svc := new(mocks.MockRiskAppService)
	h := NewRiskHandler(svc)
	r := newEngine(teacher(1))
	r.POST("/risk/simulate", h.SimulateRisk)
	r.POST("/risk/groups/:group_id/assess", h.AssessGroup)

	w := doJSON(r, http.MethodPost, "/risk/simulate", map[string]interface{}{"group_id": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("SimulateRisk", mock.Anything, mock.MatchedBy(func(req *dto.SimulateRiskRequest) bool {
		return req.StudentID == 7 && req.MissedAssignments != nil && *req.MissedAssignments == 4
	})).Return(&dto.RiskAssessmentResponse{RiskScore: 20, Persisted: false}, nil).Once()
	w = doJSON(r, http.MethodPost, "/risk/simulate", map[string]interface{}{"student_id": 7, "group_id": 3, "missed_assignments": 4})
	assert.Equal(t, http.StatusOK, w.Code)

	svc.On("AssessGroup", mock.Anything, uint(3)).Return([]*dto.RiskAssessmentResponse{{StudentID: 7}, {StudentID: 8}}, nil).Once()
	w = doJSON(r, http.MethodPost, "/risk/groups/3/assess", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w).Data, 2)
	svc.AssertExpectations(t)
}

func TestRiskHandler_Dashboard(t *testing.T) {
	svc := new(mocks.MockRiskAppService)
	h := NewRiskHandler(svc)
	r := newEngine(teacher(1))
	r.GET("/risk/groups/:group_id/dashboard", h.GetGroupDashboard)

	dashboard := &dto.RiskDashboardResponse{
		Summary:          dto.DashboardSummary{TotalAssessed: 1, High: 1},
		CriticalStudents: []dto.CriticalStudentDTO{},
		HighRiskStudents: []dto.HighRiskStudentDTO{{StudentID: 7, RiskScore: 70, MainFactor: "attendance"}},
	}
	svc.On("GetGroupDashboard", mock.Anything, uint(3), models.RiskLow).Return(dashboard, nil).Once()
	svc.On("GetGroupDashboard", mock.Anything, uint(3), models.RiskHigh).Return(dashboard, nil).Once()

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/risk/groups/3/dashboard", nil).Code)
	w := doJSON(r, http.MethodGet, "/risk/groups/3/dashboard?min_level=high", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.EqualValues(t, 1, data["summary"].(map[string]interface{})["high"])

	w = doJSON(r, http.MethodGet, "/risk/groups/3/dashboard?min_level=severe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestRiskHandler_StudentAccess(t *testing.T) {
	svc := new(mocks.MockRiskAppService)
	h := NewRiskHandler(svc)

	tests := []struct {
		name   string
		claims *models.Claims
		path   string
		status int
	}{
		{"student reads own history", student(7), "/risk/students/7/history", http.StatusOK},
		{"student reads other history", student(8), "/risk/students/7/history", http.StatusForbidden},
		{"teacher reads any history", teacher(1), "/risk/students/7/history?limit=3", http.StatusOK},
		{"bad limit", teacher(1), "/risk/students/7/history?limit=x", http.StatusBadRequest},
		{"student reads own factors", student(7), "/risk/students/7/groups/3/factors", http.StatusOK},
		{"student reads other factors", student(8), "/risk/students/7/groups/3/factors", http.StatusForbidden},
	}
	svc.On("GetRiskHistory", mock.Anything, uint(7), constants.DefaultRiskHistoryLimit).Return([]*dto.RiskAssessmentResponse{}, nil)
	svc.On("GetRiskHistory", mock.Anything, uint(7), 3).Return([]*dto.RiskAssessmentResponse{}, nil)
	svc.On("GetStudentRiskFactors", mock.Anything, uint(7), uint(3)).
		Return(&dto.RiskFactorsResponse{HasData: false, RiskLevel: "UNKNOWN", Factors: []dto.FactorScoreDTO{}}, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(tt.claims)
			r.GET("/risk/students/:student_id/history", h.GetRiskHistory)
			r.GET("/risk/students/:student_id/groups/:group_id/factors", h.GetStudentRiskFactors)
			w := doJSON(r, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	healthy := NewHealthHandler(map[string]Pinger{"database": fakePinger{}, "redis": nil}, logger.NewNoopLogger())
	broken := NewHealthHandler(map[string]Pinger{
		"database": fakePinger{},
		"redis":    fakePinger{err: fmt.Errorf("connection refused")},
	}, logger.NewNoopLogger())

	r := gin.New()
	r.GET("/ok/health", healthy.HealthCheck)
	r.GET("/ok/ready", healthy.ReadinessCheck)
	r.GET("/bad/health", broken.HealthCheck)
	r.GET("/bad/ready", broken.ReadinessCheck)
	r.GET("/live", broken.LivenessCheck)

	w := doJSON(r, http.MethodGet, "/ok/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]interface{}{"database": "ok"}, body["checks"])

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/ok/ready", nil).Code)

	w = doJSON(r, http.MethodGet, "/bad/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "error: connection refused", body["checks"].(map[string]interface{})["redis"])

	assert.Equal(t, http.StatusServiceUnavailable, doJSON(r, http.MethodGet, "/bad/ready", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/live", nil).Code)
}
