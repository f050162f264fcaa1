package postgres

import (
	"time"

	"github.com/turtacn/acadmin/internal/domain/models"
)

// Database models are kept apart from the domain types so that gorm tags and
// association plumbing never leak into the domain layer.

type roleDBM struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(32);uniqueIndex;not null"`
}

func (roleDBM) TableName() string { return "roles" }

type userDBM struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	FullName     string    `gorm:"type:varchar(255);not null"`
	IsActive     bool      `gorm:"not null"`
	Roles        []roleDBM `gorm:"many2many:user_roles;joinForeignKey:UserID;joinReferences:RoleID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userDBM) TableName() string { return "users" }

func (m *userDBM) toDomain() *models.User {
	u := &models.User{
		ID:           m.ID,
		Email:        models.Email(m.Email),
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		IsActive:     m.IsActive,
		Roles:        make([]models.RoleName, 0, len(m.Roles)),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	for _, r := range m.Roles {
		u.Roles = append(u.Roles, models.RoleName(r.Name))
	}
	return u
}

type subjectDBM struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"type:varchar(16);uniqueIndex;not null"`
	Name        string `gorm:"type:varchar(255);not null"`
	Credits     int    `gorm:"not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
}

func (subjectDBM) TableName() string { return "subjects" }

func (m *subjectDBM) toDomain() *models.Subject {
	return &models.Subject{
		ID:          m.ID,
		Code:        models.SubjectCode(m.Code),
		Name:        m.Name,
		Credits:     models.Credits(m.Credits),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

func subjectFromDomain(s *models.Subject) *subjectDBM {
	return &subjectDBM{
		ID:          s.ID,
		Code:        string(s.Code),
		Name:        s.Name,
		Credits:     int(s.Credits),
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
	}
}

type groupDBM struct {
	ID        uint   `gorm:"primaryKey"`
	SubjectID uint   `gorm:"index;not null"`
	Name      string `gorm:"type:varchar(64);not null"`
	Period    string `gorm:"type:varchar(32)"`
	TeacherID *uint  `gorm:"index"`
	Capacity  int    `gorm:"not null"`
	CreatedAt time.Time
}

func (groupDBM) TableName() string { return "course_groups" }

func (m *groupDBM) toDomain() *models.Group {
	return &models.Group{
		ID:        m.ID,
		SubjectID: m.SubjectID,
		Name:      m.Name,
		Period:    m.Period,
		TeacherID: m.TeacherID,
		Capacity:  m.Capacity,
		CreatedAt: m.CreatedAt,
	}
}

type enrollmentDBM struct {
	ID         uint   `gorm:"primaryKey"`
	StudentID  uint   `gorm:"index:idx_enrollment_student_group;not null"`
	GroupID    uint   `gorm:"index:idx_enrollment_student_group;index;not null"`
	Status     string `gorm:"type:varchar(16);not null"`
	EnrolledAt time.Time
}

func (enrollmentDBM) TableName() string { return "enrollments" }

func (m *enrollmentDBM) toDomain() *models.Enrollment {
	return &models.Enrollment{
		ID:         m.ID,
		StudentID:  m.StudentID,
		GroupID:    m.GroupID,
		Status:     models.EnrollmentStatus(m.Status),
		EnrolledAt: m.EnrolledAt,
	}
}

type attendanceDBM struct {
	ID          uint      `gorm:"primaryKey"`
	StudentID   uint      `gorm:"index:idx_attendance_student_group;not null"`
	GroupID     uint      `gorm:"index:idx_attendance_student_group;not null"`
	SessionDate time.Time `gorm:"not null"`
	Present     bool      `gorm:"not null"`
}

func (attendanceDBM) TableName() string { return "attendance_records" }

type gradeDBM struct {
	ID        uint      `gorm:"primaryKey"`
	StudentID uint      `gorm:"index:idx_grade_student_group;not null"`
	GroupID   uint      `gorm:"index:idx_grade_student_group;not null"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Score     float64   `gorm:"not null"`
	GradedAt  time.Time `gorm:"not null"`
}

func (gradeDBM) TableName() string { return "grade_records" }

type submissionDBM struct {
	ID              uint      `gorm:"primaryKey"`
	StudentID       uint      `gorm:"index:idx_submission_student_group;not null"`
	GroupID         uint      `gorm:"index:idx_submission_student_group;not null"`
	AssignmentTitle string    `gorm:"type:varchar(255);not null"`
	DueAt           time.Time `gorm:"not null"`
	SubmittedAt     *time.Time
}

func (submissionDBM) TableName() string { return "assignment_submissions" }

type resourceDBM struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"type:varchar(255);not null"`
	Kind     string `gorm:"type:varchar(16);not null"`
	Capacity int
	IsActive bool `gorm:"not null"`
}

func (resourceDBM) TableName() string { return "resources" }

func (m *resourceDBM) toDomain() *models.Resource {
	return &models.Resource{
		ID:       m.ID,
		Name:     m.Name,
		Kind:     models.ResourceKind(m.Kind),
		Capacity: m.Capacity,
		IsActive: m.IsActive,
	}
}

type reservationDBM struct {
	ID         uint      `gorm:"primaryKey"`
	ResourceID uint      `gorm:"index:idx_reservation_resource_window;not null"`
	UserID     uint      `gorm:"index;not null"`
	StartsAt   time.Time `gorm:"index:idx_reservation_resource_window;not null"`
	EndsAt     time.Time `gorm:"not null"`
	Purpose    string    `gorm:"type:text"`
	Status     string    `gorm:"type:varchar(16);not null"`
	CreatedAt  time.Time
}

func (reservationDBM) TableName() string { return "reservations" }

func (m *reservationDBM) toDomain() *models.Reservation {
	return &models.Reservation{
		ID:         m.ID,
		ResourceID: m.ResourceID,
		UserID:     m.UserID,
		Slot:       models.TimeSlot{Start: m.StartsAt.UTC(), End: m.EndsAt.UTC()},
		Purpose:    m.Purpose,
		Status:     models.ReservationStatus(m.Status),
		CreatedAt:  m.CreatedAt,
	}
}

func reservationFromDomain(r *models.Reservation) *reservationDBM {
	return &reservationDBM{
		ID:         r.ID,
		ResourceID: r.ResourceID,
		UserID:     r.UserID,
		StartsAt:   r.Slot.Start,
		EndsAt:     r.Slot.End,
		Purpose:    r.Purpose,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
	}
}

type internshipDBM struct {
	ID          uint      `gorm:"primaryKey"`
	Company     string    `gorm:"type:varchar(255);not null"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Slots       int       `gorm:"not null"`
	Deadline    time.Time `gorm:"not null"`
	IsOpen      bool      `gorm:"not null"`
	CreatedAt   time.Time
}

func (internshipDBM) TableName() string { return "internships" }

func (m *internshipDBM) toDomain() *models.Internship {
	return &models.Internship{
		ID:          m.ID,
		Company:     m.Company,
		Title:       m.Title,
		Description: m.Description,
		Slots:       m.Slots,
		Deadline:    m.Deadline.UTC(),
		IsOpen:      m.IsOpen,
		CreatedAt:   m.CreatedAt,
	}
}

type applicationDBM struct {
	ID           uint   `gorm:"primaryKey"`
	InternshipID uint   `gorm:"uniqueIndex:idx_application_internship_student;not null"`
	StudentID    uint   `gorm:"uniqueIndex:idx_application_internship_student;not null"`
	Status       string `gorm:"type:varchar(16);not null"`
	Note         string `gorm:"type:text"`
	AppliedAt    time.Time
	DecidedAt    *time.Time
}

func (applicationDBM) TableName() string { return "internship_applications" }

func (m *applicationDBM) toDomain() *models.InternshipApplication {
	return &models.InternshipApplication{
		ID:           m.ID,
		InternshipID: m.InternshipID,
		StudentID:    m.StudentID,
		Status:       models.ApplicationStatus(m.Status),
		Note:         m.Note,
		AppliedAt:    m.AppliedAt,
		DecidedAt:    m.DecidedAt,
	}
}

func applicationFromDomain(a *models.InternshipApplication) *applicationDBM {
	return &applicationDBM{
		ID:           a.ID,
		InternshipID: a.InternshipID,
		StudentID:    a.StudentID,
		Status:       string(a.Status),
		Note:         a.Note,
		AppliedAt:    a.AppliedAt,
		DecidedAt:    a.DecidedAt,
	}
}

type riskFactorDBM struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
	Explanation  string  `json:"explanation"`
}

type riskAssessmentDBM struct {
	ID                uint            `gorm:"primaryKey"`
	StudentID         uint            `gorm:"index:idx_risk_student_group;not null"`
	GroupID           uint            `gorm:"index:idx_risk_student_group;index;not null"`
	RiskScore         int             `gorm:"not null"`
	RiskLevel         string          `gorm:"type:varchar(16);index;not null"`
	AttendanceScore   int             `gorm:"not null"`
	GradesScore       int             `gorm:"not null"`
	AssignmentsScore  int             `gorm:"not null"`
	Factors           []riskFactorDBM `gorm:"serializer:json;type:text"`
	Recommendation    string          `gorm:"type:text"`
	AttendanceRate    float64
	AverageGrade      float64
	MissedAssignments int
	AssessedAt        time.Time `gorm:"index;not null"`
}

func (riskAssessmentDBM) TableName() string { return "risk_assessments" }

func (m *riskAssessmentDBM) toDomain() *models.RiskAssessment {
	a := &models.RiskAssessment{
		ID:               m.ID,
		StudentID:        m.StudentID,
		GroupID:          m.GroupID,
		RiskScore:        m.RiskScore,
		RiskLevel:        models.RiskLevel(m.RiskLevel),
		AttendanceScore:  m.AttendanceScore,
		GradesScore:      m.GradesScore,
		AssignmentsScore: m.AssignmentsScore,
		Factors:          make([]models.RiskFactor, 0, len(m.Factors)),
		Recommendation:   m.Recommendation,
		Metrics: models.RiskMetrics{
			AttendanceRate:    m.AttendanceRate,
			AverageGrade:      m.AverageGrade,
			MissedAssignments: m.MissedAssignments,
		},
		AssessedAt: m.AssessedAt.UTC(),
	}
	for _, f := range m.Factors {
		a.Factors = append(a.Factors, models.RiskFactor{Name: f.Name, Contribution: f.Contribution, Explanation: f.Explanation})
	}
	return a
}

func riskAssessmentFromDomain(a *models.RiskAssessment) *riskAssessmentDBM {
	m := &riskAssessmentDBM{
		ID:                a.ID,
		StudentID:         a.StudentID,
		GroupID:           a.GroupID,
		RiskScore:         a.RiskScore,
		RiskLevel:         string(a.RiskLevel),
		AttendanceScore:   a.AttendanceScore,
		GradesScore:       a.GradesScore,
		AssignmentsScore:  a.AssignmentsScore,
		Factors:           make([]riskFactorDBM, 0, len(a.Factors)),
		Recommendation:    a.Recommendation,
		AttendanceRate:    a.Metrics.AttendanceRate,
		AverageGrade:      a.Metrics.AverageGrade,
		MissedAssignments: a.Metrics.MissedAssignments,
		AssessedAt:        a.AssessedAt,
	}
	for _, f := range a.Factors {
		m.Factors = append(m.Factors, riskFactorDBM{Name: f.Name, Contribution: f.Contribution, Explanation: f.Explanation})
	}
	return m
}
