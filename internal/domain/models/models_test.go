package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/acadmin/pkg/errors"
)

func TestRiskLevelFromScore(t *testing.T) {
	cases := map[int]RiskLevel{
		0: RiskLow, 10: RiskLow, 30: RiskLow,
		31: RiskMedium, 60: RiskMedium,
		61: RiskHigh, 80: RiskHigh,
		81: RiskCritical, 100: RiskCritical,
	}
	for score, want := range cases {
		assert.Equal(t, want, RiskLevelFromScore(score), "score %d", score)
	}
}

func TestRiskLevel_AtLeast(t *testing.T) {
	assert.True(t, RiskCritical.AtLeast(RiskHigh))
	assert.True(t, RiskHigh.AtLeast(RiskHigh))
	assert.False(t, RiskMedium.AtLeast(RiskHigh))
	assert.True(t, RiskLow.AtLeast(RiskLow))

	l, err := ParseRiskLevel("high")
	require.NoError(t, err)
	assert.Equal(t, RiskHigh, l)
	_, err = ParseRiskLevel("severe")
	assert.Error(t, err)
}

func TestRiskAssessment_MainFactor(t *testing.T) {
	a := &RiskAssessment{}
	assert.Equal(t, "none", a.MainFactor())

	a.Factors = []RiskFactor{
		{Name: FactorAttendance, Contribution: 20},
		{Name: FactorGrades, Contribution: 24},
		{Name: FactorAssignments, Contribution: 24},
	}
	assert.Equal(t, FactorGrades, a.MainFactor())
	assert.True(t, a.HasFactor(FactorAssignments))
	assert.False(t, (&RiskAssessment{}).HasFactor(FactorAssignments))
}

func TestUser_Roles(t *testing.T) {
	u := NewUser("a@uni.edu", "hash", "Ana")
	assert.True(t, u.IsActive)

	require.NoError(t, u.AssignRole(RoleStudent))
	assert.True(t, u.HasRole(RoleStudent))
	assert.True(t, errors.IsConflict(u.AssignRole(RoleStudent)))

	assert.True(t, errors.IsNotFound(u.RemoveRole(RoleAdmin)))
	require.NoError(t, u.RemoveRole(RoleStudent))
	assert.False(t, u.HasAnyRole(RoleStudent, RoleTeacher))

	u.Deactivate()
	assert.False(t, u.IsActive)
	u.Activate()
	assert.True(t, u.IsActive)

	_, err := ParseRoleName("dean")
	assert.Error(t, err)
}

func TestReservation_Transitions(t *testing.T) {
	r := &Reservation{ID: 1, Status: ReservationPending}
	require.NoError(t, r.Confirm())
	assert.Equal(t, ReservationConfirmed, r.Status)
	assert.True(t, errors.IsConflict(r.Confirm()))

	require.NoError(t, r.Cancel())
	assert.Equal(t, ReservationCancelled, r.Status)
	assert.True(t, errors.IsConflict(r.Cancel()))
	assert.True(t, errors.IsConflict(r.Confirm()))
}

func TestInternshipApplication_Decide(t *testing.T) {
	a := NewInternshipApplication(1, 2)
	require.NoError(t, a.Approve("strong profile"))
	assert.Equal(t, ApplicationApproved, a.Status)
	require.NotNil(t, a.DecidedAt)
	assert.True(t, errors.IsConflict(a.Reject("")))

	b := NewInternshipApplication(1, 3)
	require.NoError(t, b.Reject("no slots"))
	assert.Equal(t, ApplicationRejected, b.Status)
	assert.True(t, errors.IsConflict(b.Approve("")))
}

func TestInternship_AcceptsApplications(t *testing.T) {
	now := time.Now()
	i := &Internship{IsOpen: true, Deadline: now.Add(time.Hour)}
	assert.True(t, i.AcceptsApplications(now))
	assert.False(t, i.AcceptsApplications(now.Add(2*time.Hour)))
	i.IsOpen = false
	assert.False(t, i.AcceptsApplications(now))
}

func TestAssignmentSubmission_IsMissed(t *testing.T) {
	now := time.Now()
	submitted := now.Add(-time.Hour)
	assert.True(t, (&AssignmentSubmission{DueAt: now.Add(-time.Minute)}).IsMissed(now))
	assert.False(t, (&AssignmentSubmission{DueAt: now.Add(time.Minute)}).IsMissed(now))
	assert.False(t, (&AssignmentSubmission{DueAt: now.Add(-time.Minute), SubmittedAt: &submitted}).IsMissed(now))
}

func TestEnrollment_Drop(t *testing.T) {
	e := &Enrollment{Status: EnrollmentActive}
	require.NoError(t, e.Drop())
	assert.True(t, errors.IsConflict(e.Drop()))
}

func TestNewGroup(t *testing.T) {
	_, err := NewGroup(1, " ", "2026-1", nil, 30)
	assert.Error(t, err)
	_, err = NewGroup(1, "A", "2026-1", nil, 0)
	assert.Error(t, err)
	g, err := NewGroup(1, " A ", "2026-1", nil, 30)
	require.NoError(t, err)
	assert.Equal(t, "A", g.Name)
}
