package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportAverageFromSemesters(t *testing.T) {
	g := &GradeRecord{
		Semesters: []SemesterGrade{
			{Semester: 1, Average: 80},
			{Semester: 2, Average: 90},
			{Semester: 3, Average: 70},
		},
	}

	// Plain mean of the semester averages: (80+90+70)/3 = 80.
	// Semesters weigh equally no matter how many subject entries fed them.
	assert.InDelta(t, 80.0, g.ReportAverageFromSemesters(), 1e-9)

	empty := &GradeRecord{}
	assert.Equal(t, 0.0, empty.ReportAverageFromSemesters())
}

func TestAdmissionPathIsValid(t *testing.T) {
	for _, path := range AllPaths() {
		assert.True(t, path.IsValid())
	}
	assert.False(t, AdmissionPath("scholarship").IsValid())
	assert.False(t, AdmissionPath("").IsValid())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, VerificationVerified.IsValid())
	assert.False(t, VerificationStatus("checked").IsValid())

	assert.True(t, OutcomeAccepted.IsValid())
	assert.False(t, OutcomeStatus("waitlisted").IsValid())
}
