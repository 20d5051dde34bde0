package model

import "time"

// AdmissionPath is the enrollment track a student registered under.
// Each path carries its own scoring weights and acceptance quota.
type AdmissionPath string

const (
	PathRegular                AdmissionPath = "regular"
	PathAffirmation            AdmissionPath = "affirmation"
	PathAcademicAchievement    AdmissionPath = "academic_achievement"
	PathNonAcademicAchievement AdmissionPath = "non_academic_achievement"
)

func (p AdmissionPath) IsValid() bool {
	switch p {
	case PathRegular, PathAffirmation, PathAcademicAchievement, PathNonAcademicAchievement:
		return true
	}
	return false
}

// AllPaths returns every admission path in its canonical processing order.
// Whole-cohort selection iterates paths in exactly this order.
func AllPaths() []AdmissionPath {
	return []AdmissionPath{
		PathRegular,
		PathAffirmation,
		PathAcademicAchievement,
		PathNonAcademicAchievement,
	}
}

// VerificationStatus is the document-review gate. A student must be
// Verified before they are eligible for ranking.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) IsValid() bool {
	return s == VerificationPending || s == VerificationVerified || s == VerificationRejected
}

// OutcomeStatus is the admission decision. It transitions from Pending
// only through the selection engine or an explicit admin override, and
// returns to Pending only through re-registration into a later wave.
type OutcomeStatus string

const (
	OutcomePending  OutcomeStatus = "pending"
	OutcomeAccepted OutcomeStatus = "accepted"
	OutcomeRejected OutcomeStatus = "rejected"
)

func (s OutcomeStatus) IsValid() bool {
	return s == OutcomePending || s == OutcomeAccepted || s == OutcomeRejected
}

// Student represents an applicant in the admission pool
type Student struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	SchoolOfOrigin string
	Path           AdmissionPath
	WaveID         string // empty if not attached to an enrollment wave
	Verification   VerificationStatus
	Outcome        OutcomeStatus
	RegisteredAt   time.Time
	Grades         *GradeRecord
}

// GradeRecord holds one student's raw scoring inputs plus the cached
// composite score. FinalScore is only ever recomputed from the four
// inputs and resolved weights, never edited independently.
type GradeRecord struct {
	StudentID         string
	ReportAverage     float64
	ExamScore         float64
	SkillsScore       float64
	AchievementPoints float64
	FinalScore        float64
	Semesters         []SemesterGrade
}

// SemesterGrade is the average of one semester's per-subject entries
type SemesterGrade struct {
	Semester int
	Average  float64
}

// ReportAverageFromSemesters returns the arithmetic mean of all semester
// averages. Semesters count equally regardless of how many subject
// entries each one holds. Returns 0 with no semester data.
func (g *GradeRecord) ReportAverageFromSemesters() float64 {
	if len(g.Semesters) == 0 {
		return 0
	}
	total := 0.0
	for _, sem := range g.Semesters {
		total += sem.Average
	}
	return total / float64(len(g.Semesters))
}
