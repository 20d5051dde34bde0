package db

import "time"

// StudentRecord is a database student row joined with its grade record.
// Snapshot reads return these ordered by registration time then id, which
// is the order the ranking engine relies on for tie stability.
type StudentRecord struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	SchoolOfOrigin string
	Path           string
	WaveID         string
	Verification   string
	Outcome        string
	RegisteredAt   time.Time

	ReportAverage     float64
	ExamScore         float64
	SkillsScore       float64
	AchievementPoints float64
	FinalScore        float64
}

// SemesterGradeRecord is one semester-average row for a student
type SemesterGradeRecord struct {
	StudentID string
	Semester  int
	Average   float64
}

// ScoreUpdate is one recomputed composite score headed for persistence
type ScoreUpdate struct {
	StudentID     string
	ReportAverage float64
	FinalScore    float64
}

// AuditEntry is a fire-and-forget audit trail row
type AuditEntry struct {
	ID         string
	Action     string
	EntityType string
	EntityID   string
	Details    string
	CreatedAt  time.Time
}
