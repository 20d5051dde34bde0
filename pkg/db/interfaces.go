package db

import (
	"context"
	"errors"
)

// ErrConcurrencyConflict is returned when an outcome commit cannot take
// the per-path exclusivity it needs because another selection run holds
// it. The whole invocation is safe to retry: reads are re-taken and
// outcome writes are idempotent.
var ErrConcurrencyConflict = errors.New("another selection run holds a lock on a requested admission path")

// StudentFilter narrows a candidate snapshot read. Empty fields match
// everything.
type StudentFilter struct {
	Path   string
	WaveID string
}

// StudentStore defines the persistence operations the selection engine
// consumes. Implementations return only verified students from
// GetVerifiedStudents - the engine does not re-check verification.
type StudentStore interface {
	// GetVerifiedStudents returns a snapshot of verified students with
	// their grade records, ordered by registration time then id.
	GetVerifiedStudents(ctx context.Context, filter StudentFilter) ([]StudentRecord, error)

	// GetSemesterGrades returns all semester-average rows for the given
	// students, used to recompute report averages.
	GetSemesterGrades(ctx context.Context, studentIDs []string) ([]SemesterGradeRecord, error)

	// UpdateScores persists recomputed composite scores in one transaction
	UpdateScores(ctx context.Context, updates []ScoreUpdate) error

	// UpdateOutcomes applies an allocation: every id in accepted becomes
	// Accepted and every id in rejected becomes Rejected, in a single
	// transaction guarded by per-path locks for the listed paths. Returns
	// ErrConcurrencyConflict if any path lock cannot be acquired.
	UpdateOutcomes(ctx context.Context, accepted, rejected []string, paths []string) error

	// UpdateOutcome sets one student's outcome, for manual admin overrides
	UpdateOutcome(ctx context.Context, studentID, outcome string) error
}

// AuditStore records audit trail entries. Failures are logged by callers
// and never escalate.
type AuditStore interface {
	InsertAuditEntry(ctx context.Context, entry AuditEntry) error
}
