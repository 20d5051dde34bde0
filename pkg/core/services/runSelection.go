package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sekolahku/ppdb/internal/config"
	"github.com/sekolahku/ppdb/pkg/core/model"
	"github.com/sekolahku/ppdb/pkg/core/selection"
	"github.com/sekolahku/ppdb/pkg/db"
)

// RunSelectionStore defines the database operations needed for a
// selection run
type RunSelectionStore interface {
	GetVerifiedStudents(ctx context.Context, filter db.StudentFilter) ([]db.StudentRecord, error)
	UpdateOutcomes(ctx context.Context, accepted, rejected []string, paths []string) error
	db.AuditStore
}

// Notifier delivers best-effort outbound notifications. Failures are
// reported per student and never block or roll back a commit.
type Notifier interface {
	Notify(to, subject, body string) error
}

// NotifyFailure records one notification that could not be delivered
type NotifyFailure struct {
	StudentID string
	Email     string
	Error     string
}

// RunSelectionOptions controls a selection run
type RunSelectionOptions struct {
	Path   model.AdmissionPath // empty for whole-cohort
	WaveID string              // empty for all waves
	DryRun bool
}

// RunSelectionResult contains the selection results. A non-empty
// NotifyFailures or AuditError with a nil error from RunSelection means
// partial success: the outcome writes are durable, only side effects
// failed.
type RunSelectionResult struct {
	Paths          []model.AdmissionPath
	Ranked         []selection.RankedCandidate
	Allocation     *selection.Allocation
	AcceptedCount  int
	RejectedCount  int
	TotalProcessed int
	DryRun         bool
	NotifyFailures []NotifyFailure
	AuditError     string
}

// RunSelection executes the full selection pipeline: snapshot read of
// verified candidates, ranking, quota allocation (filtered to one path or
// the whole cohort), transactional outcome commit, then notifications and
// audit logging.
//
// The commit either fully applies or fails: both bulk outcome writes run
// in one transaction guarded by per-path locks. db.ErrConcurrencyConflict
// means another run holds an overlapping path; the caller retries the
// whole invocation. Notification and audit failures after the commit are
// collected into the result, not returned as errors - the decision is
// already durable at that point.
func RunSelection(
	ctx context.Context,
	store RunSelectionStore,
	notifier Notifier,
	cfg *config.Config,
	logger *zap.Logger,
	opts RunSelectionOptions,
) (*RunSelectionResult, error) {
	if opts.Path != "" && !opts.Path.IsValid() {
		return nil, fmt.Errorf("unknown admission path %q", opts.Path)
	}

	paths := resolvePaths(opts.Path)
	logger.Debug("Starting runSelection",
		zap.Strings("paths", pathStrings(paths)),
		zap.String("wave_id", opts.WaveID),
		zap.Bool("dry_run", opts.DryRun))

	// Step 1: snapshot read. The store returns only verified students in
	// registration order, which doubles as the ranking tie-break.
	records, err := store.GetVerifiedStudents(ctx, db.StudentFilter{
		Path:   string(opts.Path),
		WaveID: opts.WaveID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch verified students: %w", err)
	}
	logger.Debug("Found verified candidates", zap.Int("count", len(records)))

	// Step 2: rank under per-path weights
	ranked := selection.Rank(buildCandidates(records), cfg.WeightConfig())

	// Step 3: partition against quotas
	allocation, err := selection.Allocate(ranked, cfg.SelectionQuotas(), paths)
	if err != nil {
		return nil, err
	}

	result := &RunSelectionResult{
		Paths:          paths,
		Ranked:         ranked,
		Allocation:     allocation,
		AcceptedCount:  len(allocation.AcceptedIDs),
		RejectedCount:  len(allocation.RejectedIDs),
		TotalProcessed: len(allocation.AcceptedIDs) + len(allocation.RejectedIDs),
		DryRun:         opts.DryRun,
		NotifyFailures: []NotifyFailure{},
	}

	logger.Info("Allocation computed",
		zap.Int("accepted", result.AcceptedCount),
		zap.Int("rejected", result.RejectedCount))

	if opts.DryRun {
		logger.Info("Dry run mode - outcomes not saved")
		return result, nil
	}

	// Step 4: transactional commit of both outcome sets
	if err := store.UpdateOutcomes(ctx, allocation.AcceptedIDs, allocation.RejectedIDs, pathStrings(paths)); err != nil {
		return nil, fmt.Errorf("failed to commit outcomes: %w", err)
	}
	logger.Info("Outcomes committed", zap.Int("total", result.TotalProcessed))

	// Step 5: fire-and-forget side effects. From here on the decision is
	// durable; failures are surfaced in the result, never as an error.
	auditEntry := db.AuditEntry{
		ID:         uuid.New().String(),
		Action:     "selection.commit",
		EntityType: "admission_path",
		EntityID:   fmt.Sprintf("%v", pathStrings(paths)),
		Details:    fmt.Sprintf("accepted=%d rejected=%d", result.AcceptedCount, result.RejectedCount),
	}
	if err := store.InsertAuditEntry(ctx, auditEntry); err != nil {
		logger.Warn("Audit log write failed", zap.Error(err))
		result.AuditError = err.Error()
	}

	result.NotifyFailures = sendOutcomeNotifications(notifier, cfg, logger, records, allocation)

	return result, nil
}

// sendOutcomeNotifications emails every decided student their outcome.
// A nil notifier skips delivery entirely (notifications not configured).
func sendOutcomeNotifications(
	notifier Notifier,
	cfg *config.Config,
	logger *zap.Logger,
	records []db.StudentRecord,
	allocation *selection.Allocation,
) []NotifyFailure {
	failures := []NotifyFailure{}
	if notifier == nil {
		logger.Info("Notifier not configured - skipping outcome notifications")
		return failures
	}

	byID := studentsByID(records)
	school := cfg.Notifier.SchoolName

	deliver := func(studentID string, accepted bool) {
		rec, ok := byID[studentID]
		if !ok || rec.Email == "" {
			logger.Warn("No email address for student", zap.String("student_id", studentID))
			return
		}

		subject := fmt.Sprintf("%s admission result", school)
		var body string
		if accepted {
			body = fmt.Sprintf(
				"Dear %s %s,\n\nCongratulations! You have been accepted to %s.\nYour composite score placed you within the quota for the %s path.\n\nPlease complete re-registration before the announced deadline.",
				rec.FirstName, rec.LastName, school, rec.Path)
		} else {
			body = fmt.Sprintf(
				"Dear %s %s,\n\nThank you for applying to %s.\nUnfortunately you were not selected in the %s path this round.\nYou may re-register for the next enrollment wave.",
				rec.FirstName, rec.LastName, school, rec.Path)
		}

		if err := notifier.Notify(rec.Email, subject, body); err != nil {
			logger.Warn("Failed to send outcome notification",
				zap.String("student_id", studentID),
				zap.Error(err))
			failures = append(failures, NotifyFailure{
				StudentID: studentID,
				Email:     rec.Email,
				Error:     err.Error(),
			})
		}
	}

	for _, id := range allocation.AcceptedIDs {
		deliver(id, true)
	}
	for _, id := range allocation.RejectedIDs {
		deliver(id, false)
	}

	return failures
}
