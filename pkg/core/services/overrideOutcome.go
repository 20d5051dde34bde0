package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sekolahku/ppdb/pkg/core/model"
	"github.com/sekolahku/ppdb/pkg/db"
)

// OverrideOutcomeStore defines the database operations needed for a
// manual outcome override
type OverrideOutcomeStore interface {
	UpdateOutcome(ctx context.Context, studentID, outcome string) error
	db.AuditStore
}

// OverrideOutcome sets one student's admission outcome by explicit admin
// action. Together with the selection engine this is the only legal way
// an outcome leaves Pending; it is always audited. Only Accepted and
// Rejected may be set here - moving a student back to Pending belongs to
// the re-registration flow, not an override.
func OverrideOutcome(
	ctx context.Context,
	store OverrideOutcomeStore,
	logger *zap.Logger,
	studentID string,
	outcome model.OutcomeStatus,
) error {
	if outcome != model.OutcomeAccepted && outcome != model.OutcomeRejected {
		return fmt.Errorf("outcome must be %q or %q, got %q", model.OutcomeAccepted, model.OutcomeRejected, outcome)
	}

	if err := store.UpdateOutcome(ctx, studentID, string(outcome)); err != nil {
		return fmt.Errorf("failed to override outcome: %w", err)
	}

	logger.Info("Outcome overridden",
		zap.String("student_id", studentID),
		zap.String("outcome", string(outcome)))

	entry := db.AuditEntry{
		ID:         uuid.New().String(),
		Action:     "outcome.override",
		EntityType: "student",
		EntityID:   studentID,
		Details:    fmt.Sprintf("outcome=%s", outcome),
	}
	if err := store.InsertAuditEntry(ctx, entry); err != nil {
		// The override itself is durable; surface the audit miss in logs only
		logger.Warn("Audit log write failed", zap.Error(err))
	}

	return nil
}
