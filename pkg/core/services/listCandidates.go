package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sekolahku/ppdb/internal/config"
	"github.com/sekolahku/ppdb/pkg/core/model"
	"github.com/sekolahku/ppdb/pkg/core/selection"
	"github.com/sekolahku/ppdb/pkg/db"
)

// RankedRow is one line of the ranked candidate view
type RankedRow struct {
	Rank       int
	StudentID  string
	Name       string
	Path       model.AdmissionPath
	FinalScore float64
	Outcome    model.OutcomeStatus
}

// ListCandidates returns the current ranked order of verified candidates
// without committing anything. Admins check this view before triggering
// a selection run.
func ListCandidates(
	ctx context.Context,
	store db.StudentStore,
	cfg *config.Config,
	logger *zap.Logger,
	pathFilter model.AdmissionPath,
	waveID string,
) ([]RankedRow, error) {
	if pathFilter != "" && !pathFilter.IsValid() {
		return nil, fmt.Errorf("unknown admission path %q", pathFilter)
	}

	records, err := store.GetVerifiedStudents(ctx, db.StudentFilter{
		Path:   string(pathFilter),
		WaveID: waveID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch verified students: %w", err)
	}
	logger.Debug("Found verified candidates", zap.Int("count", len(records)))

	ranked := selection.Rank(buildCandidates(records), cfg.WeightConfig())

	byID := studentsByID(records)
	rows := make([]RankedRow, len(ranked))
	for i, rc := range ranked {
		student := byID[rc.StudentID]
		rows[i] = RankedRow{
			Rank:       i + 1,
			StudentID:  rc.StudentID,
			Name:       fmt.Sprintf("%s %s", student.FirstName, student.LastName),
			Path:       rc.Path,
			FinalScore: rc.FinalScore,
			Outcome:    student.Outcome,
		}
	}

	return rows, nil
}
