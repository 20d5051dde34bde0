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

// ComputeScoresStore defines the database operations needed to recompute
// composite scores
type ComputeScoresStore interface {
	GetVerifiedStudents(ctx context.Context, filter db.StudentFilter) ([]db.StudentRecord, error)
	GetSemesterGrades(ctx context.Context, studentIDs []string) ([]db.SemesterGradeRecord, error)
	UpdateScores(ctx context.Context, updates []db.ScoreUpdate) error
}

// ScoredStudent is one recomputed row for display
type ScoredStudent struct {
	StudentID     string
	Name          string
	Path          model.AdmissionPath
	ReportAverage float64
	FinalScore    float64
}

// ComputeScoresResult contains the recomputation results
type ComputeScoresResult struct {
	Updated  int
	Students []ScoredStudent
}

// ComputeScoresOptions narrows which students get recomputed
type ComputeScoresOptions struct {
	Path   model.AdmissionPath // empty for all paths
	WaveID string              // empty for all waves
}

// ComputeScores recomputes and persists the composite score for every
// verified student matching the filter. It is a bulk read, an in-memory
// recompute, and a single transactional bulk write - never a per-row
// upsert loop, so a retry after a transient failure re-applies the same
// batch cleanly.
//
// The report average is rebuilt first as the plain mean of the student's
// semester averages; students without semester rows keep their stored
// average.
func ComputeScores(
	ctx context.Context,
	store ComputeScoresStore,
	cfg *config.Config,
	logger *zap.Logger,
	opts ComputeScoresOptions,
) (*ComputeScoresResult, error) {
	if opts.Path != "" && !opts.Path.IsValid() {
		return nil, fmt.Errorf("unknown admission path %q", opts.Path)
	}

	logger.Debug("Starting computeScores",
		zap.String("path", string(opts.Path)),
		zap.String("wave_id", opts.WaveID))

	// Step 1: snapshot read of verified students with grade records
	records, err := store.GetVerifiedStudents(ctx, db.StudentFilter{
		Path:   string(opts.Path),
		WaveID: opts.WaveID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch verified students: %w", err)
	}
	logger.Debug("Found verified students", zap.Int("count", len(records)))

	if len(records) == 0 {
		return &ComputeScoresResult{Students: []ScoredStudent{}}, nil
	}

	// Step 2: rebuild report averages from semester grades
	studentIDs := make([]string, len(records))
	for i, rec := range records {
		studentIDs[i] = rec.ID
	}
	semesterGrades, err := store.GetSemesterGrades(ctx, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch semester grades: %w", err)
	}
	logger.Debug("Found semester grades", zap.Int("count", len(semesterGrades)))

	semestersByStudent := make(map[string][]model.SemesterGrade)
	for _, sg := range semesterGrades {
		semestersByStudent[sg.StudentID] = append(semestersByStudent[sg.StudentID], model.SemesterGrade{
			Semester: sg.Semester,
			Average:  sg.Average,
		})
	}

	// Step 3: in-memory recompute under each student's own path weights
	weightCfg := cfg.WeightConfig()
	updates := make([]db.ScoreUpdate, 0, len(records))
	scored := make([]ScoredStudent, 0, len(records))

	for _, rec := range records {
		reportAverage := rec.ReportAverage
		if semesters, ok := semestersByStudent[rec.ID]; ok {
			grade := model.GradeRecord{Semesters: semesters}
			reportAverage = grade.ReportAverageFromSemesters()
		}

		path := model.AdmissionPath(rec.Path)
		weights := selection.ResolveWeights(path, weightCfg)
		finalScore := selection.ComputeScore(selection.Candidate{
			StudentID:         rec.ID,
			Path:              path,
			ReportAverage:     reportAverage,
			ExamScore:         rec.ExamScore,
			SkillsScore:       rec.SkillsScore,
			AchievementPoints: rec.AchievementPoints,
		}, weights)

		updates = append(updates, db.ScoreUpdate{
			StudentID:     rec.ID,
			ReportAverage: reportAverage,
			FinalScore:    finalScore,
		})
		scored = append(scored, ScoredStudent{
			StudentID:     rec.ID,
			Name:          fmt.Sprintf("%s %s", rec.FirstName, rec.LastName),
			Path:          path,
			ReportAverage: reportAverage,
			FinalScore:    finalScore,
		})
	}

	// Step 4: single bulk write
	if err := store.UpdateScores(ctx, updates); err != nil {
		return nil, fmt.Errorf("failed to save scores: %w", err)
	}

	logger.Info("Composite scores recomputed", zap.Int("updated", len(updates)))

	return &ComputeScoresResult{
		Updated:  len(updates),
		Students: scored,
	}, nil
}
