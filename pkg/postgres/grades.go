package postgres

import (
	"context"
	"fmt"

	"github.com/sekolahku/ppdb/pkg/db"
)

// GetSemesterGrades returns all semester-average rows for the given
// students, ordered by student then semester.
func (d *DB) GetSemesterGrades(ctx context.Context, studentIDs []string) ([]db.SemesterGradeRecord, error) {
	if len(studentIDs) == 0 {
		return []db.SemesterGradeRecord{}, nil
	}

	rows, err := d.pool.Query(ctx, `
		SELECT student_id, semester, average
		FROM semester_grade
		WHERE student_id = ANY($1)
		ORDER BY student_id, semester
	`, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query semester grades: %w", err)
	}
	defer rows.Close()

	var grades []db.SemesterGradeRecord
	for rows.Next() {
		var g db.SemesterGradeRecord
		if err := rows.Scan(&g.StudentID, &g.Semester, &g.Average); err != nil {
			return nil, fmt.Errorf("failed to scan semester grade: %w", err)
		}
		grades = append(grades, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating semester grades: %w", err)
	}

	return grades, nil
}

// UpdateScores persists recomputed composite scores in one transaction.
// The whole batch applies or none of it does.
func (d *DB) UpdateScores(ctx context.Context, updates []db.ScoreUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, u := range updates {
		_, err := tx.Exec(ctx, `
			UPDATE grade_record
			SET report_average = $1, final_score = $2, updated_at = NOW()
			WHERE student_id = $3
		`, u.ReportAverage, u.FinalScore, u.StudentID)
		if err != nil {
			return fmt.Errorf("failed to update score for student %s: %w", u.StudentID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
