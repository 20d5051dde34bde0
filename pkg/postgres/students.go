package postgres

import (
	"context"
	"fmt"

	"github.com/sekolahku/ppdb/pkg/db"
)

// GetVerifiedStudents returns a snapshot of verified students joined with
// their grade records. The explicit ORDER BY registered_at, id is what
// makes tied rankings reproducible - the engine preserves this order for
// equal scores.
func (d *DB) GetVerifiedStudents(ctx context.Context, filter db.StudentFilter) ([]db.StudentRecord, error) {
	query := `
		SELECT s.id, s.first_name, s.last_name, s.email, s.school_of_origin,
		       s.path, s.wave_id, s.verification, s.outcome, s.registered_at,
		       COALESCE(g.report_average, 0), COALESCE(g.exam_score, 0),
		       COALESCE(g.skills_score, 0), COALESCE(g.achievement_points, 0),
		       COALESCE(g.final_score, 0)
		FROM student s
		LEFT JOIN grade_record g ON g.student_id = s.id
		WHERE s.verification = 'verified'
	`
	args := []any{}
	if filter.Path != "" {
		args = append(args, filter.Path)
		query += fmt.Sprintf(" AND s.path = $%d", len(args))
	}
	if filter.WaveID != "" {
		args = append(args, filter.WaveID)
		query += fmt.Sprintf(" AND s.wave_id = $%d", len(args))
	}
	query += " ORDER BY s.registered_at, s.id"

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query verified students: %w", err)
	}
	defer rows.Close()

	var students []db.StudentRecord
	for rows.Next() {
		var s db.StudentRecord
		var waveID *string
		if err := rows.Scan(
			&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.SchoolOfOrigin,
			&s.Path, &waveID, &s.Verification, &s.Outcome, &s.RegisteredAt,
			&s.ReportAverage, &s.ExamScore, &s.SkillsScore, &s.AchievementPoints,
			&s.FinalScore,
		); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		if waveID != nil {
			s.WaveID = *waveID
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}

	return students, nil
}

// UpdateOutcome sets a single student's outcome status, used by the
// manual admin override path.
func (d *DB) UpdateOutcome(ctx context.Context, studentID, outcome string) error {
	tag, err := d.pool.Exec(ctx, `UPDATE student SET outcome = $1 WHERE id = $2`, outcome, studentID)
	if err != nil {
		return fmt.Errorf("failed to update outcome: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("student %s not found", studentID)
	}
	return nil
}
