package services

import (
	"github.com/sekolahku/ppdb/pkg/core/model"
	"github.com/sekolahku/ppdb/pkg/core/selection"
	"github.com/sekolahku/ppdb/pkg/db"
)

// buildCandidates converts snapshot rows to engine candidates, preserving
// the snapshot's order. That order is the ranking tie-break, so nothing
// here may reorder the slice.
func buildCandidates(records []db.StudentRecord) []selection.Candidate {
	candidates := make([]selection.Candidate, len(records))
	for i, rec := range records {
		candidates[i] = selection.Candidate{
			StudentID:         rec.ID,
			Path:              model.AdmissionPath(rec.Path),
			ReportAverage:     rec.ReportAverage,
			ExamScore:         rec.ExamScore,
			SkillsScore:       rec.SkillsScore,
			AchievementPoints: rec.AchievementPoints,
		}
	}
	return candidates
}

// toStudent maps a snapshot row to the domain record
func toStudent(rec db.StudentRecord) model.Student {
	return model.Student{
		ID:             rec.ID,
		FirstName:      rec.FirstName,
		LastName:       rec.LastName,
		Email:          rec.Email,
		SchoolOfOrigin: rec.SchoolOfOrigin,
		Path:           model.AdmissionPath(rec.Path),
		WaveID:         rec.WaveID,
		Verification:   model.VerificationStatus(rec.Verification),
		Outcome:        model.OutcomeStatus(rec.Outcome),
		RegisteredAt:   rec.RegisteredAt,
	}
}

// studentsByID builds a lookup map over snapshot rows
func studentsByID(records []db.StudentRecord) map[string]model.Student {
	byID := make(map[string]model.Student, len(records))
	for _, rec := range records {
		byID[rec.ID] = toStudent(rec)
	}
	return byID
}

// resolvePaths returns the paths a selection run processes: the single
// requested path for a filtered run, or every path for a whole-cohort run.
func resolvePaths(pathFilter model.AdmissionPath) []model.AdmissionPath {
	if pathFilter != "" {
		return []model.AdmissionPath{pathFilter}
	}
	return model.AllPaths()
}

// pathStrings converts paths for the store layer
func pathStrings(paths []model.AdmissionPath) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = string(p)
	}
	return out
}
