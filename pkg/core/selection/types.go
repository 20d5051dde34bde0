package selection

import (
	"errors"

	"github.com/sekolahku/ppdb/pkg/core/model"
)

// ErrEmptyCandidateSet is returned when an allocation finds no verified
// candidates for the requested paths. Callers use it to tell "no eligible
// data" apart from "every candidate rejected by quota".
var ErrEmptyCandidateSet = errors.New("no verified candidates for the requested paths")

// Candidate is one verified student's scoring inputs. The caller is
// responsible for filtering to verified students before building
// candidates; unverified students must never enter a ranking.
type Candidate struct {
	StudentID string
	Path      model.AdmissionPath

	// Raw inputs. A missing value is carried as 0, never as an error.
	ReportAverage     float64
	ExamScore         float64
	SkillsScore       float64
	AchievementPoints float64
}

// RankedCandidate is a candidate with its computed composite score
type RankedCandidate struct {
	Candidate
	FinalScore float64
}

// Quotas holds the per-path acceptance capacities plus the overall total
// used by manual-quota flows. All capacities are non-negative; the config
// loader enforces that before an allocation ever sees them.
type Quotas struct {
	PerPath map[model.AdmissionPath]int
	Total   int
}

// PathAllocation is the accept/reject split for a single path,
// both slices ordered by rank.
type PathAllocation struct {
	Accepted []string
	Rejected []string
}

// Allocation is the combined result of partitioning ranked candidates
// against quotas. Only paths that were processed appear in ByPath;
// students on untouched paths are never emitted.
type Allocation struct {
	AcceptedIDs []string
	RejectedIDs []string
	ByPath      map[model.AdmissionPath]PathAllocation
}
