package selection

import "github.com/sekolahku/ppdb/pkg/core/model"

// Allocate partitions ranked candidates into accepted and rejected sets
// against the per-path quotas.
//
// For each path in paths (a single path for a filtered run, or all four
// for a whole-cohort run) the ranked list is filtered to that path with
// relative rank order preserved; the first quota entries are accepted and
// the remainder rejected. Results are unioned across the processed paths.
// Candidates on paths outside the requested set are not emitted at all -
// a filtered allocation never touches another path's students.
//
// Returns ErrEmptyCandidateSet when no candidate matches any requested
// path, so callers can distinguish "no eligible data" from "zero accepted
// because the quota is zero".
func Allocate(ranked []RankedCandidate, quotas Quotas, paths []model.AdmissionPath) (*Allocation, error) {
	allocation := &Allocation{
		AcceptedIDs: []string{},
		RejectedIDs: []string{},
		ByPath:      make(map[model.AdmissionPath]PathAllocation, len(paths)),
	}

	matched := 0
	for _, path := range paths {
		quota := quotas.PerPath[path]

		pathAlloc := PathAllocation{Accepted: []string{}, Rejected: []string{}}
		for _, candidate := range ranked {
			if candidate.Path != path {
				continue
			}
			matched++
			if len(pathAlloc.Accepted) < quota {
				pathAlloc.Accepted = append(pathAlloc.Accepted, candidate.StudentID)
			} else {
				pathAlloc.Rejected = append(pathAlloc.Rejected, candidate.StudentID)
			}
		}

		allocation.ByPath[path] = pathAlloc
		allocation.AcceptedIDs = append(allocation.AcceptedIDs, pathAlloc.Accepted...)
		allocation.RejectedIDs = append(allocation.RejectedIDs, pathAlloc.Rejected...)
	}

	if matched == 0 {
		return nil, ErrEmptyCandidateSet
	}

	return allocation, nil
}
