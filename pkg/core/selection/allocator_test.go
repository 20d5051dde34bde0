package selection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahku/ppdb/pkg/core/model"
)

// rankedForPath builds n ranked candidates on one path with descending
// scores, ids p-1 (highest) through p-n (lowest)
func rankedForPath(path model.AdmissionPath, prefix string, n int) []RankedCandidate {
	ranked := make([]RankedCandidate, n)
	for i := 0; i < n; i++ {
		ranked[i] = RankedCandidate{
			Candidate:  Candidate{StudentID: fmt.Sprintf("%s-%d", prefix, i+1), Path: path},
			FinalScore: float64(100 - i),
		}
	}
	return ranked
}

func TestAllocate_PartitionExactness(t *testing.T) {
	ranked := rankedForPath(model.PathRegular, "r", 10)
	quotas := Quotas{PerPath: map[model.AdmissionPath]int{model.PathRegular: 3}}

	allocation, err := Allocate(ranked, quotas, []model.AdmissionPath{model.PathRegular})
	require.NoError(t, err)

	// Exactly the 3 highest-ranked accepted, the other 7 rejected
	assert.Equal(t, []string{"r-1", "r-2", "r-3"}, allocation.AcceptedIDs)
	assert.Len(t, allocation.RejectedIDs, 7)

	// No overlap and no omission
	seen := make(map[string]bool)
	for _, id := range append(allocation.AcceptedIDs, allocation.RejectedIDs...) {
		assert.False(t, seen[id], "id %s emitted twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, 10)
}

func TestAllocate_ZeroQuotaRejectsEveryone(t *testing.T) {
	ranked := rankedForPath(model.PathAffirmation, "a", 4)
	quotas := Quotas{PerPath: map[model.AdmissionPath]int{model.PathAffirmation: 0}}

	allocation, err := Allocate(ranked, quotas, []model.AdmissionPath{model.PathAffirmation})
	require.NoError(t, err)

	// Zero quota is a legitimate "all rejected", not an empty-set error
	assert.Empty(t, allocation.AcceptedIDs)
	assert.Len(t, allocation.RejectedIDs, 4)
}

func TestAllocate_QuotaExceedsCandidates(t *testing.T) {
	ranked := rankedForPath(model.PathRegular, "r", 2)
	quotas := Quotas{PerPath: map[model.AdmissionPath]int{model.PathRegular: 10}}

	allocation, err := Allocate(ranked, quotas, []model.AdmissionPath{model.PathRegular})
	require.NoError(t, err)

	assert.Len(t, allocation.AcceptedIDs, 2)
	assert.Empty(t, allocation.RejectedIDs)
}

func TestAllocate_EmptyCandidateSet(t *testing.T) {
	quotas := Quotas{PerPath: map[model.AdmissionPath]int{model.PathRegular: 5}}

	// No candidates at all
	_, err := Allocate([]RankedCandidate{}, quotas, []model.AdmissionPath{model.PathRegular})
	assert.ErrorIs(t, err, ErrEmptyCandidateSet)

	// Candidates exist but none on the requested path - still empty,
	// distinguishable from a zero-quota rejection
	ranked := rankedForPath(model.PathAffirmation, "a", 3)
	_, err = Allocate(ranked, quotas, []model.AdmissionPath{model.PathRegular})
	assert.ErrorIs(t, err, ErrEmptyCandidateSet)
}

func TestAllocate_FilteredRunNeverTouchesOtherPaths(t *testing.T) {
	ranked := append(
		rankedForPath(model.PathRegular, "r", 3),
		rankedForPath(model.PathAffirmation, "a", 3)...,
	)
	quotas := Quotas{PerPath: map[model.AdmissionPath]int{
		model.PathRegular:     1,
		model.PathAffirmation: 1,
	}}

	allocation, err := Allocate(ranked, quotas, []model.AdmissionPath{model.PathRegular})
	require.NoError(t, err)

	// Affirmation students appear nowhere in the result
	for _, id := range append(allocation.AcceptedIDs, allocation.RejectedIDs...) {
		assert.NotContains(t, id, "a-")
	}
	_, touched := allocation.ByPath[model.PathAffirmation]
	assert.False(t, touched)
}

func TestAllocate_WholeCohortUnionsPerPathResults(t *testing.T) {
	// Interleave two paths; per-path relative rank order must survive
	ranked := []RankedCandidate{
		{Candidate: Candidate{StudentID: "r-1", Path: model.PathRegular}, FinalScore: 95},
		{Candidate: Candidate{StudentID: "a-1", Path: model.PathAffirmation}, FinalScore: 90},
		{Candidate: Candidate{StudentID: "r-2", Path: model.PathRegular}, FinalScore: 85},
		{Candidate: Candidate{StudentID: "a-2", Path: model.PathAffirmation}, FinalScore: 80},
		{Candidate: Candidate{StudentID: "r-3", Path: model.PathRegular}, FinalScore: 75},
	}
	quotas := Quotas{PerPath: map[model.AdmissionPath]int{
		model.PathRegular:     2,
		model.PathAffirmation: 1,
	}}

	allocation, err := Allocate(ranked, quotas, model.AllPaths())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"r-1", "r-2", "a-1"}, allocation.AcceptedIDs)
	assert.ElementsMatch(t, []string{"r-3", "a-2"}, allocation.RejectedIDs)

	// Per-path breakdown preserves rank order within each path
	assert.Equal(t, []string{"r-1", "r-2"}, allocation.ByPath[model.PathRegular].Accepted)
	assert.Equal(t, []string{"r-3"}, allocation.ByPath[model.PathRegular].Rejected)
	assert.Equal(t, []string{"a-1"}, allocation.ByPath[model.PathAffirmation].Accepted)
	assert.Equal(t, []string{"a-2"}, allocation.ByPath[model.PathAffirmation].Rejected)

	// Paths with no candidates still get an (empty) entry when processed
	assert.Empty(t, allocation.ByPath[model.PathAcademicAchievement].Accepted)
}
