package selection

import "sort"

// Rank scores every candidate with the weights resolved for its own path
// and returns them ordered by final score, highest first.
//
// Ties are deliberately not broken by any secondary key: the sort is
// stable, so candidates with equal scores keep their input order. The
// caller controls that order through the snapshot read (registration
// time, then student id), which makes tied rankings reproducible across
// databases instead of depending on incidental row order.
func Rank(candidates []Candidate, cfg WeightConfig) []RankedCandidate {
	ranked := make([]RankedCandidate, len(candidates))
	for i, c := range candidates {
		weights := ResolveWeights(c.Path, cfg)
		ranked[i] = RankedCandidate{
			Candidate:  c,
			FinalScore: ComputeScore(c, weights),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})

	return ranked
}
