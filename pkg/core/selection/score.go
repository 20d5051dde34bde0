package selection

import "math"

// ComputeScore computes the composite admission score for one candidate
// under the given weights:
//
//	report*wReport + exam*wExam + skills*wSkills + achievementPoints
//
// Achievement points are added unweighted - they are a bonus on top of
// the percentage pool, not a share of it. Missing inputs arrive as 0 and
// simply contribute nothing. The result is rounded half-up to 2 decimal
// places so identical inputs always produce the identical stored score.
func ComputeScore(c Candidate, w WeightSet) float64 {
	raw := c.ReportAverage*w.Report + c.ExamScore*w.Exam + c.SkillsScore*w.Skills + c.AchievementPoints
	return roundHalfUp2(raw)
}

// roundHalfUp2 rounds to 2 decimal places, half away from zero on the
// third decimal. Scores are non-negative in practice but negative inputs
// round symmetrically.
func roundHalfUp2(v float64) float64 {
	if v < 0 {
		return -math.Floor(-v*100+0.5) / 100
	}
	return math.Floor(v*100+0.5) / 100
}
