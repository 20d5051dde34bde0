package selection

import "github.com/sekolahku/ppdb/pkg/core/model"

// WeightSet is a resolved weight tuple with report/exam/skills expressed
// as fractions in [0,1]. Achievement is different: it is an additive
// bonus, added to the score as raw points without being divided by 100.
// The configured achievement percentage is nominal only - it documents
// the path's intent but never scales the achievement term. Normalizing
// it would reorder existing rankings.
type WeightSet struct {
	Report      float64
	Exam        float64
	Skills      float64
	Achievement float64 // nominal fraction, informational only
}

// PathWeights is one path's weight tuple as integer percentages.
// Nil fields mean "not configured" and fall back to the path's
// built-in default for that field.
type PathWeights struct {
	Report      *int
	Exam        *int
	Skills      *int
	Achievement *int
}

// GlobalWeights are the organization-level default percentages used when
// a path has neither an override nor a built-in default.
type GlobalWeights struct {
	Report      int
	Exam        int
	Skills      int
	Achievement int
}

// DefaultGlobalWeights returns the built-in global fallback (40/30/30/0)
func DefaultGlobalWeights() GlobalWeights {
	return GlobalWeights{Report: 40, Exam: 30, Skills: 30, Achievement: 0}
}

// WeightConfig is the full weight configuration for one invocation,
// loaded once and passed through explicitly. The engine never reads
// weights from ambient state.
type WeightConfig struct {
	Defaults      GlobalWeights
	PathOverrides map[model.AdmissionPath]PathWeights
}

// pathDefaultTable holds the built-in per-path percentages
var pathDefaultTable = map[model.AdmissionPath]GlobalWeights{
	model.PathRegular:                {Report: 0, Exam: 50, Skills: 50, Achievement: 0},
	model.PathAffirmation:            {Report: 0, Exam: 50, Skills: 50, Achievement: 0},
	model.PathAcademicAchievement:    {Report: 30, Exam: 30, Skills: 30, Achievement: 10},
	model.PathNonAcademicAchievement: {Report: 0, Exam: 30, Skills: 30, Achievement: 40},
}

// PathDefaults returns the built-in percentage tuple for a path and
// whether the path has one. Paths outside the table fall back to the
// configured global defaults.
func PathDefaults(path model.AdmissionPath) (GlobalWeights, bool) {
	w, ok := pathDefaultTable[path]
	return w, ok
}

// ResolveWeights produces the weight tuple used to score one student on
// the given path. Resolution order per field: path override if set, then
// the built-in path default, then the global defaults. Absent or zero
// values resolve to 0; there are no error conditions.
func ResolveWeights(path model.AdmissionPath, cfg WeightConfig) WeightSet {
	base, ok := PathDefaults(path)
	if !ok {
		base = cfg.Defaults
	}

	if override, exists := cfg.PathOverrides[path]; exists {
		if override.Report != nil {
			base.Report = *override.Report
		}
		if override.Exam != nil {
			base.Exam = *override.Exam
		}
		if override.Skills != nil {
			base.Skills = *override.Skills
		}
		if override.Achievement != nil {
			base.Achievement = *override.Achievement
		}
	}

	return WeightSet{
		Report:      float64(base.Report) / 100,
		Exam:        float64(base.Exam) / 100,
		Skills:      float64(base.Skills) / 100,
		Achievement: float64(base.Achievement) / 100,
	}
}

// EffectivePercentages resolves the integer percentage tuple for a path
// without converting to fractions. Used by configuration validation and
// the showConfig view.
func EffectivePercentages(path model.AdmissionPath, cfg WeightConfig) GlobalWeights {
	base, ok := PathDefaults(path)
	if !ok {
		base = cfg.Defaults
	}
	if override, exists := cfg.PathOverrides[path]; exists {
		if override.Report != nil {
			base.Report = *override.Report
		}
		if override.Exam != nil {
			base.Exam = *override.Exam
		}
		if override.Skills != nil {
			base.Skills = *override.Skills
		}
		if override.Achievement != nil {
			base.Achievement = *override.Achievement
		}
	}
	return base
}
