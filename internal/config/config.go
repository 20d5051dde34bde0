package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/sekolahku/ppdb/pkg/core/model"
	"github.com/sekolahku/ppdb/pkg/core/selection"
)

// ErrInvalid wraps every configuration validation failure so callers can
// surface it to the admin before any computation runs.
var ErrInvalid = errors.New("invalid configuration")

// WeightTuple is one weight tuple as integer percentages. Nil fields in
// an override fall back to the path's built-in default.
type WeightTuple struct {
	Report      *int `yaml:"report,omitempty" validate:"omitempty,min=0,max=100"`
	Exam        *int `yaml:"exam,omitempty" validate:"omitempty,min=0,max=100"`
	Skills      *int `yaml:"skills,omitempty" validate:"omitempty,min=0,max=100"`
	Achievement *int `yaml:"achievement,omitempty" validate:"omitempty,min=0,max=100"`
}

// WeightsConfig holds the global default weights and optional per-path
// override tuples.
type WeightsConfig struct {
	Defaults      WeightTuple            `yaml:"defaults"`
	PathOverrides map[string]WeightTuple `yaml:"pathOverrides,omitempty" validate:"dive"`
}

// QuotasConfig holds the per-path capacities and the overall total
type QuotasConfig struct {
	PerPath map[string]int `yaml:"perPath" validate:"dive,min=0"`
	Total   int            `yaml:"total" validate:"min=0"`
}

// NotifierConfig configures outcome notification emails. Sender may be
// empty, in which case the Gmail account's address is used.
type NotifierConfig struct {
	GmailUserID string `yaml:"gmailUserID,omitempty"`
	Sender      string `yaml:"sender,omitempty"`
	SchoolName  string `yaml:"schoolName" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	Weights  WeightsConfig  `yaml:"weights"`
	Quotas   QuotasConfig   `yaml:"quotas" validate:"required"`
	Notifier NotifierConfig `yaml:"notifier"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from ppdb_config.yaml,
// looking in the current directory first, then the user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate runs struct validation plus the semantic checks: path keys
// must be known admission paths, quotas non-negative, and the effective
// report+exam+skills+achievement percentages for every path must sum to
// 100. The achievement share is nominal for scoring but still part of
// the configured split.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	for pathName := range cfg.Weights.PathOverrides {
		if !model.AdmissionPath(pathName).IsValid() {
			return fmt.Errorf("%w: unknown admission path %q in weights.pathOverrides", ErrInvalid, pathName)
		}
	}
	for pathName, quota := range cfg.Quotas.PerPath {
		if !model.AdmissionPath(pathName).IsValid() {
			return fmt.Errorf("%w: unknown admission path %q in quotas.perPath", ErrInvalid, pathName)
		}
		if quota < 0 {
			return fmt.Errorf("%w: quota for path %q is negative", ErrInvalid, pathName)
		}
	}

	weightCfg := cfg.WeightConfig()
	for _, path := range model.AllPaths() {
		pct := selection.EffectivePercentages(path, weightCfg)
		sum := pct.Report + pct.Exam + pct.Skills + pct.Achievement
		if sum != 100 {
			return fmt.Errorf("%w: weights for path %q sum to %d, want 100", ErrInvalid, path, sum)
		}
	}

	return nil
}

// WeightConfig converts the loaded settings into the engine's weight
// configuration value object.
func (c *Config) WeightConfig() selection.WeightConfig {
	defaults := selection.DefaultGlobalWeights()
	if c.Weights.Defaults.Report != nil {
		defaults.Report = *c.Weights.Defaults.Report
	}
	if c.Weights.Defaults.Exam != nil {
		defaults.Exam = *c.Weights.Defaults.Exam
	}
	if c.Weights.Defaults.Skills != nil {
		defaults.Skills = *c.Weights.Defaults.Skills
	}
	if c.Weights.Defaults.Achievement != nil {
		defaults.Achievement = *c.Weights.Defaults.Achievement
	}

	overrides := make(map[model.AdmissionPath]selection.PathWeights, len(c.Weights.PathOverrides))
	for pathName, tuple := range c.Weights.PathOverrides {
		overrides[model.AdmissionPath(pathName)] = selection.PathWeights{
			Report:      tuple.Report,
			Exam:        tuple.Exam,
			Skills:      tuple.Skills,
			Achievement: tuple.Achievement,
		}
	}

	return selection.WeightConfig{
		Defaults:      defaults,
		PathOverrides: overrides,
	}
}

// SelectionQuotas converts the loaded settings into the engine's quota
// value object.
func (c *Config) SelectionQuotas() selection.Quotas {
	perPath := make(map[model.AdmissionPath]int, len(c.Quotas.PerPath))
	for pathName, quota := range c.Quotas.PerPath {
		perPath[model.AdmissionPath(pathName)] = quota
	}
	return selection.Quotas{
		PerPath: perPath,
		Total:   c.Quotas.Total,
	}
}

// findConfigFile searches for ppdb_config.yaml in the current directory
// and the home directory.
func findConfigFile() (string, error) {
	configFileName := "ppdb_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
