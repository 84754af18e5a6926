package report

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// ScoreConfig controls compliance scoring and regulation ranking.
type ScoreConfig struct {
	// SeverityPenalties are the points deducted from a perfect score
	// of 100 for each unresolved violation of that severity.
	SeverityPenalties map[string]int `yaml:"severity_penalties"`

	// TopRegulations caps the regulation ranking length.
	TopRegulations int `yaml:"top_regulations"`
}

// DefaultScoreConfig returns the scoring used when no config file is
// supplied.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		SeverityPenalties: map[string]int{
			string(violation.SeverityLow):      1,
			string(violation.SeverityMedium):   3,
			string(violation.SeverityHigh):     7,
			string(violation.SeverityCritical): 15,
		},
		TopRegulations: 5,
	}
}

// LoadScoreConfig reads and parses a scoring config YAML file.
// Returns an error if the file doesn't exist, is malformed, or
// contains unknown fields (typos).
func LoadScoreConfig(path string) (ScoreConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ScoreConfig{}, fmt.Errorf("failed to read score config: %w", err)
	}

	var cfg ScoreConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&cfg); err != nil {
		return ScoreConfig{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScoreConfig(cfg); err != nil {
		return ScoreConfig{}, fmt.Errorf("invalid score config: %w", err)
	}
	return cfg, nil
}

func validateScoreConfig(cfg ScoreConfig) error {
	if len(cfg.SeverityPenalties) == 0 {
		return fmt.Errorf("severity_penalties is required")
	}
	for sev, penalty := range cfg.SeverityPenalties {
		if !violation.Severity(sev).Valid() {
			return fmt.Errorf("unknown severity %q", sev)
		}
		if penalty < 0 {
			return fmt.Errorf("severity %q: penalty must not be negative", sev)
		}
	}
	// A partial penalty table would silently score missing severities
	// as zero deductions.
	for _, sev := range []violation.Severity{
		violation.SeverityLow, violation.SeverityMedium,
		violation.SeverityHigh, violation.SeverityCritical,
	} {
		if _, ok := cfg.SeverityPenalties[string(sev)]; !ok {
			return fmt.Errorf("severity_penalties missing %q", sev)
		}
	}
	if cfg.TopRegulations < 1 {
		return fmt.Errorf("top_regulations must be at least 1")
	}
	return nil
}
