package signal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds the wordlists and thresholds driving the local signals.
// Built-in defaults can be overridden with a YAML file.
type Rules struct {
	Speculative SpeculativeRules `yaml:"speculative"`
	Sanity      SanityRules      `yaml:"sanity"`
	Paraphrase  ParaphraseRules  `yaml:"paraphrase"`
}

// SpeculativeRules configures the hedge/absolute language scorer
type SpeculativeRules struct {
	Hedges    []string           `yaml:"hedges"`
	Absolutes []string           `yaml:"absolutes"`
	Weights   SpeculativeWeights `yaml:"weights"`
}

// SpeculativeWeights weighs the two word classes
type SpeculativeWeights struct {
	Hedge    float64 `yaml:"hedge"`
	Absolute float64 `yaml:"absolute"`
}

// SanityRules configures the numeric/temporal sanity checks
type SanityRules struct {
	PercentJumpThreshold float64 `yaml:"percent_jump_threshold"` // Max believable daily % move
	HumanHeightCM        float64 `yaml:"human_height_cm"`
	HumanWeightKG        float64 `yaml:"human_weight_kg"`
	TemperatureCelsius   float64 `yaml:"temperature_celsius"`
}

// ParaphraseRules configures deterministic paraphrase generation
type ParaphraseRules struct {
	Synonyms map[string]string `yaml:"synonyms"` // word -> replacement
}

// DefaultRules returns the built-in rule set
func DefaultRules() *Rules {
	return &Rules{
		Speculative: SpeculativeRules{
			Hedges: []string{
				"might", "may", "could", "possibly", "perhaps", "probably",
				"likely", "suggest", "suggests", "seems", "appears",
				"reportedly", "allegedly", "supposedly", "arguably",
				"potentially", "presumably", "speculate", "rumored",
			},
			Absolutes: []string{
				"definitely", "certainly", "absolutely", "undoubtedly",
				"always", "never", "guaranteed", "unquestionably",
				"surely", "undeniably", "unbelievable", "impossible",
				"every", "all", "none", "must",
			},
			Weights: SpeculativeWeights{
				Hedge:    1.0,
				Absolute: 1.5,
			},
		},
		Sanity: SanityRules{
			PercentJumpThreshold: 100,
			HumanHeightCM:        272, // Tallest recorded person
			HumanWeightKG:        635,
			TemperatureCelsius:   60, // Surface weather extreme
		},
		Paraphrase: ParaphraseRules{
			Synonyms: map[string]string{
				"reported":  "announced",
				"increased": "rose",
				"decreased": "fell",
				"revenue":   "income",
				"company":   "firm",
				"earnings":  "profits",
				"quarterly": "three-month",
				"jumped":    "surged",
				"reaching":  "hitting",
				"created":   "produced",
				"discovered": "found",
			},
		},
	}
}

// LoadRules reads a YAML rules file, falling back to defaults for any
// section left empty
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}

	rules := DefaultRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	defaults := DefaultRules()
	if len(rules.Speculative.Hedges) == 0 {
		rules.Speculative.Hedges = defaults.Speculative.Hedges
	}
	if len(rules.Speculative.Absolutes) == 0 {
		rules.Speculative.Absolutes = defaults.Speculative.Absolutes
	}
	if rules.Speculative.Weights.Hedge == 0 && rules.Speculative.Weights.Absolute == 0 {
		rules.Speculative.Weights = defaults.Speculative.Weights
	}
	if len(rules.Paraphrase.Synonyms) == 0 {
		rules.Paraphrase.Synonyms = defaults.Paraphrase.Synonyms
	}

	return rules, nil
}
