package signal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()

	if len(rules.Speculative.Hedges) == 0 {
		t.Error("Expected built-in hedges")
	}
	if len(rules.Speculative.Absolutes) == 0 {
		t.Error("Expected built-in absolutes")
	}
	if rules.Speculative.Weights.Absolute <= rules.Speculative.Weights.Hedge {
		t.Error("Expected absolutes to weigh heavier than hedges")
	}
	if rules.Sanity.PercentJumpThreshold <= 0 {
		t.Error("Expected positive percent jump threshold")
	}
}

func TestLoadRules_OverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
sanity:
  percent_jump_threshold: 50
speculative:
  hedges:
    - maybe
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rules.Sanity.PercentJumpThreshold != 50 {
		t.Errorf("Expected overridden threshold 50, got %g", rules.Sanity.PercentJumpThreshold)
	}
	if len(rules.Speculative.Hedges) != 1 || rules.Speculative.Hedges[0] != "maybe" {
		t.Errorf("Expected overridden hedges, got %v", rules.Speculative.Hedges)
	}

	// Sections left empty fall back to defaults
	if len(rules.Speculative.Absolutes) == 0 {
		t.Error("Expected default absolutes to fill in")
	}
	if len(rules.Paraphrase.Synonyms) == 0 {
		t.Error("Expected default synonyms to fill in")
	}
}

func TestLoadRules_MissingFile(t *testing.T) {
	if _, err := LoadRules("/nonexistent/rules.yaml"); err == nil {
		t.Error("Expected error for missing rules file")
	}
}

func TestLoadRules_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("slices: [unclosed"), 0o644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}

	if _, err := LoadRules(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}
