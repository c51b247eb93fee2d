package signal

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/ppiankov/thindex/internal/model"
)

// SpeculativeAdapter scores hedging and overconfident language density.
// Fully local: it never fails and needs no evidence.
type SpeculativeAdapter struct {
	hedges    map[string]bool
	absolutes map[string]bool
	weights   SpeculativeWeights
}

// NewSpeculativeAdapter creates the speculative language adapter
func NewSpeculativeAdapter(rules *Rules) *SpeculativeAdapter {
	hedges := make(map[string]bool, len(rules.Speculative.Hedges))
	for _, w := range rules.Speculative.Hedges {
		hedges[w] = true
	}
	absolutes := make(map[string]bool, len(rules.Speculative.Absolutes))
	for _, w := range rules.Speculative.Absolutes {
		absolutes[w] = true
	}

	return &SpeculativeAdapter{
		hedges:    hedges,
		absolutes: absolutes,
		weights:   rules.Speculative.Weights,
	}
}

// Kind returns the signal kind
func (a *SpeculativeAdapter) Kind() model.SignalKind {
	return model.SignalSpeculative
}

// Score computes the weighted hedge/absolute density of the claim.
// Formula: min(weightedHits / (0.02 * tokens), 1)
func (a *SpeculativeAdapter) Score(_ context.Context, claim model.Claim) (model.SignalScore, error) {
	tokens := tokenize(claim.Text)
	if len(tokens) == 0 {
		return model.SignalScore{
			Kind:      model.SignalSpeculative,
			Value:     0,
			Rationale: "risky language density = 0.000 (no tokens)",
		}, nil
	}

	var hedgeCount, absoluteCount int
	for _, tok := range tokens {
		if a.hedges[tok] {
			hedgeCount++
		}
		if a.absolutes[tok] {
			absoluteCount++
		}
	}

	weighted := float64(hedgeCount)*a.weights.Hedge + float64(absoluteCount)*a.weights.Absolute
	value := weighted / (0.02 * float64(len(tokens)))
	if value > 1 {
		value = 1
	}

	return model.SignalScore{
		Kind:  model.SignalSpeculative,
		Value: value,
		Rationale: fmt.Sprintf("risky language density = %.3f (%d hedges, %d absolutes in %d tokens)",
			value, hedgeCount, absoluteCount, len(tokens)),
	}, nil
}

// tokenize lowercases and strips punctuation, keeping word tokens only
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
