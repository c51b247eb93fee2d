package signal

import (
	"context"
	"fmt"

	"github.com/ppiankov/thindex/internal/detector"
	"github.com/ppiankov/thindex/internal/model"
)

// ContradictionAdapter wraps the NLI detector's contradiction output
type ContradictionAdapter struct {
	provider detector.Provider
}

// NewContradictionAdapter creates the contradiction adapter
func NewContradictionAdapter(provider detector.Provider) *ContradictionAdapter {
	return &ContradictionAdapter{provider: provider}
}

// Kind returns the signal kind
func (a *ContradictionAdapter) Kind() model.SignalKind {
	return model.SignalContradiction
}

// Score asks the detector for the contradiction probability
func (a *ContradictionAdapter) Score(ctx context.Context, claim model.Claim) (model.SignalScore, error) {
	if a.provider == nil {
		return model.SignalScore{}, fmt.Errorf("no detector provider configured")
	}

	verdict, err := a.provider.Contradiction(ctx, claim.Text, claim.Evidence)
	if err != nil {
		return model.SignalScore{}, fmt.Errorf("contradiction detector: %w", err)
	}

	rationale := verdict.Rationale
	if rationale == "" {
		rationale = fmt.Sprintf("P(contradiction) = %.3f", verdict.Value)
	}

	return model.SignalScore{
		Kind:      model.SignalContradiction,
		Value:     verdict.Value,
		Rationale: rationale,
	}, nil
}
