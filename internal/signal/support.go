package signal

import (
	"context"
	"fmt"

	"github.com/ppiankov/thindex/internal/detector"
	"github.com/ppiankov/thindex/internal/model"
)

// SupportAdapter wraps the detector's entailment/similarity output.
//
// The stored value is the RAW support probability (1.0 = fully
// supported). The aggregator applies the (1-support) transform; nothing
// else in the pipeline flips this polarity.
type SupportAdapter struct {
	provider detector.Provider
}

// NewSupportAdapter creates the support adapter
func NewSupportAdapter(provider detector.Provider) *SupportAdapter {
	return &SupportAdapter{provider: provider}
}

// Kind returns the signal kind
func (a *SupportAdapter) Kind() model.SignalKind {
	return model.SignalSupport
}

// Score asks the detector for the support probability
func (a *SupportAdapter) Score(ctx context.Context, claim model.Claim) (model.SignalScore, error) {
	if a.provider == nil {
		return model.SignalScore{}, fmt.Errorf("no detector provider configured")
	}

	verdict, err := a.provider.Support(ctx, claim.Text, claim.Evidence)
	if err != nil {
		return model.SignalScore{}, fmt.Errorf("support detector: %w", err)
	}

	rationale := verdict.Rationale
	if rationale == "" {
		rationale = fmt.Sprintf("1 - P(entailment) = %.3f", 1-verdict.Value)
	}

	return model.SignalScore{
		Kind:      model.SignalSupport,
		Value:     verdict.Value,
		Rationale: rationale,
	}, nil
}
