package signal

import (
	"context"
	"fmt"

	"github.com/ppiankov/thindex/internal/detector"
	"github.com/ppiankov/thindex/internal/model"
)

// InstabilityAdapter measures how much a claim's risk moves when the
// claim is restated. High variance across paraphrases is a proxy for
// low model confidence in the underlying assertion.
type InstabilityAdapter struct {
	provider    detector.Provider
	paraphraser *Paraphraser
	count       int
}

// NewInstabilityAdapter creates the instability adapter
func NewInstabilityAdapter(provider detector.Provider, paraphraser *Paraphraser, count int) *InstabilityAdapter {
	if count <= 0 {
		count = 3
	}
	return &InstabilityAdapter{
		provider:    provider,
		paraphraser: paraphraser,
		count:       count,
	}
}

// Kind returns the signal kind
func (a *InstabilityAdapter) Kind() model.SignalKind {
	return model.SignalInstability
}

// Score generates paraphrases, scores each via the detector, and maps
// the risk variance into [0,1] with a fixed *10 scale.
// Fewer than two scoreable paraphrases means no variance to measure.
func (a *InstabilityAdapter) Score(ctx context.Context, claim model.Claim) (model.SignalScore, error) {
	if a.provider == nil {
		return model.SignalScore{}, fmt.Errorf("no detector provider configured")
	}

	paraphrases := a.paraphraser.Generate(claim.Text, a.count)
	if len(paraphrases) < 2 {
		return model.SignalScore{
			Kind:      model.SignalInstability,
			Value:     0,
			Rationale: "variance over paraphrases = 0.000 (too few paraphrases)",
		}, nil
	}

	var risks []float64
	for _, p := range paraphrases {
		contra, err := a.provider.Contradiction(ctx, p, claim.Evidence)
		if err != nil {
			return model.SignalScore{}, fmt.Errorf("paraphrase contradiction: %w", err)
		}
		support, err := a.provider.Support(ctx, p, claim.Evidence)
		if err != nil {
			return model.SignalScore{}, fmt.Errorf("paraphrase support: %w", err)
		}
		risks = append(risks, contra.Value+(1-support.Value))
	}

	v := variance(risks)
	value := v * 10
	if value > 1 {
		value = 1
	}

	return model.SignalScore{
		Kind:      model.SignalInstability,
		Value:     value,
		Rationale: fmt.Sprintf("variance over %d paraphrases = %.3f", len(risks), value),
	}, nil
}

func variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return sq / float64(len(values))
}
