package signal

import (
	"context"
	"sync"
	"time"

	"github.com/ppiankov/thindex/internal/model"
)

// Adapter scores one signal for one claim. Implementations may call an
// external detector that can fail or time out; the error return exists
// so the fallback wrapper can absorb it, callers above never see it.
type Adapter interface {
	// Kind returns the signal this adapter produces
	Kind() model.SignalKind

	// Score produces a normalized risk value for the claim
	Score(ctx context.Context, claim model.Claim) (model.SignalScore, error)
}

// ScoreWithFallback runs one adapter under its own timeout and converts
// any failure into the neutral-default score for that kind. One flaky
// detector degrades precision, it never fails the analysis.
func ScoreWithFallback(ctx context.Context, a Adapter, claim model.Claim, timeout time.Duration) model.SignalScore {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	score, err := a.Score(ctx, claim)
	if err != nil {
		return model.UnavailableScore(a.Kind())
	}

	score.Kind = a.Kind()
	score.Value = clamp01(score.Value)
	score.Available = true
	return score
}

// Set is the complete group of five adapters for an analysis
type Set struct {
	adapters []Adapter
	timeout  time.Duration
}

// NewSet creates an adapter set with a shared per-call timeout
func NewSet(timeout time.Duration, adapters ...Adapter) *Set {
	return &Set{adapters: adapters, timeout: timeout}
}

// ScoreClaim fans the claim out to all adapters concurrently and returns
// a complete, well-typed score per kind. Kinds with no adapter (or a
// failed one) carry the neutral default.
func (s *Set) ScoreClaim(ctx context.Context, claim model.Claim) map[model.SignalKind]model.SignalScore {
	scores := make(map[model.SignalKind]model.SignalScore, len(model.Kinds()))
	for _, kind := range model.Kinds() {
		scores[kind] = model.UnavailableScore(kind)
	}

	results := make([]model.SignalScore, len(s.adapters))
	var wg sync.WaitGroup

	for i, a := range s.adapters {
		wg.Add(1)
		go func(idx int, adapter Adapter) {
			defer wg.Done()
			results[idx] = ScoreWithFallback(ctx, adapter, claim, s.timeout)
		}(i, a)
	}
	wg.Wait()

	for _, score := range results {
		scores[score.Kind] = score
	}

	return scores
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
