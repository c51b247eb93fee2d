package pipeline

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/ppiankov/thindex/internal/model"
	"github.com/ppiankov/thindex/internal/score"
	"github.com/ppiankov/thindex/internal/signal"
)

// stubAdapter returns a fixed score, optionally after a random delay to
// shake out ordering assumptions
type stubAdapter struct {
	kind      model.SignalKind
	value     float64
	err       error
	maxJitter time.Duration
}

func (a *stubAdapter) Kind() model.SignalKind {
	return a.kind
}

func (a *stubAdapter) Score(_ context.Context, _ model.Claim) (model.SignalScore, error) {
	if a.maxJitter > 0 {
		time.Sleep(time.Duration(rand.Int63n(int64(a.maxJitter))))
	}
	if a.err != nil {
		return model.SignalScore{}, a.err
	}
	return model.SignalScore{Kind: a.kind, Value: a.value, Rationale: "stub"}, nil
}

func newStubAnalyzer(cfg *model.Config, adapters ...signal.Adapter) *Analyzer {
	return NewAnalyzerWithAdapters(cfg, signal.NewSet(time.Second, adapters...))
}

func riskyAnalyzer(cfg *model.Config) *Analyzer {
	return newStubAnalyzer(cfg,
		&stubAdapter{kind: model.SignalContradiction, value: 0.9},
		&stubAdapter{kind: model.SignalSupport, value: 0.1},
		&stubAdapter{kind: model.SignalInstability, value: 0.8},
		&stubAdapter{kind: model.SignalSpeculative, value: 0.5},
		&stubAdapter{kind: model.SignalNumericSanity, value: 0.4},
	)
}

func safeAnalyzer(cfg *model.Config) *Analyzer {
	return newStubAnalyzer(cfg,
		&stubAdapter{kind: model.SignalContradiction, value: 0.05},
		&stubAdapter{kind: model.SignalSupport, value: 0.95},
		&stubAdapter{kind: model.SignalInstability, value: 0.1},
		&stubAdapter{kind: model.SignalSpeculative, value: 0.0},
		&stubAdapter{kind: model.SignalNumericSanity, value: 0.0},
	)
}

func TestAnalyze_HallucinatedDocument(t *testing.T) {
	analyzer := riskyAnalyzer(model.DefaultConfig())

	assessment, err := analyzer.Analyze(context.Background(), Request{
		Text:     "Apple definitely reported earnings of $100 billion in Q1 2024.",
		Evidence: "Apple lost money that quarter.",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := 0.35*0.9 + 0.30*(1-0.1) + 0.15*0.8 + 0.10*0.5 + 0.10*0.4
	if math.Abs(assessment.OverallIndex-want) > 1e-9 {
		t.Errorf("Expected index %g, got %g", want, assessment.OverallIndex)
	}
	if assessment.Label != model.LabelHallucination {
		t.Errorf("Expected hallucination label, got %s", assessment.Label)
	}
	if assessment.Summary.HighRisk != 1 {
		t.Errorf("Expected 1 high-risk claim, got %d", assessment.Summary.HighRisk)
	}
}

func TestAnalyze_TruthfulDocument(t *testing.T) {
	analyzer := safeAnalyzer(model.DefaultConfig())

	assessment, err := analyzer.Analyze(context.Background(), Request{
		Text:     "Water boils at 100 degrees celsius at sea level.",
		Evidence: "The boiling point of water at standard pressure is 100 °C.",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if assessment.Label != model.LabelTruthful {
		t.Errorf("Expected truthful label, got %s", assessment.Label)
	}
	if assessment.OverallIndex >= 0.5 {
		t.Errorf("Expected index below threshold, got %g", assessment.OverallIndex)
	}
	if assessment.Summary.LowRisk != 1 {
		t.Errorf("Expected 1 low-risk claim, got %d", assessment.Summary.LowRisk)
	}
}

func TestAnalyze_EmptyDocument(t *testing.T) {
	analyzer := safeAnalyzer(model.DefaultConfig())

	_, err := analyzer.Analyze(context.Background(), Request{Text: "   "})
	if err == nil {
		t.Fatal("Expected error for empty document")
	}
	if !errors.Is(err, model.ErrEmptyDocument) {
		t.Errorf("Expected ErrEmptyDocument, got %v", err)
	}
}

func TestAnalyze_InvalidThresholdRejectedUpFront(t *testing.T) {
	analyzer := safeAnalyzer(model.DefaultConfig())
	bad := 1.5

	_, err := analyzer.Analyze(context.Background(), Request{
		Text:      "Some perfectly ordinary claim.",
		Threshold: &bad,
	})
	if err == nil {
		t.Fatal("Expected error for threshold outside [0,1]")
	}
	if !errors.Is(err, model.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestAnalyze_InvalidWeightsRejected(t *testing.T) {
	analyzer := safeAnalyzer(model.DefaultConfig())
	bad := score.Weights{Contradiction: 0.9, Support: 0.9}

	_, err := analyzer.Analyze(context.Background(), Request{
		Text:    "Some perfectly ordinary claim.",
		Weights: &bad,
	})
	if err == nil {
		t.Fatal("Expected error for weights not summing to 1")
	}
	if !errors.Is(err, model.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestAnalyze_CustomThresholdAndMargin(t *testing.T) {
	analyzer := safeAnalyzer(model.DefaultConfig())
	threshold := 0.2
	margin := 0.18

	assessment, err := analyzer.Analyze(context.Background(), Request{
		Text:       "Water boils at 100 degrees celsius at sea level.",
		Threshold:  &threshold,
		MarginBand: &margin,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if assessment.Threshold != 0.2 {
		t.Errorf("Expected threshold 0.2 in result, got %g", assessment.Threshold)
	}
	// Safe stub index 0.0475 sits above 0.2-0.18 but below 0.2: the
	// uncertain band
	if assessment.Label != model.LabelUncertain {
		t.Errorf("Expected uncertain label, got %s", assessment.Label)
	}
}

func TestAnalyze_AllDetectorsDown(t *testing.T) {
	down := errors.New("detector down")
	analyzer := newStubAnalyzer(model.DefaultConfig(),
		&stubAdapter{kind: model.SignalContradiction, err: down},
		&stubAdapter{kind: model.SignalSupport, err: down},
		&stubAdapter{kind: model.SignalInstability, err: down},
		&stubAdapter{kind: model.SignalSpeculative, err: down},
		&stubAdapter{kind: model.SignalNumericSanity, err: down},
	)

	assessment, err := analyzer.Analyze(context.Background(), Request{
		Text: "A claim scored entirely on fallbacks.",
	})
	if err != nil {
		t.Fatalf("Expected analysis to survive detector failures, got %v", err)
	}

	// Neutral baseline: only the support default contributes
	want := 0.30 * 0.5
	if math.Abs(assessment.OverallIndex-want) > 1e-9 {
		t.Errorf("Expected neutral baseline %g, got %g", want, assessment.OverallIndex)
	}
	if assessment.Label != model.LabelTruthful {
		t.Errorf("Expected truthful at neutral baseline, got %s", assessment.Label)
	}

	for _, claim := range assessment.Claims {
		for kind, s := range claim.Scores {
			if s.Available {
				t.Errorf("Expected %s to be unavailable", kind)
			}
		}
	}
}

func TestAnalyze_ClaimOrderPreserved(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Concurrency.ClaimWorkers = 8

	analyzer := newStubAnalyzer(cfg,
		&stubAdapter{kind: model.SignalContradiction, value: 0.5, maxJitter: 5 * time.Millisecond},
		&stubAdapter{kind: model.SignalSupport, value: 0.5, maxJitter: 5 * time.Millisecond},
	)

	text := "First claim here. Second claim here. Third claim here. Fourth claim here. " +
		"Fifth claim here. Sixth claim here. Seventh claim here. Eighth claim here."

	assessment, err := analyzer.Analyze(context.Background(), Request{Text: text})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(assessment.Claims) != 8 {
		t.Fatalf("Expected 8 claims, got %d", len(assessment.Claims))
	}
	for i, claim := range assessment.Claims {
		if claim.Claim.Index != i {
			t.Errorf("Claim %d: expected source index %d, got %d", i, i, claim.Claim.Index)
		}
	}
	if assessment.Claims[0].Claim.Text != "First claim here." {
		t.Errorf("Expected first claim first, got '%s'", assessment.Claims[0].Claim.Text)
	}
	if assessment.Claims[7].Claim.Text != "Eighth claim here." {
		t.Errorf("Expected eighth claim last, got '%s'", assessment.Claims[7].Claim.Text)
	}
}

func TestAnalyze_EvidencePropagates(t *testing.T) {
	analyzer := safeAnalyzer(model.DefaultConfig())

	assessment, err := analyzer.Analyze(context.Background(), Request{
		Text:     "One claim. Another claim.",
		Evidence: "shared reference text",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, claim := range assessment.Claims {
		if claim.Claim.Evidence != "shared reference text" {
			t.Errorf("Expected evidence on every claim, got '%s'", claim.Claim.Evidence)
		}
	}
}

func TestBuildReport(t *testing.T) {
	analyzer := riskyAnalyzer(model.DefaultConfig())

	assessment, err := analyzer.Analyze(context.Background(), Request{
		Text: "The sky is definitely green.",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	report := BuildReport(assessment)

	if report.TotalClaims != 1 {
		t.Errorf("Expected 1 claim, got %d", report.TotalClaims)
	}
	if report.OverallIndex != assessment.OverallIndex {
		t.Errorf("Expected index %g, got %g", assessment.OverallIndex, report.OverallIndex)
	}
	if report.Label != assessment.Label {
		t.Errorf("Expected label %s, got %s", assessment.Label, report.Label)
	}
	if len(report.Claims) != 1 {
		t.Fatalf("Expected 1 claim explanation, got %d", len(report.Claims))
	}
	if report.Claims[0].Scores.Contradiction != 0.9 {
		t.Errorf("Expected contradiction 0.9 in breakdown, got %g", report.Claims[0].Scores.Contradiction)
	}
	// Raw support 0.1 surfaces as lack of support 0.9
	if math.Abs(report.Claims[0].Scores.LackSupport-0.9) > 1e-9 {
		t.Errorf("Expected lack_support 0.9, got %g", report.Claims[0].Scores.LackSupport)
	}
	if len(report.Weights) != 5 {
		t.Errorf("Expected 5 weights, got %d", len(report.Weights))
	}
}

func TestAnalyze_CancelledContext(t *testing.T) {
	analyzer := safeAnalyzer(model.DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := analyzer.Analyze(ctx, Request{Text: "The sky is blue."})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
