package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/thindex/internal/detector"
	"github.com/ppiankov/thindex/internal/extract"
	"github.com/ppiankov/thindex/internal/model"
	"github.com/ppiankov/thindex/internal/score"
	"github.com/ppiankov/thindex/internal/signal"
)

// Analyzer orchestrates the full analysis: extract claims, fan each
// claim out to the five signal adapters, aggregate, classify, explain.
// Stateless across calls; per-request configuration travels explicitly.
type Analyzer struct {
	extractor *extract.ClaimExtractor
	adapters  *signal.Set
	config    *model.Config
}

// NewAnalyzer creates an analyzer from configuration
func NewAnalyzer(cfg *model.Config) (*Analyzer, error) {
	provider, err := detector.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("detector provider: %w", err)
	}

	adapters, err := signal.NewSetFromConfig(cfg, provider)
	if err != nil {
		return nil, fmt.Errorf("signal adapters: %w", err)
	}

	return NewAnalyzerWithAdapters(cfg, adapters), nil
}

// NewAnalyzerWithAdapters creates an analyzer around a prebuilt adapter
// set. Useful when the caller owns detector wiring.
func NewAnalyzerWithAdapters(cfg *model.Config, adapters *signal.Set) *Analyzer {
	return &Analyzer{
		extractor: extract.NewClaimExtractor(),
		adapters:  adapters,
		config:    cfg,
	}
}

// Request is one analysis invocation. Zero-value optional fields fall
// back to configured defaults.
type Request struct {
	Text       string
	Evidence   string
	Threshold  *float64
	MarginBand *float64
	Weights    *score.Weights
}

// Analyze runs the pipeline for one document.
//
// Validation failures (empty document, bad weights, out-of-range
// threshold) surface immediately. Detector failures never do: they
// degrade the affected signals to neutral defaults, visibly flagged in
// the explanation.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*model.DocumentAssessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := time.Now()

	threshold := a.config.Scoring.Threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	marginBand := a.config.Scoring.MarginBand
	if req.MarginBand != nil {
		marginBand = *req.MarginBand
	}
	weights := score.DefaultWeights()
	if req.Weights != nil {
		weights = *req.Weights
	}

	// Reject bad configuration before any scoring work
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if err := score.ValidateThreshold(threshold, marginBand); err != nil {
		return nil, err
	}

	claims, err := a.extractor.Extract(req.Text, req.Evidence)
	if err != nil {
		return nil, err
	}

	assessments := a.scoreClaims(ctx, claims, weights)

	overall, err := score.AggregateDocument(assessments)
	if err != nil {
		return nil, fmt.Errorf("aggregate document: %w", err)
	}

	duration := time.Since(started)

	return &model.DocumentAssessment{
		Text:         req.Text,
		Evidence:     req.Evidence,
		AnalyzedAt:   started.UTC(),
		OverallIndex: overall,
		Label:        score.Classify(overall, threshold, marginBand),
		Threshold:    threshold,
		MarginBand:   marginBand,
		Weights:      weights.Map(),
		Claims:       assessments,
		Summary:      model.Summarize(assessments),
		Duration:     duration,
		DurationMS:   float64(duration.Microseconds()) / 1000,
	}, nil
}

// scoreClaims scores claims concurrently, bounded by the configured
// worker count. Results land in a slice indexed by claim position, so
// source order survives any completion order.
func (a *Analyzer) scoreClaims(ctx context.Context, claims []model.Claim, weights score.Weights) []model.ClaimAssessment {
	assessments := make([]model.ClaimAssessment, len(claims))

	maxWorkers := a.config.Concurrency.ClaimWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	semaphore := make(chan struct{}, maxWorkers)
	done := make(chan int, len(claims))

	for i, claim := range claims {
		go func(idx int, c model.Claim) {
			defer func() { done <- idx }()

			select {
			case <-ctx.Done():
				// Deadline hit: fall back to neutral defaults for the
				// remaining claims rather than abort the analysis
				scores := make(map[model.SignalKind]model.SignalScore)
				for _, kind := range model.Kinds() {
					scores[kind] = model.UnavailableScore(kind)
				}
				assessments[idx] = model.ClaimAssessment{
					Claim:    c,
					Scores:   scores,
					THIClaim: score.AggregateClaim(scores, weights),
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			scores := a.adapters.ScoreClaim(ctx, c)
			assessments[idx] = model.ClaimAssessment{
				Claim:    c,
				Scores:   scores,
				THIClaim: score.AggregateClaim(scores, weights),
			}
		}(i, claim)
	}

	for range claims {
		<-done
	}

	return assessments
}
