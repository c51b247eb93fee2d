package pipeline

import (
	"time"

	"github.com/ppiankov/thindex/internal/model"
	"github.com/ppiankov/thindex/internal/score"
)

// Report is the caller-facing analysis result: the document assessment
// plus the per-claim explanation records
type Report struct {
	AnalyzedAt   time.Time           `json:"analyzed_at"`
	OverallIndex float64             `json:"overall_index"`
	Label        model.Label         `json:"label"`
	Threshold    float64             `json:"threshold_used"`
	MarginBand   float64             `json:"margin_band,omitempty"`
	Weights      map[string]float64  `json:"weights_used"`
	TotalClaims  int                 `json:"total_claims"`
	Claims       []score.Explanation `json:"claims"`
	Summary      model.RiskSummary   `json:"summary"`
	DurationMS   float64             `json:"processing_time_ms"`
}

// BuildReport packages a document assessment for rendering or the API.
// No computation happens here, only formatting of upstream data.
func BuildReport(a *model.DocumentAssessment) *Report {
	explanations := make([]score.Explanation, len(a.Claims))
	for i, claim := range a.Claims {
		explanations[i] = score.Explain(claim)
	}

	return &Report{
		AnalyzedAt:   a.AnalyzedAt,
		OverallIndex: a.OverallIndex,
		Label:        a.Label,
		Threshold:    a.Threshold,
		MarginBand:   a.MarginBand,
		Weights:      a.Weights,
		TotalClaims:  len(a.Claims),
		Claims:       explanations,
		Summary:      a.Summary,
		DurationMS:   a.DurationMS,
	}
}
