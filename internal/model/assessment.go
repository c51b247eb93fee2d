package model

import "time"

// Label is the document-level classification
type Label string

const (
	LabelTruthful      Label = "truthful"
	LabelUncertain     Label = "uncertain"
	LabelHallucination Label = "hallucination"
)

// ClaimAssessment aggregates the five signal scores for one claim plus
// the derived claim-level index. Immutable once built by the aggregator.
type ClaimAssessment struct {
	Claim    Claim                      `json:"claim"`
	Scores   map[SignalKind]SignalScore `json:"scores"`
	THIClaim float64                    `json:"thi_claim"` // Weighted index in [0,1]
}

// Score returns the stored score for a kind, falling back to the neutral
// default if the map was never populated for it
func (a ClaimAssessment) Score(kind SignalKind) SignalScore {
	if s, ok := a.Scores[kind]; ok {
		return s
	}
	return UnavailableScore(kind)
}

// RiskSummary buckets claims by their index
type RiskSummary struct {
	HighRisk   int `json:"high_risk_claims"`   // thi_claim > 0.7
	MediumRisk int `json:"medium_risk_claims"` // 0.4 <= thi_claim <= 0.7
	LowRisk    int `json:"low_risk_claims"`    // thi_claim < 0.4
}

// DocumentAssessment is the top-level analysis result.
// Claims are ordered by source document position regardless of the
// completion order of concurrent scoring tasks.
type DocumentAssessment struct {
	Text         string             `json:"input_text"`
	Evidence     string             `json:"evidence,omitempty"`
	AnalyzedAt   time.Time          `json:"analyzed_at"`
	OverallIndex float64            `json:"overall_index"`
	Label        Label              `json:"label"`
	Threshold    float64            `json:"threshold_used"`
	MarginBand   float64            `json:"margin_band,omitempty"`
	Weights      map[string]float64 `json:"weights_used"`
	Claims       []ClaimAssessment  `json:"claims"`
	Summary      RiskSummary        `json:"summary"`
	Duration     time.Duration      `json:"-"`
	DurationMS   float64            `json:"processing_time_ms"`
}

// Summarize computes the risk buckets from the claim indices
func Summarize(claims []ClaimAssessment) RiskSummary {
	var s RiskSummary
	for _, c := range claims {
		switch {
		case c.THIClaim > 0.7:
			s.HighRisk++
		case c.THIClaim < 0.4:
			s.LowRisk++
		default:
			s.MediumRisk++
		}
	}
	return s
}
