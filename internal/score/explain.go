package score

import "github.com/ppiankov/thindex/internal/model"

// Breakdown is the per-claim numeric summary surfaced to callers.
// LackSupport mirrors the aggregation view of the raw support score so
// readers see the number that actually entered the formula.
type Breakdown struct {
	Contradiction float64 `json:"contradiction"`
	LackSupport   float64 `json:"lack_support"`
	Instability   float64 `json:"instability"`
	Speculative   float64 `json:"speculative"`
	Numeric       float64 `json:"numeric"`
	THIClaim      float64 `json:"thi_claim"`
}

// Explanation packages one claim's scores, rationales and availability
// flags. Pure formatting over data the pipeline already computed.
type Explanation struct {
	Claim       string            `json:"claim"`
	Scores      Breakdown         `json:"scores"`
	Evidence    string            `json:"evidence,omitempty"`
	Rationale   map[string]string `json:"rationale"`
	Unavailable []string          `json:"unavailable_signals,omitempty"`
}

// Explain builds the explanation record for one assessed claim
func Explain(a model.ClaimAssessment) Explanation {
	rationale := make(map[string]string, len(model.Kinds()))
	var unavailable []string

	for _, kind := range model.Kinds() {
		s := a.Score(kind)
		rationale[string(kind)] = s.Rationale
		if !s.Available {
			unavailable = append(unavailable, string(kind))
		}
	}

	return Explanation{
		Claim: a.Claim.Text,
		Scores: Breakdown{
			Contradiction: a.Score(model.SignalContradiction).Value,
			LackSupport:   1 - a.Score(model.SignalSupport).Value,
			Instability:   a.Score(model.SignalInstability).Value,
			Speculative:   a.Score(model.SignalSpeculative).Value,
			Numeric:       a.Score(model.SignalNumericSanity).Value,
			THIClaim:      a.THIClaim,
		},
		Evidence:    a.Claim.Evidence,
		Rationale:   rationale,
		Unavailable: unavailable,
	}
}
