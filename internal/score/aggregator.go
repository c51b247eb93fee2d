package score

import (
	"errors"

	"github.com/ppiankov/thindex/internal/model"
)

// ErrNoAssessments is defensive: the extractor guarantees at least one
// claim for any accepted document, so reaching it is a logic bug
var ErrNoAssessments = errors.New("no claim assessments to aggregate")

// AggregateClaim combines the five signal scores into the claim index:
//
//	thi = w1*contradiction + w2*(1-support) + w3*instability +
//	      w4*speculative + w5*numeric
//
// The support score stores the raw support probability; this is the one
// place the (1-x) transform is applied. The result is clamped to [0,1]
// against floating-point drift from borderline weight vectors.
func AggregateClaim(scores map[model.SignalKind]model.SignalScore, w Weights) float64 {
	get := func(kind model.SignalKind) float64 {
		if s, ok := scores[kind]; ok {
			return s.Value
		}
		return model.NeutralDefault(kind)
	}

	thi := w.Contradiction*get(model.SignalContradiction) +
		w.Support*(1-get(model.SignalSupport)) +
		w.Instability*get(model.SignalInstability) +
		w.Speculative*get(model.SignalSpeculative) +
		w.Numeric*get(model.SignalNumericSanity)

	if thi < 0 {
		return 0
	}
	if thi > 1 {
		return 1
	}
	return thi
}

// AggregateDocument averages the claim indices into the document index
func AggregateDocument(assessments []model.ClaimAssessment) (float64, error) {
	if len(assessments) == 0 {
		return 0, ErrNoAssessments
	}

	var sum float64
	for _, a := range assessments {
		sum += a.THIClaim
	}
	return sum / float64(len(assessments)), nil
}
