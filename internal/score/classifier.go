package score

import (
	"fmt"

	"github.com/ppiankov/thindex/internal/model"
)

// ValidateThreshold rejects thresholds outside [0,1] and negative
// margin bands before any scoring work begins
func ValidateThreshold(threshold, marginBand float64) error {
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: threshold %g outside [0,1]", model.ErrInvalidConfig, threshold)
	}
	if marginBand < 0 {
		return fmt.Errorf("%w: margin band %g is negative", model.ErrInvalidConfig, marginBand)
	}
	return nil
}

// Classify maps the document index to a label.
//
//	index >= threshold              -> hallucination
//	index <= threshold - marginBand -> truthful
//	otherwise                       -> uncertain
//
// With the default marginBand of 0 the classification is binary.
func Classify(overallIndex, threshold, marginBand float64) model.Label {
	switch {
	case overallIndex >= threshold:
		return model.LabelHallucination
	case overallIndex <= threshold-marginBand:
		return model.LabelTruthful
	default:
		return model.LabelUncertain
	}
}
