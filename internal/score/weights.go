package score

import (
	"fmt"
	"math"

	"github.com/ppiankov/thindex/internal/model"
)

// WeightTolerance is how far the weight sum may deviate from 1.0
const WeightTolerance = 1e-6

// Weights is the five-component weight vector of the THI formula.
// All components are non-negative and sum to 1.0 within tolerance.
type Weights struct {
	Contradiction float64 `json:"contradiction" yaml:"contradiction"`
	Support       float64 `json:"support" yaml:"support"`
	Instability   float64 `json:"instability" yaml:"instability"`
	Speculative   float64 `json:"speculative" yaml:"speculative"`
	Numeric       float64 `json:"numeric" yaml:"numeric"`
}

// DefaultWeights returns the standard THI weight vector
func DefaultWeights() Weights {
	return Weights{
		Contradiction: 0.35,
		Support:       0.30,
		Instability:   0.15,
		Speculative:   0.10,
		Numeric:       0.10,
	}
}

// Validate rejects negative components and sums off 1.0
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"contradiction": w.Contradiction,
		"support":       w.Support,
		"instability":   w.Instability,
		"speculative":   w.Speculative,
		"numeric":       w.Numeric,
	} {
		if v < 0 {
			return fmt.Errorf("%w: weight %s is negative (%g)", model.ErrInvalidConfig, name, v)
		}
	}

	sum := w.Contradiction + w.Support + w.Instability + w.Speculative + w.Numeric
	if math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("%w: weights sum to %g, want 1.0", model.ErrInvalidConfig, sum)
	}

	return nil
}

// Map returns the vector keyed by signal name for reports
func (w Weights) Map() map[string]float64 {
	return map[string]float64{
		"contradiction": w.Contradiction,
		"support":       w.Support,
		"instability":   w.Instability,
		"speculative":   w.Speculative,
		"numeric":       w.Numeric,
	}
}

// WeightsFromSlice builds a validated vector from the wire order
// [contradiction, support, instability, speculative, numeric]
func WeightsFromSlice(values []float64) (Weights, error) {
	if len(values) != 5 {
		return Weights{}, fmt.Errorf("%w: want 5 weights, got %d", model.ErrInvalidConfig, len(values))
	}

	w := Weights{
		Contradiction: values[0],
		Support:       values[1],
		Instability:   values[2],
		Speculative:   values[3],
		Numeric:       values[4],
	}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}
