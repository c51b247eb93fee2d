package detector

import "context"

// Verdict is a single detector answer: a risk-relevant probability plus
// a human-readable explanation carried into the final report
type Verdict struct {
	Value     float64 `json:"value"`
	Rationale string  `json:"rationale,omitempty"`
}

// Provider is the boundary to the external contradiction/support
// detectors (NLI and embedding models). The scoring core only depends
// on this contract; the transport behind it is interchangeable.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Contradiction returns P(claim contradicts evidence) in [0,1]
	Contradiction(ctx context.Context, claimText, evidence string) (*Verdict, error)

	// Support returns the support probability in [0,1]
	// (entailment blended with semantic similarity upstream)
	Support(ctx context.Context, claimText, evidence string) (*Verdict, error)
}
