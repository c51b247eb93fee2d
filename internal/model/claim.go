package model

// Claim represents an atomic sentence-level assertion under evaluation
type Claim struct {
	Text     string `json:"text"`               // The claim text itself
	Index    int    `json:"index"`              // Sentence index in source document (0-based)
	Evidence string `json:"evidence,omitempty"` // Reference text the claim is checked against
}

// SignalKind identifies one of the five risk signals
type SignalKind string

const (
	SignalContradiction SignalKind = "contradiction"  // NLI contradiction probability
	SignalSupport       SignalKind = "support"        // Support probability (entailment + similarity)
	SignalInstability   SignalKind = "instability"    // Risk variance across paraphrases
	SignalSpeculative   SignalKind = "speculative"    // Hedge/absolute language density
	SignalNumericSanity SignalKind = "numeric_sanity" // Flagged numeric/temporal claims ratio
)

// Kinds lists the five signals in aggregation order
func Kinds() []SignalKind {
	return []SignalKind{
		SignalContradiction,
		SignalSupport,
		SignalInstability,
		SignalSpeculative,
		SignalNumericSanity,
	}
}

// SignalScore is the normalized output of one detector for one claim.
//
// Value is always in [0,1]. For every kind except SignalSupport, 1.0 means
// maximally risky. SignalSupport stores the RAW support probability; the
// (1-support) transform happens exactly once, inside the aggregator.
type SignalScore struct {
	Kind      SignalKind `json:"kind"`
	Value     float64    `json:"value"`
	Rationale string     `json:"rationale,omitempty"` // Human-readable explanation
	Available bool       `json:"available"`           // False when the detector could not answer
}

// NeutralDefault returns the fallback value used when a detector is
// unavailable. The defaults keep the aggregate formula well-defined:
// an all-unavailable claim scores exactly wSupport*0.5.
func NeutralDefault(kind SignalKind) float64 {
	if kind == SignalSupport {
		return 0.5
	}
	return 0.0
}

// UnavailableScore builds the fallback score for a failed detector
func UnavailableScore(kind SignalKind) SignalScore {
	return SignalScore{
		Kind:      kind,
		Value:     NeutralDefault(kind),
		Rationale: "unavailable",
		Available: false,
	}
}
