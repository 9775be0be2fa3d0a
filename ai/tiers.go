package ai

// ConfidenceTier buckets a retrieval confidence estimate into one of three
// bands, each of which selects a different generation instruction template.
type ConfidenceTier int

const (
	// TierLow means the retrieved context is weakly related to the query.
	TierLow ConfidenceTier = iota + 1
	// TierMedium means the retrieved context is plausibly relevant.
	TierMedium
	// TierHigh means the retrieved context matches the query well.
	TierHigh
)

// String returns a human-readable name for the tier.
func (t ConfidenceTier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	default:
		return "unknown"
	}
}

// TierForConfidence maps a confidence estimate onto a tier using the given
// thresholds: high at or above highMin, medium at or above mediumMin, low
// otherwise.
func TierForConfidence(confidence, highMin, mediumMin float64) ConfidenceTier {
	switch {
	case confidence >= highMin:
		return TierHigh
	case confidence >= mediumMin:
		return TierMedium
	default:
		return TierLow
	}
}
