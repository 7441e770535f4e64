package services

const (
	ConfidenceLow    = "Low"
	ConfidenceMedium = "Medium"
	ConfidenceHigh   = "High"
)

// RouteConfidences maps each delay to a 0-1 confidence relative to the worst
// delay in the batch: the lower the predicted delay, the higher the
// confidence. The divisor is the batch maximum, so the worst route always
// scores 0.0; only when every delay is zero is the divisor substituted with
// 1.0, yielding confidence 1.0 for every route.
//
// Callers pass the delays in ranked order; index-to-route correspondence is
// preserved.
func RouteConfidences(delays []float64) []float64 {
	if len(delays) == 0 {
		return nil
	}

	maxDelay := 0.0
	for _, d := range delays {
		if d > maxDelay {
			maxDelay = d
		}
	}
	if maxDelay == 0 {
		maxDelay = 1.0
	}

	out := make([]float64, 0, len(delays))
	for _, d := range delays {
		out = append(out, round4(1.0-d/maxDelay))
	}
	return out
}

// confidenceRule is one (predicate, label) pair of the overall-confidence
// policy.
type confidenceRule struct {
	matches func(numRoutes int, weatherSeverity float64) bool
	label   string
}

// confidenceRules is evaluated top to bottom; first match wins. The policy is
// a demand-based heuristic (more alternatives plus calmer weather means a
// more trustworthy recommendation), not a statistical confidence interval.
var confidenceRules = []confidenceRule{
	{
		matches: func(n int, sev float64) bool { return n >= 3 && sev <= 1 },
		label:   ConfidenceHigh,
	},
	{
		matches: func(n int, sev float64) bool { return n >= 2 && sev <= 3 },
		label:   ConfidenceMedium,
	},
}

// OverallConfidence derives the summary confidence label from the number of
// alternatives and the weather severity.
func OverallConfidence(numRoutes int, weatherSeverity float64) string {
	for _, rule := range confidenceRules {
		if rule.matches(numRoutes, weatherSeverity) {
			return rule.label
		}
	}
	return ConfidenceLow
}
