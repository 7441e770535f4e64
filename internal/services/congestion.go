package services

// Congestion thresholds in delay minutes. Buckets are half-open on the lower
// side: a 5.0-minute delay is Moderate, a 15.0-minute delay is Heavy.
const (
	CongestionLightMaxDelay    = 5.0
	CongestionModerateMaxDelay = 15.0
)

const (
	CongestionLight    = "Light"
	CongestionModerate = "Moderate"
	CongestionHeavy    = "Heavy"
)

// CongestionLevel buckets a predicted delay into Light/Moderate/Heavy.
func CongestionLevel(delay float64) string {
	switch {
	case delay < CongestionLightMaxDelay:
		return CongestionLight
	case delay < CongestionModerateMaxDelay:
		return CongestionModerate
	default:
		return CongestionHeavy
	}
}
