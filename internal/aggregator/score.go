package aggregator

import "math"

// Confidence treats each queried source as one vote: the share of distinct
// sources that corroborate a fixture, clamped to [0,1] and rounded to two
// decimals. Sources that returned nothing still count in the denominator,
// so a single-source event is penalized appropriately.
func Confidence(distinctEvidence, totalQueried int) float64 {
	if totalQueried <= 0 {
		return 0
	}
	c := float64(distinctEvidence) / float64(totalQueried)
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return math.Round(c*100) / 100
}
