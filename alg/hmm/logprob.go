package hmm

import "math"

// NegInf is the log probability of an impossible event.
var NegInf = math.Inf(-1)

// Log2Prob converts a probability to base 2 log space. Zero and negative
// inputs map to NegInf.
func Log2Prob(p float64) float64 {
	if p <= 0 || math.IsNaN(p) {
		return NegInf
	}
	return math.Log2(p)
}

// LogProduct multiplies probabilities given in log space. It saturates at
// NegInf: any impossible factor makes the product impossible, and the result
// is never NaN.
func LogProduct(logProbs ...float64) float64 {
	var sum float64
	for _, lp := range logProbs {
		if math.IsInf(lp, -1) || math.IsNaN(lp) {
			return NegInf
		}
		sum += lp
	}
	return sum
}

// IsViable reports whether lp is the log of a non-zero probability.
func IsViable(lp float64) bool {
	return !math.IsInf(lp, -1) && !math.IsNaN(lp)
}
