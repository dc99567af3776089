// internal/forecast/trend.go
package forecast

import "math"

// Slope fits an ordinary least-squares line to the demand series
// against its week index and returns the slope. Fewer than two points,
// or a degenerate denominator, yields 0.
func Slope(series []int) float64 {
	if len(series) < 2 {
		return 0.0
	}

	n := float64(len(series))
	var sumX, sumY, sumXY, sumXSq float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += float64(y)
		sumXY += x * float64(y)
		sumXSq += x * x
	}

	// slope = (n*Σxy - Σx*Σy) / (n*Σx² - (Σx)²)
	numerator := n*sumXY - sumX*sumY
	denominator := n*sumXSq - sumX*sumX
	if math.Abs(denominator) < epsilon {
		return 0.0
	}
	return numerator / denominator
}

const epsilon = 1e-12
