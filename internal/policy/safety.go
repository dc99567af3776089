// internal/policy/safety.go
package policy

import (
	"math"

	"github.com/andresuchdata/replenish-go/internal/domain"
)

// ZScore maps a target service level to the corresponding normal
// z-score bucket. Levels below 0.85 fall to the 80% bucket.
func ZScore(serviceLevel float64) float64 {
	switch {
	case serviceLevel >= 0.999:
		return 3.09
	case serviceLevel >= 0.99:
		return 2.33
	case serviceLevel >= 0.95:
		return 1.65
	case serviceLevel >= 0.90:
		return 1.28
	case serviceLevel >= 0.85:
		return 1.04
	default:
		return 0.84
	}
}

// SafetyStock converts demand variability, lead-time variability, and
// a target service level into a buffer quantity.
//
// Combined variance = L·σ² + σ²·(L·v)², where L is lead time in days,
// σ the demand standard deviation, and v the lead-time variability
// coefficient. The squared lead-time term deviates from the textbook
// demand-during-lead-time formula; it is kept as-is for compatibility
// with existing planning output.
func SafetyStock(demandStdDev, leadTimeDays, leadTimeVariability, serviceLevel float64) (int, error) {
	if serviceLevel < 0 || serviceLevel > 1 {
		return 0, domain.Validationf("service level must be in [0,1], got %g", serviceLevel)
	}
	if leadTimeDays < 0 {
		return 0, domain.Validationf("lead time must be non-negative, got %g days", leadTimeDays)
	}
	if leadTimeVariability < 0 {
		return 0, domain.Validationf("lead-time variability must be non-negative, got %g", leadTimeVariability)
	}
	if demandStdDev < 0 {
		return 0, domain.Validationf("demand standard deviation must be non-negative, got %g", demandStdDev)
	}

	demandVariance := demandStdDev * demandStdDev
	leadTimeVariance := math.Pow(leadTimeDays*leadTimeVariability, 2)
	totalVariance := leadTimeDays*demandVariance + demandVariance*leadTimeVariance

	stock := ZScore(serviceLevel) * math.Sqrt(totalVariance)
	if stock < 0 {
		return 0, nil
	}
	return int(math.Round(stock)), nil
}

// StdDev returns the sample standard deviation of a weekly demand
// series. Fewer than two points yields 0.
func StdDev(demand []int) float64 {
	if len(demand) < 2 {
		return 0.0
	}

	mean := 0.0
	for _, d := range demand {
		mean += float64(d)
	}
	mean /= float64(len(demand))

	variance := 0.0
	for _, d := range demand {
		diff := float64(d) - mean
		variance += diff * diff
	}
	variance /= float64(len(demand) - 1)
	return math.Sqrt(variance)
}
