// internal/forecast/method.go
package forecast

import "github.com/andresuchdata/replenish-go/internal/domain"

// Kind selects a forecasting method variant.
type Kind int

const (
	// KindMovingAverage holds the mean of the last Window buckets
	// flat across the horizon.
	KindMovingAverage Kind = iota
	// KindExponential is exponential smoothing, with an optional
	// trend component when Beta > 0.
	KindExponential
	// KindSeasonal is Holt-Winters smoothing with a seasonal index
	// of length Period, additive or multiplicative.
	KindSeasonal
	// KindEnsemble blends other methods with normalized weights.
	KindEnsemble
)

// Method is a closed variant type: exactly the fields of its Kind are
// consulted, and Project matches every Kind exhaustively.
type Method struct {
	Kind Kind

	// Moving average
	Window int

	// Smoothing
	Alpha float64
	Beta  float64 // 0 disables the trend component
	Gamma float64

	// Seasonal
	Period         int
	Multiplicative bool

	// Ensemble
	Components []Weighted
}

// Weighted pairs an ensemble component with its blend weight.
type Weighted struct {
	Method Method
	Weight float64
}

// MovingAverage builds a simple moving-average method over the last
// window buckets.
func MovingAverage(window int) Method {
	return Method{Kind: KindMovingAverage, Window: window}
}

// Exponential builds an exponential smoothing method. Pass beta 0 for
// level-only smoothing.
func Exponential(alpha, beta float64) Method {
	return Method{Kind: KindExponential, Alpha: alpha, Beta: beta}
}

// HoltWinters builds a seasonal smoothing method with the given
// seasonal period.
func HoltWinters(alpha, beta, gamma float64, period int, multiplicative bool) Method {
	return Method{
		Kind:           KindSeasonal,
		Alpha:          alpha,
		Beta:           beta,
		Gamma:          gamma,
		Period:         period,
		Multiplicative: multiplicative,
	}
}

// Ensemble builds a weighted blend of other methods. Weights are
// normalized to sum 1 at projection time.
func Ensemble(components ...Weighted) Method {
	return Method{Kind: KindEnsemble, Components: components}
}

// Validate checks the method configuration.
func (m Method) Validate() error {
	switch m.Kind {
	case KindMovingAverage:
		if m.Window < 1 {
			return domain.Validationf("moving average window must be >= 1, got %d", m.Window)
		}
	case KindExponential:
		if m.Alpha <= 0 || m.Alpha > 1 {
			return domain.Validationf("smoothing alpha must be in (0,1], got %g", m.Alpha)
		}
		if m.Beta < 0 || m.Beta > 1 {
			return domain.Validationf("trend beta must be in [0,1], got %g", m.Beta)
		}
	case KindSeasonal:
		if m.Alpha <= 0 || m.Alpha > 1 {
			return domain.Validationf("smoothing alpha must be in (0,1], got %g", m.Alpha)
		}
		if m.Beta < 0 || m.Beta > 1 {
			return domain.Validationf("trend beta must be in [0,1], got %g", m.Beta)
		}
		if m.Gamma < 0 || m.Gamma > 1 {
			return domain.Validationf("seasonal gamma must be in [0,1], got %g", m.Gamma)
		}
		if m.Period < 2 {
			return domain.Validationf("seasonal period must be >= 2, got %d", m.Period)
		}
	case KindEnsemble:
		if len(m.Components) == 0 {
			return domain.Validationf("ensemble requires at least one component")
		}
		total := 0.0
		for _, c := range m.Components {
			if c.Weight <= 0 {
				return domain.Validationf("ensemble weights must be positive, got %g", c.Weight)
			}
			total += c.Weight
			if err := c.Method.Validate(); err != nil {
				return err
			}
		}
		if total <= 0 {
			return domain.Validationf("ensemble weights must sum to a positive value")
		}
	default:
		return domain.Validationf("unknown forecasting method kind %d", m.Kind)
	}
	return nil
}
