// internal/forecast/forecaster.go
package forecast

import (
	"math"

	"github.com/google/uuid"

	"github.com/andresuchdata/replenish-go/internal/domain"
)

// Project forecasts demand for one item over horizonDays using the
// given method. The series is the item's chronological weekly demand.
// The trend factor and confidence score are properties of the series
// and do not depend on the method chosen.
func Project(itemID uuid.UUID, demand []int, horizonDays int, m Method) (domain.Forecast, error) {
	if err := m.Validate(); err != nil {
		return domain.Forecast{}, err
	}
	if horizonDays < 1 {
		return domain.Forecast{}, domain.Validationf("forecast horizon must be >= 1 day, got %d", horizonDays)
	}

	predicted, annual, err := project(demand, float64(horizonDays)/7.0, m)
	if err != nil {
		return domain.Forecast{}, err
	}

	return domain.Forecast{
		ItemID:          itemID,
		HorizonDays:     horizonDays,
		PredictedDemand: roundNonNegative(predicted),
		AnnualDemand:    roundNonNegative(annual),
		Confidence:      Confidence(demand),
		TrendFactor:     Slope(demand),
	}, nil
}

// project returns the raw (predicted over horizon, annualized) pair
// for one method. weeks is the horizon expressed in weeks and may be
// fractional.
func project(demand []int, weeks float64, m Method) (predicted, annual float64, err error) {
	switch m.Kind {
	case KindMovingAverage:
		if len(demand) < m.Window {
			return 0, 0, domain.InsufficientHistoryf(
				"moving average needs %d observations, have %d", m.Window, len(demand))
		}
		sum := 0.0
		for _, d := range demand[len(demand)-m.Window:] {
			sum += float64(d)
		}
		avg := sum / float64(m.Window)
		return avg * weeks, avg * 52.0, nil

	case KindExponential:
		if len(demand) == 0 {
			return 0, 0, domain.InsufficientHistoryf("exponential smoothing needs at least 1 observation")
		}
		level, trend := smooth(demand, m.Alpha, m.Beta)
		step := func(h int) float64 {
			if m.Beta > 0 {
				return level + float64(h)*trend
			}
			return level
		}
		return sumSteps(step, weeks), level * 52.0, nil

	case KindSeasonal:
		if len(demand) < 2*m.Period {
			return 0, 0, domain.InsufficientHistoryf(
				"seasonal smoothing needs %d observations, have %d", 2*m.Period, len(demand))
		}
		level, trend, seasonal := smoothSeasonal(demand, m)
		step := func(h int) float64 {
			idx := (len(demand) + h - 1) % m.Period
			if m.Multiplicative {
				return (level + float64(h)*trend) * seasonal[idx]
			}
			return level + float64(h)*trend + seasonal[idx]
		}
		return sumSteps(step, weeks), level * 52.0, nil

	case KindEnsemble:
		totalWeight := 0.0
		for _, c := range m.Components {
			totalWeight += c.Weight
		}
		for _, c := range m.Components {
			p, a, cerr := project(demand, weeks, c.Method)
			if cerr != nil {
				return 0, 0, cerr
			}
			w := c.Weight / totalWeight
			predicted += w * p
			annual += w * a
		}
		return predicted, annual, nil
	}

	return 0, 0, domain.Validationf("unknown forecasting method kind %d", m.Kind)
}

// smooth runs exponential smoothing over the series and returns the
// final level and trend. Trend initializes to the first difference and
// is only updated when beta > 0.
func smooth(demand []int, alpha, beta float64) (level, trend float64) {
	level = float64(demand[0])
	if len(demand) > 1 {
		trend = float64(demand[1]) - float64(demand[0])
	}
	for i := 1; i < len(demand); i++ {
		newLevel := alpha*float64(demand[i]) + (1.0-alpha)*(level+trend)
		if beta > 0 {
			trend = beta*(newLevel-level) + (1.0-beta)*trend
		}
		level = newLevel
	}
	return level, trend
}

// smoothSeasonal runs Holt-Winters smoothing and returns the final
// level, trend, and seasonal index array.
func smoothSeasonal(demand []int, m Method) (level, trend float64, seasonal []float64) {
	period := m.Period
	level = float64(demand[0])
	trend = (float64(demand[period]) - float64(demand[0])) / float64(period)

	seasonal = make([]float64, period)
	for i := 0; i < period; i++ {
		if m.Multiplicative {
			if level != 0 {
				seasonal[i] = float64(demand[i]) / level
			} else {
				seasonal[i] = 1.0
			}
		} else {
			seasonal[i] = float64(demand[i]) - level
		}
	}

	for t := period; t < len(demand); t++ {
		s := t % period
		x := float64(demand[t])

		var newLevel float64
		if m.Multiplicative {
			divisor := seasonal[s]
			if divisor == 0 {
				divisor = 1.0
			}
			newLevel = m.Alpha*(x/divisor) + (1.0-m.Alpha)*(level+trend)
		} else {
			newLevel = m.Alpha*(x-seasonal[s]) + (1.0-m.Alpha)*(level+trend)
		}

		newTrend := m.Beta*(newLevel-level) + (1.0-m.Beta)*trend

		if m.Multiplicative {
			if newLevel != 0 {
				seasonal[s] = m.Gamma*(x/newLevel) + (1.0-m.Gamma)*seasonal[s]
			}
		} else {
			seasonal[s] = m.Gamma*(x-newLevel) + (1.0-m.Gamma)*seasonal[s]
		}

		level = newLevel
		trend = newTrend
	}
	return level, trend, seasonal
}

// sumSteps accumulates weekly step forecasts across a possibly
// fractional horizon: whole weeks weigh 1, the trailing partial week
// weighs its remaining fraction. Each step is floored at zero.
func sumSteps(step func(h int) float64, weeks float64) float64 {
	total := 0.0
	for h := 1; float64(h-1) < weeks; h++ {
		weight := math.Min(1.0, weeks-float64(h-1))
		total += weight * math.Max(0, step(h))
	}
	return total
}

// Confidence scores forecast reliability from demand variability:
// 1 - min(CV, 1), clamped to at least 0.1, where CV is the series'
// coefficient of variation. Fewer than 3 points yields a fixed 0.5.
func Confidence(demand []int) float64 {
	if len(demand) < 3 {
		return 0.5
	}

	mean := 0.0
	for _, d := range demand {
		mean += float64(d)
	}
	mean /= float64(len(demand))

	cv := 0.0
	if mean > 0 {
		variance := 0.0
		for _, d := range demand {
			diff := float64(d) - mean
			variance += diff * diff
		}
		variance /= float64(len(demand))
		cv = math.Sqrt(variance) / mean
	}

	return math.Max(1.0-math.Min(cv, 1.0), 0.1)
}

func roundNonNegative(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Round(v))
}
