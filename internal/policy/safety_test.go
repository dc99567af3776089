package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/replenish-go/internal/domain"
	"github.com/andresuchdata/replenish-go/internal/policy"
)

func TestZScore_ServiceLevelBuckets(t *testing.T) {
	cases := []struct {
		serviceLevel float64
		want         float64
	}{
		{0.999, 3.09},
		{0.995, 2.33},
		{0.99, 2.33},
		{0.97, 1.65},
		{0.95, 1.65},
		{0.92, 1.28},
		{0.90, 1.28},
		{0.85, 1.04},
		{0.80, 0.84},
		{0.50, 0.84},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, policy.ZScore(tc.serviceLevel),
			"service level %.3f", tc.serviceLevel)
	}
}

func TestSafetyStock_ReferenceScenario(t *testing.T) {
	// sigma 25 per week, 14-day lead time, 20% lead-time variability
	// at 95% service: z=1.65, variance 14*625 + 625*(14*0.2)^2 = 13650,
	// 1.65*sqrt(13650) = 192.8.
	stock, err := policy.SafetyStock(25, 14, 0.2, 0.95)
	require.NoError(t, err)

	assert.Equal(t, 193, stock)
	assert.Greater(t, stock, 0)
	assert.Less(t, stock, 200)
}

func TestSafetyStock_ZeroVariabilityNeedsNoBuffer(t *testing.T) {
	stock, err := policy.SafetyStock(0, 14, 0.2, 0.95)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)
}

func TestSafetyStock_HigherServiceLevelMeansMoreStock(t *testing.T) {
	low, err := policy.SafetyStock(25, 14, 0.2, 0.90)
	require.NoError(t, err)
	high, err := policy.SafetyStock(25, 14, 0.2, 0.999)
	require.NoError(t, err)

	assert.Greater(t, high, low)
}

func TestSafetyStock_RejectsOutOfRangeInputs(t *testing.T) {
	cases := []struct {
		name                           string
		sigma, lead, variability, level float64
	}{
		{"service level above one", 25, 14, 0.2, 1.5},
		{"negative service level", 25, 14, 0.2, -0.1},
		{"negative lead time", 25, -1, 0.2, 0.95},
		{"negative variability", 25, 14, -0.2, 0.95},
		{"negative sigma", -25, 14, 0.2, 0.95},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := policy.SafetyStock(tc.sigma, tc.lead, tc.variability, tc.level)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestStdDev_SampleDeviation(t *testing.T) {
	// mean 5, sum of squared diffs 32, 32/7 = 4.571, sqrt = 2.138
	assert.InDelta(t, 2.138, policy.StdDev([]int{2, 4, 4, 4, 5, 5, 7, 9}), 0.001)
}

func TestStdDev_FlatSeries(t *testing.T) {
	assert.Equal(t, 0.0, policy.StdDev([]int{10, 10, 10, 10}))
}

func TestStdDev_TooFewPoints(t *testing.T) {
	assert.Equal(t, 0.0, policy.StdDev(nil))
	assert.Equal(t, 0.0, policy.StdDev([]int{42}))
}
