package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMomentum_SeedTraction(t *testing.T) {
	engine := NewEngine()

	result := engine.ComputeMomentum("We grew 25% month over month with 2,500 customers and strong retention", "seed")

	require.NotNil(t, result.Metrics.GrowthRate)
	assert.Equal(t, 25.0, *result.Metrics.GrowthRate)

	require.NotNil(t, result.Metrics.UserCount)
	assert.Equal(t, int64(2500), *result.Metrics.UserCount)

	assert.NotEmpty(t, result.Metrics.RetentionSignals)
	assert.GreaterOrEqual(t, result.Score, 60)
	assert.Contains(t, []string{TrajectoryStrong, TrajectoryRocketship}, result.Trajectory)
}

func TestComputeMomentum_EmptyText(t *testing.T) {
	engine := NewEngine()

	result := engine.ComputeMomentum("", "seed")

	assert.Nil(t, result.Metrics.GrowthRate)
	assert.Nil(t, result.Metrics.UserCount)
	assert.Empty(t, result.Metrics.RevenueSignals)
	assert.Empty(t, result.Metrics.RetentionSignals)
	assert.Empty(t, result.Metrics.VelocitySignals)
	assert.Equal(t, 30, result.Score)
	assert.Equal(t, TrajectoryEarly, result.Trajectory)
}

func TestComputeMomentum_UnknownStageFallsBackToSeed(t *testing.T) {
	engine := NewEngine()

	text := "600 users and growing 12% monthly"
	unknown := engine.ComputeMomentum(text, "series z")
	seed := engine.ComputeMomentum(text, "seed")

	assert.Equal(t, seed.Score, unknown.Score)
	assert.Equal(t, seed.Benchmarks, unknown.Benchmarks)
}

func TestComputeMomentum_ScoreClamp(t *testing.T) {
	engine := NewEngine()

	// Everything at once: growth, users, and all three signal families
	text := "Growing 40% MoM growth, 10,000 customers, $50k MRR revenue and sales contracts, 2% churn with strong retention and repeat renewals, plus a waitlist with pipeline demand"
	result := engine.ComputeMomentum(text, "seed")

	assert.LessOrEqual(t, result.Score, 100)
	assert.Equal(t, TrajectoryRocketship, result.Trajectory)
}

func TestExtractGrowthRate_Patterns(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"we grew 25% month over month", 25},
		{"growing by 14% every quarter", 14},
		{"12% mom growth since march", 12},
		{"3x growth year over year", 300},
		{"2.5x increase in usage", 250},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			rate := extractGrowthRate(tc.text)
			require.NotNil(t, rate)
			assert.Equal(t, tc.want, *rate)
		})
	}

	assert.Nil(t, extractGrowthRate("no numbers to be found"))
}

func TestExtractUserCount_Parsing(t *testing.T) {
	cases := []struct {
		text string
		want int64
	}{
		{"1.5k users", 1500},
		{"2,500 customers", 2500},
		{"300+ subscribers so far", 300},
		{"serving 800 every day", 800},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			count := extractUserCount(tc.text)
			require.NotNil(t, count)
			assert.Equal(t, tc.want, *count)
		})
	}

	assert.Nil(t, extractUserCount("lots of happy people"))
}

func TestComputeMomentum_NoPlausibilityCheck(t *testing.T) {
	engine := NewEngine()

	// Extraction accepts whatever the text claims
	result := engine.ComputeMomentum("we grew 9999% month over month", "seed")

	require.NotNil(t, result.Metrics.GrowthRate)
	assert.Equal(t, 9999.0, *result.Metrics.GrowthRate)
}
