package insights

import (
	"regexp"
	"strconv"
	"strings"
)

// MomentumMetrics holds the signals parsed out of free-form traction
// text. GrowthRate and UserCount stay nil unless a pattern matched; no
// plausibility validation is applied to matched numbers.
type MomentumMetrics struct {
	GrowthRate       *float64 `json:"growth_rate"`
	UserCount        *int64   `json:"user_count"`
	RevenueSignals   []string `json:"revenue_signals"`
	RetentionSignals []string `json:"retention_signals"`
	VelocitySignals  []string `json:"velocity_signals"`
}

// MomentumResult is the output of ComputeMomentum
type MomentumResult struct {
	Metrics    MomentumMetrics `json:"metrics"`
	Score      int             `json:"score"`
	Trajectory string          `json:"trajectory"`
	Benchmarks []BenchmarkRow  `json:"benchmarks"`
}

// Trajectory labels by score band
const (
	TrajectoryRocketship = "ROCKETSHIP"
	TrajectoryStrong     = "STRONG MOMENTUM"
	TrajectoryBuilding   = "BUILDING"
	TrajectoryEarly      = "EARLY STAGE"
)

const momentumBaseScore = 30

// Growth-rate patterns, tried in order; first match wins.
var growthPatterns = []*regexp.Regexp{
	// "25% month over month", "12% MoM growth", "8% monthly increase"
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%\s*(?:mom|m/m|month(?:ly)?(?:[\s-]over[\s-]month)?)\s*(?:growth|increase)?`),
	// "grew 25%", "growing by 14%", "growth of 9%"
	regexp.MustCompile(`(?:grew|growing|grown|growth of)\s*(?:by\s*)?(\d+(?:\.\d+)?)\s*%`),
	// "3x growth", "2.5x increase"; multiplier expressed as a percentage
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*x\s*(?:growth|increase)`),
}

// User-count patterns, tried in order; first match wins.
var userCountPatterns = []*regexp.Regexp{
	// "2,500 customers", "1.5k users", "300+ subscribers"
	regexp.MustCompile(`([\d,]+(?:\.\d+)?)\s*(k)?\s*\+?\s*(?:users|customers|subscribers|clients|accounts|members)`),
	// "user base of 1,200", "serving 800"
	regexp.MustCompile(`(?:user base of|customer base of|serving)\s*([\d,]+(?:\.\d+)?)\s*(k)?`),
}

// ComputeMomentum scores a company's growth trajectory from free-form
// traction text. The stage keys the user-count threshold and benchmark
// table; unknown stages silently fall back to the seed row.
func (e *Engine) ComputeMomentum(tractionText, stage string) *MomentumResult {
	lower := strings.ToLower(tractionText)

	result := &MomentumResult{
		Metrics: MomentumMetrics{
			GrowthRate:       extractGrowthRate(lower),
			UserCount:        extractUserCount(lower),
			RevenueSignals:   matchedKeywords(lower, e.taxonomy.RevenueSignals),
			RetentionSignals: matchedKeywords(lower, e.taxonomy.RetentionSignals),
			VelocitySignals:  matchedKeywords(lower, e.taxonomy.VelocitySignals),
		},
		Benchmarks: e.taxonomy.stageBenchmarks(stage),
	}

	score := momentumBaseScore

	if rate := result.Metrics.GrowthRate; rate != nil {
		switch {
		case *rate >= 20:
			score += 25
		case *rate >= 10:
			score += 15
		case *rate >= 5:
			score += 10
		}
	}

	if count := result.Metrics.UserCount; count != nil {
		threshold := e.taxonomy.stageThreshold(stage)
		switch {
		case *count >= threshold:
			score += 20
		case *count >= threshold/2:
			score += 10
		}
	}

	score += 3 * len(result.Metrics.RevenueSignals)
	score += 4 * len(result.Metrics.RetentionSignals)
	score += 3 * len(result.Metrics.VelocitySignals)

	if score > 100 {
		score = 100
	}
	result.Score = score
	result.Trajectory = trajectoryLabel(score)

	return result
}

// trajectoryLabel buckets a momentum score into its label
func trajectoryLabel(score int) string {
	switch {
	case score >= 80:
		return TrajectoryRocketship
	case score >= 60:
		return TrajectoryStrong
	case score >= 40:
		return TrajectoryBuilding
	default:
		return TrajectoryEarly
	}
}

// extractGrowthRate tries the growth patterns in order against
// lowercased text and returns the first captured number. A multiplier
// pattern ("3x growth") is converted to a percentage.
func extractGrowthRate(lower string) *float64 {
	for i, pattern := range growthPatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		if i == len(growthPatterns)-1 {
			value *= 100
		}
		return &value
	}
	return nil
}

// extractUserCount tries the user-count patterns in order, stripping
// commas and expanding a "k" suffix ("1.5k" becomes 1500).
func extractUserCount(lower string) *int64 {
	for _, pattern := range userCountPatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		raw := strings.ReplaceAll(match[1], ",", "")
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if match[2] == "k" {
			value *= 1000
		}
		count := int64(value)
		return &count
	}
	return nil
}
