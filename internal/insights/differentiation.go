package insights

import "strings"

// DifferentiationFactor is one competitive dimension with the three
// positioning tiers rendered to the founder
type DifferentiationFactor struct {
	Name        string `json:"name"`
	Yours       Tier   `json:"yours"`
	DoNothing   Tier   `json:"do_nothing"`
	Competitors Tier   `json:"competitors"`
}

// DifferentiationResult is the output of ComputeDifferentiation
type DifferentiationResult struct {
	Factors     []DifferentiationFactor `json:"factors"`
	Score       int                     `json:"score"`
	Suggestions []string                `json:"suggestions"`
}

const maxSuggestions = 3

// ComputeDifferentiation classifies the company's solution against the
// fixed factor list and produces a 0-100 differentiation score. Empty
// input is valid and yields all-moderate classifications. The company
// name never influences the score.
func (e *Engine) ComputeDifferentiation(solutionText, problemText, companyName string) *DifferentiationResult {
	lower := strings.ToLower(solutionText + " " + problemText)

	result := &DifferentiationResult{
		Factors: make([]DifferentiationFactor, 0, len(e.taxonomy.Factors)),
	}

	total := 0
	for _, fc := range e.taxonomy.Factors {
		yours := fc.DefaultTier
		if containsAny(lower, fc.Keywords) {
			yours = TierStrong
		}

		result.Factors = append(result.Factors, DifferentiationFactor{
			Name:        fc.Name,
			Yours:       yours,
			DoNothing:   fc.DoNothing,
			Competitors: fc.Competitors,
		})

		// Score each factor against the do-nothing baseline
		total += (tierValue(yours)-tierValue(fc.DoNothing))*10 + 10

		if yours != TierStrong && len(result.Suggestions) < maxSuggestions {
			result.Suggestions = append(result.Suggestions, fc.Suggestion)
		}
	}

	if n := len(e.taxonomy.Factors); n > 0 {
		result.Score = clampScore(float64(total) / float64(n) * 3)
	}

	return result
}
