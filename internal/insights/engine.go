package insights

import (
	"strings"
	"unicode"
)

// Engine runs the heuristic memo-insight computations. All methods are
// pure, synchronous, and total over string inputs: empty text is valid
// and produces default/low scores rather than errors. Text parameters
// are expected to be non-nil strings, possibly empty.
type Engine struct {
	taxonomy *Taxonomy
}

// NewEngine creates an engine with the built-in taxonomy
func NewEngine() *Engine {
	return &Engine{taxonomy: DefaultTaxonomy()}
}

// NewEngineWithTaxonomy creates an engine with a custom taxonomy
func NewEngineWithTaxonomy(t *Taxonomy) *Engine {
	return &Engine{taxonomy: t}
}

// Taxonomy exposes the engine's active taxonomy
func (e *Engine) Taxonomy() *Taxonomy {
	return e.taxonomy
}

// KeywordSet is a named list of keyword substrings
type KeywordSet struct {
	Name     string
	Keywords []string
}

// MatchKeywordSets returns the names of every set with at least one
// keyword contained in the lowercased text, in input order.
func MatchKeywordSets(text string, sets []KeywordSet) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, set := range sets {
		if containsAny(lower, set.Keywords) {
			matched = append(matched, set.Name)
		}
	}
	return matched
}

// containsAny reports whether the lowercased text contains any of the
// given keywords. Keywords are matched as substrings.
func containsAny(lowerText string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowerText, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// matchedKeywords returns every keyword contained in the lowercased text
func matchedKeywords(lowerText string, keywords []string) []string {
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(lowerText, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// clampScore bounds a score to [0, 100]
func clampScore(score float64) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score + 0.5)
}

// normalizeStage lowercases and trims a stage string for table lookups
func normalizeStage(stage string) string {
	return strings.ToLower(strings.TrimSpace(stage))
}

// splitSentences breaks text on sentence boundaries, dropping empties
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// significantWords tokenizes text into lowercased words of at least
// minLen characters, excluding stopwords
func significantWords(text string, minLen int, stopwords []string) []string {
	stop := make(map[string]bool, len(stopwords))
	for _, w := range stopwords {
		stop[w] = true
	}

	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]bool)
	var words []string
	for _, f := range fields {
		if len(f) < minLen || stop[f] || seen[f] {
			continue
		}
		seen[f] = true
		words = append(words, f)
	}
	return words
}
