package insights

import (
	"regexp"
	"sort"
	"strings"

	"github.com/uglybaby/memo-engine/internal/models"
)

// SectionInsight is a read-only projection of one section's stored AI
// tool output, plus the evidence substrings mined from its reasoning
type SectionInsight struct {
	Section         string   `json:"section"`
	Score           *float64 `json:"score,omitempty"`
	Benchmark       string   `json:"benchmark,omitempty"`
	Reasoning       string   `json:"reasoning,omitempty"`
	WhatThisTellsVC string   `json:"what_this_tells_vc,omitempty"`
	Assumptions     []string `json:"assumptions,omitempty"`
	Evidence        []string `json:"evidence,omitempty"`
}

// CompanyInsightContext aggregates per-section AI reasoning into a
// lookup structure for best-effort relevance matching
type CompanyInsightContext struct {
	CompanyName     string           `json:"company_name"`
	Stage           string           `json:"stage"`
	Category        string           `json:"category"`
	SectionInsights []SectionInsight `json:"section_insights"`
}

// InsightMatch is the best-effort relevance result for a concern string.
// This is an approximation, not a correctness-bearing answer: callers
// should treat it as "some plausible supporting context".
type InsightMatch struct {
	CompanyContext string   `json:"company_context"`
	Section        string   `json:"section"`
	Evidence       []string `json:"evidence"`
}

const (
	minMatchWordLen    = 4
	relevanceThreshold = 12.0
	maxEvidence        = 3
)

// Evidence patterns mined from AI reasoning text. Matches are kept as
// literal substrings.
var evidencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`[$€]\s?[\d,.]+\s*[km]?\s*(?:acv|mrr|arr)`),
	regexp.MustCompile(`contradict\w*`),
	regexp.MustCompile(`assum\w*`),
	regexp.MustCompile(`[\d,.]+\s*(?:customers|users|clients)`),
	regexp.MustCompile(`\d+(?:\.\d+)?\s*%\s*(?:growth|churn|retention|margin)`),
	regexp.MustCompile(`\d+(?:\.\d+)?\s*x\s*(?:multiple|return|growth)`),
	regexp.MustCompile(`(?:runway of|burn rate of)\s+[^,.]{1,40}`),
	regexp.MustCompile(`(?:tam|sam|som)\s+of\s+[$€]?[\d,.]+\s*\w*`),
	regexp.MustCompile(`(?:no evidence|unverified|unsupported)[^,.]{0,40}`),
}

// ExtractCompanyInsightContext projects stored section tool outputs into
// a context structure. A section contributes only if it carries at least
// one of reasoning, investment logic, or a score. Sections are ordered
// by title so output is deterministic.
func (e *Engine) ExtractCompanyInsightContext(tools models.SectionTools, companyName, stage, category string) *CompanyInsightContext {
	ctx := &CompanyInsightContext{
		CompanyName: companyName,
		Stage:       stage,
		Category:    category,
	}

	titles := make([]string, 0, len(tools))
	for title := range tools {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	for _, title := range titles {
		tool := tools[title]
		if tool.Reasoning == "" && tool.WhatThisTellsVC == "" && tool.SectionScore == nil {
			continue
		}
		ctx.SectionInsights = append(ctx.SectionInsights, SectionInsight{
			Section:         title,
			Score:           tool.SectionScore,
			Benchmark:       tool.Benchmark,
			Reasoning:       tool.Reasoning,
			WhatThisTellsVC: tool.WhatThisTellsVC,
			Assumptions:     tool.Assumptions,
			Evidence:        extractEvidence(tool.Reasoning),
		})
	}

	return ctx
}

// GetCompanyContextForInsight finds the stored reasoning sentence most
// relevant to an insight text by word-overlap scoring. Below the
// relevance threshold it falls back to the section-name keyword table,
// then to the best overlapping sentence found at all. Returns nil when
// nothing in the context relates to the text.
func (e *Engine) GetCompanyContextForInsight(text string, ctx *CompanyInsightContext) *InsightMatch {
	if ctx == nil || len(ctx.SectionInsights) == 0 {
		return nil
	}

	words := significantWords(text, minMatchWordLen, e.taxonomy.Stopwords)

	var (
		bestScore    float64
		bestSentence string
		bestSection  *SectionInsight
	)

	for i := range ctx.SectionInsights {
		section := &ctx.SectionInsights[i]
		for _, sentence := range splitSentences(section.Reasoning) {
			score := scoreSentence(sentence, words)
			if score > bestScore {
				bestScore = score
				bestSentence = sentence
				bestSection = section
			}
		}
	}

	if bestSection != nil && bestScore >= relevanceThreshold {
		return newInsightMatch(bestSentence, bestSection)
	}

	// Weak overlap: prefer the section the query is nominally about
	if match := e.matchBySectionName(text, ctx); match != nil {
		return match
	}

	// Last resort: any overlap at all beats returning nothing
	if bestSection != nil && bestScore > 0 {
		return newInsightMatch(bestSentence, bestSection)
	}

	return nil
}

// matchBySectionName walks the ordered section keyword table and returns
// the first sentence of the first section both named by the query and
// present in the context
func (e *Engine) matchBySectionName(text string, ctx *CompanyInsightContext) *InsightMatch {
	lower := strings.ToLower(text)
	for _, entry := range e.taxonomy.SectionKeywords {
		if !containsAny(lower, entry.Keywords) {
			continue
		}
		for i := range ctx.SectionInsights {
			section := &ctx.SectionInsights[i]
			if !strings.Contains(strings.ToLower(section.Section), strings.ToLower(entry.Section)) {
				continue
			}
			sentences := splitSentences(section.Reasoning)
			if len(sentences) == 0 {
				continue
			}
			return newInsightMatch(sentences[0], section)
		}
	}
	return nil
}

// scoreSentence sums the character length of every query word contained
// in the sentence, boosted 1.5x for two distinct matches and 2x for
// three or more
func scoreSentence(sentence string, words []string) float64 {
	lower := strings.ToLower(sentence)

	score := 0.0
	distinct := 0
	for _, word := range words {
		if strings.Contains(lower, word) {
			score += float64(len(word))
			distinct++
		}
	}

	switch {
	case distinct >= 3:
		score *= 2
	case distinct >= 2:
		score *= 1.5
	}
	return score
}

// extractEvidence runs the evidence patterns over lowercased reasoning
// text and collects matched substrings
func extractEvidence(reasoning string) []string {
	if reasoning == "" {
		return nil
	}

	lower := strings.ToLower(reasoning)
	seen := make(map[string]bool)
	var evidence []string
	for _, pattern := range evidencePatterns {
		for _, match := range pattern.FindAllString(lower, -1) {
			match = strings.TrimSpace(match)
			if match == "" || seen[match] {
				continue
			}
			seen[match] = true
			evidence = append(evidence, match)
		}
	}
	return evidence
}

// newInsightMatch builds a match capped at maxEvidence entries
func newInsightMatch(sentence string, section *SectionInsight) *InsightMatch {
	evidence := section.Evidence
	if len(evidence) > maxEvidence {
		evidence = evidence[:maxEvidence]
	}
	return &InsightMatch{
		CompanyContext: sentence,
		Section:        section.Section,
		Evidence:       evidence,
	}
}
