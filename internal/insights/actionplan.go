package insights

import (
	"strings"
	"unicode"

	"github.com/uglybaby/memo-engine/internal/models"
)

// ActionItem is one prioritized fix extracted from investor feedback
type ActionItem struct {
	Priority    int    `json:"priority"`
	Category    string `json:"category"`
	Problem     string `json:"problem"`
	Impact      string `json:"impact"`
	Fix         string `json:"fix"`
	BadExample  string `json:"bad_example"`
	GoodExample string `json:"good_example"`
	Urgency     string `json:"urgency"`
}

// ActionPlanData is the output of ExtractActionPlan
type ActionPlanData struct {
	Items          []ActionItem `json:"items"`
	OverallUrgency string       `json:"overall_urgency"`
	SummaryLine    string       `json:"summary_line"`
}

const (
	minActionItems = 3
	maxActionItems = 5
)

// ExtractActionPlan turns quick-take concerns and per-section VC
// reflections into a prioritized plan of 3-5 items, one per category.
// Quick-take concerns are processed first, then section reflections,
// then unused categories are backfilled in taxonomy order until the
// minimum is reached.
func (e *Engine) ExtractActionPlan(content *models.StructuredContent, quickTake *models.VCQuickTake) *ActionPlanData {
	used := make(map[string]bool)
	var items []ActionItem

	add := func(category, problem string) {
		if len(items) >= maxActionItems || used[category] {
			return
		}
		cfg := e.taxonomy.categoryByName(category)
		if cfg == nil {
			return
		}
		if problem == "" {
			problem = cfg.DefaultProblem
		}
		used[category] = true
		items = append(items, ActionItem{
			Priority:    len(items) + 1,
			Category:    category,
			Problem:     cleanProblemText(problem),
			Impact:      cfg.Impact,
			Fix:         cfg.DefaultFix,
			BadExample:  cfg.BadExample,
			GoodExample: cfg.GoodExample,
			Urgency:     cfg.Urgency,
		})
	}

	// Pass 1: quick-take concerns, first concern per category wins
	if quickTake != nil {
		for _, concern := range quickTake.Concerns {
			if strings.TrimSpace(concern) == "" {
				continue
			}
			add(e.CategorizeIssue(concern), concern)
		}
	}

	// Pass 2: section reflections; one category hit per section, plus
	// the section's leading open question tagged by its title
	if content != nil {
		for _, section := range content.Sections {
			if section.VCReflection == nil {
				continue
			}

			analysis := strings.ToLower(section.VCReflection.Analysis)
			if analysis != "" {
				for _, cfg := range e.taxonomy.Categories {
					if containsAny(analysis, cfg.Keywords) {
						add(cfg.Name, section.VCReflection.Analysis)
						break
					}
				}
			}

			if len(section.VCReflection.Questions) > 0 {
				question := section.VCReflection.Questions[0]
				if strings.TrimSpace(question) != "" {
					add(categorizeSectionTitle(section.Title), question)
				}
			}
		}
	}

	// Backfill with category defaults until the minimum is reached
	for _, category := range e.taxonomy.BackfillOrder {
		if len(items) >= minActionItems {
			break
		}
		add(category, "")
	}

	plan := &ActionPlanData{Items: items}
	plan.OverallUrgency = overallUrgency(len(items))
	plan.SummaryLine = e.summaryLine(plan.OverallUrgency, used)
	return plan
}

// CategorizeIssue maps free-text investor feedback to a problem
// category. Keyword match wins; a secondary heuristic covers common
// phrasings; everything else is a narrative problem.
func (e *Engine) CategorizeIssue(text string) string {
	lower := strings.ToLower(text)

	for _, cfg := range e.taxonomy.Categories {
		if containsAny(lower, cfg.Keywords) {
			return cfg.Name
		}
	}

	switch {
	case strings.Contains(lower, "customer") || strings.Contains(lower, "revenue"):
		return CategoryTraction
	case strings.Contains(lower, "founder") || strings.Contains(lower, "hire"):
		return CategoryTeam
	case strings.Contains(lower, "market") || strings.Contains(lower, "tam"):
		return CategoryMarket
	default:
		return CategoryNarrative
	}
}

// categorizeSectionTitle maps a memo section title to a category
func categorizeSectionTitle(title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "traction"):
		return CategoryTraction
	case strings.Contains(lower, "team"):
		return CategoryTeam
	case strings.Contains(lower, "market") || strings.Contains(lower, "competition"):
		return CategoryMarket
	case strings.Contains(lower, "product") || strings.Contains(lower, "solution"):
		return CategoryProduct
	case strings.Contains(lower, "financ") || strings.Contains(lower, "ask") || strings.Contains(lower, "funds"):
		return CategoryFinancials
	default:
		return CategoryNarrative
	}
}

// overallUrgency buckets the plan urgency by item count
func overallUrgency(itemCount int) string {
	switch {
	case itemCount >= 4:
		return "critical"
	case itemCount >= 2:
		return "high"
	default:
		return "moderate"
	}
}

// summaryLine picks the first matching canned summary. Branch order is
// the priority order: critical urgency beats the traction+team combo,
// which beats narrative presence, which beats the generic default.
func (e *Engine) summaryLine(urgency string, used map[string]bool) string {
	switch {
	case urgency == "critical":
		return e.taxonomy.Summaries.Critical
	case used[CategoryTraction] && used[CategoryTeam]:
		return e.taxonomy.Summaries.TractionTeam
	case used[CategoryNarrative]:
		return e.taxonomy.Summaries.Narrative
	default:
		return e.taxonomy.Summaries.Default
	}
}

// cleanProblemText strips list markers and normalizes whitespace,
// capitalizing the first letter
func cleanProblemText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimLeft(text, "-*•· \t")
	for len(text) > 1 && unicode.IsDigit(rune(text[0])) {
		trimmed := strings.TrimLeft(text, "0123456789")
		if strings.HasPrefix(trimmed, ".") || strings.HasPrefix(trimmed, ")") {
			text = strings.TrimSpace(trimmed[1:])
			continue
		}
		break
	}
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return text
	}

	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
