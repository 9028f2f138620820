package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uglybaby/memo-engine/internal/models"
)

func TestExtractActionPlan_BackfillGuarantee(t *testing.T) {
	engine := NewEngine()

	plan := engine.ExtractActionPlan(&models.StructuredContent{}, &models.VCQuickTake{})

	require.GreaterOrEqual(t, len(plan.Items), 3)
	require.LessOrEqual(t, len(plan.Items), 5)

	categories := make(map[string]bool)
	for i, item := range plan.Items {
		assert.Equal(t, i+1, item.Priority)
		assert.False(t, categories[item.Category], "duplicate category %s", item.Category)
		categories[item.Category] = true
		assert.NotEmpty(t, item.Problem)
		assert.NotEmpty(t, item.Fix)
		assert.NotEmpty(t, item.BadExample)
		assert.NotEmpty(t, item.GoodExample)
	}

	// Backfill follows the explicit taxonomy order
	assert.Equal(t, CategoryTraction, plan.Items[0].Category)
	assert.Equal(t, CategoryTeam, plan.Items[1].Category)
	assert.Equal(t, CategoryMarket, plan.Items[2].Category)
}

func TestExtractActionPlan_NilInputs(t *testing.T) {
	engine := NewEngine()

	plan := engine.ExtractActionPlan(nil, nil)

	assert.GreaterOrEqual(t, len(plan.Items), 3)
	assert.LessOrEqual(t, len(plan.Items), 5)
}

func TestExtractActionPlan_CapAtFive(t *testing.T) {
	engine := NewEngine()

	quickTake := &models.VCQuickTake{
		Concerns: []string{
			"No revenue traction yet",
			"Solo founder without a technical co-founder",
			"TAM seems inflated",
			"Burn rate is too high for the stage",
			"The story is confusing to follow",
			"The product roadmap is a feature list",
		},
	}
	content := &models.StructuredContent{
		Sections: []models.MemoSection{
			{
				Title: "Traction",
				VCReflection: &models.VCReflection{
					Analysis:  "Retention numbers look weak and churn is unexplained",
					Questions: []string{"What is the 90-day retention cohort?"},
				},
			},
		},
	}

	plan := engine.ExtractActionPlan(content, quickTake)

	assert.Len(t, plan.Items, 5)
	assert.Equal(t, "critical", plan.OverallUrgency)
	assert.Equal(t, engine.Taxonomy().Summaries.Critical, plan.SummaryLine)
}

func TestExtractActionPlan_FirstConcernPerCategoryWins(t *testing.T) {
	engine := NewEngine()

	quickTake := &models.VCQuickTake{
		Concerns: []string{
			"Revenue traction is unproven",
			"Customer growth numbers are not evidenced",
		},
	}

	plan := engine.ExtractActionPlan(&models.StructuredContent{}, quickTake)

	var tractionItems []ActionItem
	for _, item := range plan.Items {
		if item.Category == CategoryTraction {
			tractionItems = append(tractionItems, item)
		}
	}
	require.Len(t, tractionItems, 1)
	assert.Equal(t, "Revenue traction is unproven", tractionItems[0].Problem)
}

func TestExtractActionPlan_SectionReflections(t *testing.T) {
	engine := NewEngine()

	content := &models.StructuredContent{
		Sections: []models.MemoSection{
			{
				Title: "Team",
				VCReflection: &models.VCReflection{
					Analysis:  "A solo founder with no stated hiring plan is a concern",
					Questions: []string{"Who is the first engineering hire?"},
				},
			},
		},
	}

	plan := engine.ExtractActionPlan(content, nil)

	found := false
	for _, item := range plan.Items {
		if item.Category == CategoryTeam {
			found = true
			assert.Equal(t, "A solo founder with no stated hiring plan is a concern", item.Problem)
		}
	}
	assert.True(t, found, "expected a team item from the section reflection")
}

func TestCategorizeIssue(t *testing.T) {
	engine := NewEngine()

	cases := []struct {
		text string
		want string
	}{
		{"no revenue traction yet", CategoryTraction},
		{"solo founder with no technical depth", CategoryTeam},
		{"the tam is top-down and inflated", CategoryMarket},
		{"burn rate leaves nine months of runway", CategoryFinancials},
		{"the mvp demo did not work", CategoryProduct},
		{"we could not follow the story", CategoryNarrative},
		// Secondary heuristic fallbacks
		{"who is actually paying? customer evidence missing", CategoryTraction},
		{"nothing else fits this vague statement", CategoryNarrative},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.want, engine.CategorizeIssue(tc.text))
		})
	}
}

func TestCleanProblemText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  - no revenue yet  ", "No revenue yet"},
		{"1. market is unclear", "Market is unclear"},
		{"* team   gap ", "Team gap"},
		{"already clean", "Already clean"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, cleanProblemText(tc.in))
	}
}
