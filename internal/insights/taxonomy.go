package insights

// Tier is an ordinal classification level for a competitive factor
type Tier string

const (
	TierStrong   Tier = "strong"
	TierModerate Tier = "moderate"
	TierWeak     Tier = "weak"
)

// tierValue maps a tier to its numeric weight for scoring
func tierValue(t Tier) int {
	switch t {
	case TierStrong:
		return 3
	case TierModerate:
		return 2
	default:
		return 1
	}
}

// FactorConfig describes one competitive differentiation factor
type FactorConfig struct {
	Name        string   `json:"name"`
	Keywords    []string `json:"keywords"`
	DefaultTier Tier     `json:"default_tier"`
	DoNothing   Tier     `json:"do_nothing"`
	Competitors Tier     `json:"competitors"`
	Suggestion  string   `json:"suggestion"`
}

// CategoryConfig describes one action-plan problem category with its
// canned remediation content
type CategoryConfig struct {
	Name           string   `json:"name"`
	Keywords       []string `json:"keywords"`
	DefaultProblem string   `json:"default_problem"`
	DefaultFix     string   `json:"default_fix"`
	Impact         string   `json:"impact"`
	BadExample     string   `json:"bad_example"`
	GoodExample    string   `json:"good_example"`
	Urgency        string   `json:"urgency"`
}

// BenchmarkRow is one row of a stage benchmark table
type BenchmarkRow struct {
	Metric string `json:"metric"`
	Target string `json:"target"`
}

// SectionKeywordEntry maps a memo section name to the query keywords that
// select it during fallback matching. Order matters: first match wins.
type SectionKeywordEntry struct {
	Section  string   `json:"section"`
	Keywords []string `json:"keywords"`
}

// SummaryTemplates holds the canned action-plan summary lines. Branch
// order is critical > traction+team > narrative > default.
type SummaryTemplates struct {
	Critical     string `json:"critical"`
	TractionTeam string `json:"traction_team"`
	Narrative    string `json:"narrative"`
	Default      string `json:"default"`
}

// Taxonomy is the injectable configuration behind the insight engine.
// All orderings are explicit slices so behavior does not depend on map
// iteration order.
type Taxonomy struct {
	Factors          []FactorConfig        `json:"factors"`
	Categories       []CategoryConfig      `json:"categories"`
	BackfillOrder    []string              `json:"backfill_order"`
	RevenueSignals   []string              `json:"revenue_signals"`
	RetentionSignals []string              `json:"retention_signals"`
	VelocitySignals  []string              `json:"velocity_signals"`
	StageThresholds  map[string]int64      `json:"stage_thresholds"`
	StageBenchmarks  map[string][]BenchmarkRow `json:"stage_benchmarks"`
	DefaultStage     string                `json:"default_stage"`
	Stopwords        []string              `json:"stopwords"`
	SectionKeywords  []SectionKeywordEntry `json:"section_keywords"`
	Summaries        SummaryTemplates      `json:"summaries"`
}

// Action-plan category names
const (
	CategoryTraction   = "traction"
	CategoryTeam       = "team"
	CategoryMarket     = "market"
	CategoryProduct    = "product"
	CategoryFinancials = "financials"
	CategoryNarrative  = "narrative"
)

// DefaultTaxonomy returns the built-in taxonomy used in production
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{
		Factors: []FactorConfig{
			{
				Name:        "Speed",
				Keywords:    []string{"instant", "fast", "real-time", "quick", "minutes"},
				DefaultTier: TierModerate,
				DoNothing:   TierWeak,
				Competitors: TierModerate,
				Suggestion:  "Quantify how much faster your solution is than the status quo, ideally with a before/after number.",
			},
			{
				Name:        "Cost",
				Keywords:    []string{"cost", "cheap", "affordable", "saving", "roi"},
				DefaultTier: TierModerate,
				DoNothing:   TierWeak,
				Competitors: TierModerate,
				Suggestion:  "State the cost advantage in dollars or percent saved versus the closest alternative.",
			},
			{
				Name:        "Ease of Use",
				Keywords:    []string{"easy", "simple", "intuitive", "seamless", "no-code", "platform"},
				DefaultTier: TierModerate,
				DoNothing:   TierWeak,
				Competitors: TierModerate,
				Suggestion:  "Describe the onboarding path: how long until a new customer gets value without help.",
			},
			{
				Name:        "Innovation",
				Keywords:    []string{"ai", "proprietary", "patent", "novel", "unique", "first"},
				DefaultTier: TierModerate,
				DoNothing:   TierWeak,
				Competitors: TierModerate,
				Suggestion:  "Name the specific technology or method competitors cannot easily copy.",
			},
			{
				Name:        "Integration",
				Keywords:    []string{"integrat", "api", "plugin", "connects", "works with"},
				DefaultTier: TierModerate,
				DoNothing:   TierWeak,
				Competitors: TierModerate,
				Suggestion:  "List the systems you plug into today; integrations are a concrete moat signal.",
			},
			{
				Name:        "Scalability",
				Keywords:    []string{"scale", "scales", "enterprise", "global", "grow"},
				DefaultTier: TierModerate,
				DoNothing:   TierWeak,
				Competitors: TierModerate,
				Suggestion:  "Explain what breaks at 10x volume and why your architecture or model absorbs it.",
			},
		},
		Categories: []CategoryConfig{
			{
				Name:           CategoryTraction,
				Keywords:       []string{"traction", "revenue", "customer", "growth", "retention", "churn"},
				DefaultProblem: "Traction evidence is thin: no concrete revenue, usage, or retention numbers",
				DefaultFix:     "Add 2-3 hard metrics with timeframes: MRR, active users, or retention cohorts",
				Impact:         "Investors discount every other claim when traction is vague",
				BadExample:     "We have strong early traction and users love the product",
				GoodExample:    "MRR grew from $4k to $11k over the last quarter with 92% logo retention",
				Urgency:        "high",
			},
			{
				Name:           CategoryTeam,
				Keywords:       []string{"team", "founder", "hire", "experience", "solo", "technical co-founder"},
				DefaultProblem: "The team section does not explain why these founders win this market",
				DefaultFix:     "Tie each founder's background to the specific problem; name planned key hires",
				Impact:         "Early-stage checks are written on founder-market fit more than anything else",
				BadExample:     "Our team is passionate and hardworking with diverse backgrounds",
				GoodExample:    "CTO spent 6 years building payment infra at Adyen; CEO sold to this buyer persona for 4 years",
				Urgency:        "high",
			},
			{
				Name:           CategoryMarket,
				Keywords:       []string{"market", "tam", "competition", "competitor", "niche", "segment"},
				DefaultProblem: "Market sizing is top-down and the wedge segment is undefined",
				DefaultFix:     "Build a bottom-up TAM from target accounts times realistic ACV; name the beachhead",
				Impact:         "An unconvincing market story caps the perceived upside of the whole deal",
				BadExample:     "The market is worth $50B and growing fast",
				GoodExample:    "14,000 mid-market logistics firms x $9k ACV puts the wedge at $126M, reachable via 2 channels",
				Urgency:        "medium",
			},
			{
				Name:           CategoryProduct,
				Keywords:       []string{"product", "feature", "roadmap", "mvp", "prototype", "demo"},
				DefaultProblem: "Product description lists features without the core workflow it replaces",
				DefaultFix:     "Show the before/after workflow and the single metric the product moves",
				Impact:         "Feature lists read as undifferentiated; workflow change reads as a wedge",
				BadExample:     "Our platform has dashboards, alerts, integrations, and AI-powered analytics",
				GoodExample:    "We replace the weekly 4-hour spreadsheet reconciliation with a 5-minute review queue",
				Urgency:        "medium",
			},
			{
				Name:           CategoryFinancials,
				Keywords:       []string{"financ", "burn", "runway", "unit economics", "margin", "ask", "use of funds"},
				DefaultProblem: "The ask is not connected to milestones the round is supposed to buy",
				DefaultFix:     "Map the raise to 18-24 months of runway and 2-3 fundable milestones",
				Impact:         "An unanchored ask signals the founders have not modeled the business",
				BadExample:     "We are raising $1.5M to accelerate growth and expand the team",
				GoodExample:    "$1.5M buys 20 months: $40k MRR, SOC 2, and a repeatable outbound motion by month 15",
				Urgency:        "medium",
			},
			{
				Name:           CategoryNarrative,
				Keywords:       []string{"story", "clarity", "confus", "vague", "unclear", "positioning"},
				DefaultProblem: "The memo reads as a list of facts rather than an investment thesis",
				DefaultFix:     "Lead every section with the one-line claim, then the evidence for it",
				Impact:         "Investors skim; a muddled narrative never gets a second read",
				BadExample:     "We are building the future of work with cutting-edge technology",
				GoodExample:    "Mid-market finance teams overpay 3% on FX; we route around banks and split the savings",
				Urgency:        "low",
			},
		},
		BackfillOrder: []string{
			CategoryTraction, CategoryTeam, CategoryMarket,
			CategoryProduct, CategoryFinancials, CategoryNarrative,
		},
		RevenueSignals:   []string{"revenue", "arr", "mrr", "paying", "sales", "contract"},
		RetentionSignals: []string{"retention", "churn", "repeat", "renewal", "nps"},
		VelocitySignals:  []string{"waitlist", "pipeline", "demand", "signups", "sign-ups", "per week"},
		StageThresholds: map[string]int64{
			"pre-seed": 100,
			"seed":     500,
			"series a": 5000,
		},
		StageBenchmarks: map[string][]BenchmarkRow{
			"pre-seed": {
				{Metric: "Monthly growth", Target: "10%+ from a small base"},
				{Metric: "Active users", Target: "100+ with weekly usage"},
				{Metric: "Revenue", Target: "First paying customers or strong LOIs"},
			},
			"seed": {
				{Metric: "Monthly growth", Target: "15-20% month over month"},
				{Metric: "Active users", Target: "500+ with a retention curve that flattens"},
				{Metric: "Revenue", Target: "$10k-$50k MRR or equivalent usage"},
			},
			"series a": {
				{Metric: "Monthly growth", Target: "10%+ at meaningful scale"},
				{Metric: "Active users", Target: "5,000+ or clear enterprise logos"},
				{Metric: "Revenue", Target: "$1M+ ARR with repeatable acquisition"},
			},
		},
		DefaultStage: "seed",
		Stopwords: []string{
			"this", "that", "with", "from", "have", "your", "about", "there",
			"their", "would", "could", "should", "which", "these", "those",
			"company", "startup", "business",
		},
		SectionKeywords: []SectionKeywordEntry{
			{Section: "Traction", Keywords: []string{"traction", "growth", "revenue", "customer", "retention"}},
			{Section: "Team", Keywords: []string{"team", "founder", "hire", "background"}},
			{Section: "Market", Keywords: []string{"market", "tam", "segment", "industry"}},
			{Section: "Competition", Keywords: []string{"competitor", "competition", "moat", "alternative"}},
			{Section: "Product", Keywords: []string{"product", "feature", "technology", "roadmap"}},
			{Section: "Business Model", Keywords: []string{"pricing", "model", "unit economics", "margin"}},
			{Section: "Financials", Keywords: []string{"burn", "runway", "financ", "raise", "funding"}},
			{Section: "Problem", Keywords: []string{"problem", "pain", "need", "workflow"}},
		},
		Summaries: SummaryTemplates{
			Critical:     "Multiple fundamental gaps need attention before this memo is investor-ready.",
			TractionTeam: "Investors will push hardest on traction and team; tackle those two first.",
			Narrative:    "The underlying facts are workable but the story needs tightening before anything else.",
			Default:      "A focused week on the items below would materially change how investors read this memo.",
		},
	}
}

// factorByName returns the factor config with the given name, or nil
func (t *Taxonomy) factorByName(name string) *FactorConfig {
	for i := range t.Factors {
		if t.Factors[i].Name == name {
			return &t.Factors[i]
		}
	}
	return nil
}

// categoryByName returns the category config with the given name, or nil
func (t *Taxonomy) categoryByName(name string) *CategoryConfig {
	for i := range t.Categories {
		if t.Categories[i].Name == name {
			return &t.Categories[i]
		}
	}
	return nil
}

// stageThreshold returns the user-count threshold for a stage, falling
// back to the default stage for unrecognized values. The fallback is a
// defined default, not an error.
func (t *Taxonomy) stageThreshold(stage string) int64 {
	if v, ok := t.StageThresholds[normalizeStage(stage)]; ok {
		return v
	}
	return t.StageThresholds[t.DefaultStage]
}

// stageBenchmarks returns the benchmark table for a stage with the same
// silent seed fallback as stageThreshold.
func (t *Taxonomy) stageBenchmarks(stage string) []BenchmarkRow {
	if rows, ok := t.StageBenchmarks[normalizeStage(stage)]; ok {
		return rows
	}
	return t.StageBenchmarks[t.DefaultStage]
}
