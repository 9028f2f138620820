package deck

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/uglybaby/memo-engine/internal/models"
)

// Slide is one extracted unit of deck content: a heading and its body text
type Slide struct {
	Heading string
	Body    string
}

// ImportResult maps extracted slide content onto questionnaire keys
type ImportResult struct {
	Answers  map[string]string
	Unmapped []Slide
}

// Importer extracts questionnaire answers from pitch-deck exports
type Importer struct {
	headingKeywords []headingRule
}

type headingRule struct {
	QuestionKey string
	Keywords    []string
}

// NewImporter creates an importer with the default heading rules
func NewImporter() *Importer {
	return &Importer{
		// Order matters: first matching rule wins
		headingKeywords: []headingRule{
			{models.QuestionProblem, []string{"problem", "pain", "challenge", "why now"}},
			{models.QuestionSolution, []string{"solution", "product", "what we do", "how it works", "platform"}},
			{models.QuestionTraction, []string{"traction", "growth", "metrics", "milestones", "progress"}},
			{models.QuestionMarket, []string{"market", "tam", "opportunity", "industry"}},
			{models.QuestionTeam, []string{"team", "founders", "who we are", "advisors"}},
			{models.QuestionBusinessModel, []string{"business model", "revenue model", "pricing", "monetization", "how we make money"}},
			{models.QuestionCompetition, []string{"competition", "competitors", "landscape", "alternatives", "moat"}},
			{models.QuestionFundraisingPlan, []string{"ask", "raise", "funding", "use of funds", "round"}},
		},
	}
}

// ImportHTML extracts slides from an HTML deck export and maps them to answers
func (imp *Importer) ImportHTML(r io.Reader) (*ImportResult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML deck: %w", err)
	}

	var slides []Slide

	// Deck exports mark slides with section/div containers holding a heading
	doc.Find("section, div.slide, article").Each(func(i int, s *goquery.Selection) {
		heading := strings.TrimSpace(s.Find("h1, h2, h3").First().Text())
		if heading == "" {
			return
		}

		var bodyParts []string
		s.Find("p, li").Each(func(j int, p *goquery.Selection) {
			text := strings.TrimSpace(p.Text())
			if text != "" {
				bodyParts = append(bodyParts, text)
			}
		})

		if len(bodyParts) == 0 {
			return
		}

		slides = append(slides, Slide{
			Heading: heading,
			Body:    strings.Join(bodyParts, " "),
		})
	})

	// Flat exports put headings and paragraphs as siblings at the top level
	if len(slides) == 0 {
		slides = imp.collectFlatSlides(doc)
	}

	return imp.mapSlides(slides), nil
}

// collectFlatSlides walks top-level headings and gathers text until the next heading
func (imp *Importer) collectFlatSlides(doc *goquery.Document) []Slide {
	var slides []Slide
	var current *Slide

	doc.Find("body").Children().Each(func(i int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}

		switch tag {
		case "h1", "h2", "h3":
			if current != nil && current.Body != "" {
				slides = append(slides, *current)
			}
			current = &Slide{Heading: text}
		default:
			if current != nil {
				if current.Body != "" {
					current.Body += " "
				}
				current.Body += text
			}
		}
	})

	if current != nil && current.Body != "" {
		slides = append(slides, *current)
	}

	return slides
}

// ImportCSV extracts rows of (heading, content) from a CSV deck export
func (imp *Importer) ImportCSV(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV deck: %w", err)
	}

	var slides []Slide
	for i, record := range records {
		if len(record) < 2 {
			continue
		}

		heading := strings.TrimSpace(record[0])
		body := strings.TrimSpace(strings.Join(record[1:], " "))
		if heading == "" || body == "" {
			continue
		}

		// Skip a header row if present
		if i == 0 && strings.EqualFold(heading, "section") {
			continue
		}

		slides = append(slides, Slide{Heading: heading, Body: body})
	}

	return imp.mapSlides(slides), nil
}

// mapSlides assigns each slide to a questionnaire key by heading keywords.
// Multiple slides mapped to the same key are concatenated.
func (imp *Importer) mapSlides(slides []Slide) *ImportResult {
	result := &ImportResult{
		Answers: make(map[string]string),
	}

	for _, slide := range slides {
		key := imp.matchHeading(slide.Heading)
		if key == "" {
			result.Unmapped = append(result.Unmapped, slide)
			continue
		}

		if existing, ok := result.Answers[key]; ok {
			result.Answers[key] = existing + " " + slide.Body
		} else {
			result.Answers[key] = slide.Body
		}
	}

	return result
}

func (imp *Importer) matchHeading(heading string) string {
	lower := strings.ToLower(heading)
	for _, rule := range imp.headingKeywords {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.QuestionKey
			}
		}
	}
	return ""
}
