package deck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uglybaby/memo-engine/internal/models"
)

func TestImportHTMLSectionedDeck(t *testing.T) {
	html := `
	<html><body>
		<section>
			<h2>The Problem</h2>
			<p>Compliance audits take weeks of manual work.</p>
			<p>Teams drown in spreadsheets.</p>
		</section>
		<section>
			<h2>Our Solution</h2>
			<p>An automated audit platform that finishes in minutes.</p>
		</section>
		<section>
			<h2>Traction</h2>
			<ul><li>Grew 25% month over month</li><li>2,500 customers</li></ul>
		</section>
		<section>
			<h2>Fancy Stock Photo</h2>
			<p>A picture of a mountain.</p>
		</section>
	</body></html>`

	importer := NewImporter()
	result, err := importer.ImportHTML(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, "Compliance audits take weeks of manual work. Teams drown in spreadsheets.",
		result.Answers[models.QuestionProblem])
	assert.Equal(t, "An automated audit platform that finishes in minutes.",
		result.Answers[models.QuestionSolution])
	assert.Contains(t, result.Answers[models.QuestionTraction], "25% month over month")

	require.Len(t, result.Unmapped, 1)
	assert.Equal(t, "Fancy Stock Photo", result.Unmapped[0].Heading)
}

func TestImportHTMLFlatDeck(t *testing.T) {
	html := `
	<html><body>
		<h1>Market Opportunity</h1>
		<p>The TAM is $5B and growing.</p>
		<h1>Team</h1>
		<p>Two ex-Stripe founders.</p>
	</body></html>`

	importer := NewImporter()
	result, err := importer.ImportHTML(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, "The TAM is $5B and growing.", result.Answers[models.QuestionMarket])
	assert.Equal(t, "Two ex-Stripe founders.", result.Answers[models.QuestionTeam])
}

func TestImportHTMLMergesDuplicateHeadings(t *testing.T) {
	html := `
	<html><body>
		<section><h2>Traction</h2><p>First milestone.</p></section>
		<section><h2>More Traction</h2><p>Second milestone.</p></section>
	</body></html>`

	importer := NewImporter()
	result, err := importer.ImportHTML(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, "First milestone. Second milestone.", result.Answers[models.QuestionTraction])
}

func TestImportCSV(t *testing.T) {
	csvData := `section,content
Problem,Manual audits are slow and error prone
Solution,Automated audit platform
Business Model,SaaS subscription at $500 per month
Competition,Legacy consultancies and spreadsheets`

	importer := NewImporter()
	result, err := importer.ImportCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, "Manual audits are slow and error prone", result.Answers[models.QuestionProblem])
	assert.Equal(t, "Automated audit platform", result.Answers[models.QuestionSolution])
	assert.Equal(t, "SaaS subscription at $500 per month", result.Answers[models.QuestionBusinessModel])
	assert.Equal(t, "Legacy consultancies and spreadsheets", result.Answers[models.QuestionCompetition])
	assert.Empty(t, result.Unmapped)
}

func TestImportCSVSkipsShortRows(t *testing.T) {
	csvData := `Traction,"Grew 3x this year, 1.5k users"
JustOneColumn
,empty heading`

	importer := NewImporter()
	result, err := importer.ImportCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Len(t, result.Answers, 1)
	assert.Contains(t, result.Answers[models.QuestionTraction], "Grew 3x this year")
}
