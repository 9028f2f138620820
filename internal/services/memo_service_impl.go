package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/uglybaby/memo-engine/internal/aigateway"
	apperrors "github.com/uglybaby/memo-engine/internal/errors"
	"github.com/uglybaby/memo-engine/internal/models"
	"github.com/uglybaby/memo-engine/internal/repository"
)

// memoServiceImpl implements MemoService
type memoServiceImpl struct {
	repos   *repository.Repositories
	gateway *aigateway.Client
}

// newMemoService creates a new memo service implementation
func newMemoService(repos *repository.Repositories, gateway *aigateway.Client) MemoService {
	return &memoServiceImpl{
		repos:   repos,
		gateway: gateway,
	}
}

const memoSystemPrompt = `You are a venture analyst writing an internal investment memo.
Respond with a single JSON object, no prose outside it, shaped as:
{
  "sections": [{"title": "...", "narrative": "...",
    "vcReflection": {"analysis": "...", "questions": ["..."]}}],
  "sectionTools": {"<title>": {"sectionScore": 0, "benchmark": "...",
    "reasoning": "...", "vcInvestmentLogic": "...", "assumptions": ["..."]}},
  "quickTake": {"strengths": ["..."], "concerns": ["..."], "readinessLevel": "..."}
}
Every section title in sections must have a matching sectionTools entry.`

// memoPayload is the JSON shape the model is asked to return
type memoPayload struct {
	Sections     []models.MemoSection `json:"sections"`
	SectionTools models.SectionTools  `json:"sectionTools"`
	QuickTake    *models.VCQuickTake  `json:"quickTake"`
}

// Generate builds a prompt from the company's questionnaire answers, calls
// the gateway, and stores the parsed memo.
func (s *memoServiceImpl) Generate(ctx context.Context, companyID string, requesterID uuid.UUID, requesterRole string) (*models.Memo, error) {
	company, err := loadOwnedCompany(s.repos, companyID, requesterID, requesterRole)
	if err != nil {
		return nil, err
	}

	answers, err := s.repos.Questionnaire.GetByCompany(company.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}
	if len(answers) == 0 {
		return nil, apperrors.ValidationError("no questionnaire answers to generate from", nil)
	}

	userPrompt := buildMemoPrompt(company, answers)

	var payload memoPayload
	if err := s.gateway.CompleteJSON(ctx, memoSystemPrompt, userPrompt, &payload); err != nil {
		return nil, apperrors.GatewayError("memo generation failed", err)
	}
	if len(payload.Sections) == 0 {
		return nil, apperrors.GatewayError("model returned no sections", nil)
	}

	memo := &models.Memo{
		CompanyID:    company.ID,
		Content:      models.StructuredContent{Sections: payload.Sections},
		SectionTools: payload.SectionTools,
		QuickTake:    payload.QuickTake,
		Status:       string(models.MemoGenerated),
	}
	if memo.SectionTools == nil {
		memo.SectionTools = models.SectionTools{}
	}

	if err := s.repos.Memo.Create(memo); err != nil {
		return nil, fmt.Errorf("failed to store memo: %w", err)
	}

	return memo, nil
}

// GetLatest returns the most recent memo for a company
func (s *memoServiceImpl) GetLatest(companyID string, requesterID uuid.UUID, requesterRole string) (*models.Memo, error) {
	company, err := loadOwnedCompany(s.repos, companyID, requesterID, requesterRole)
	if err != nil {
		return nil, err
	}

	memo, err := s.repos.Memo.GetLatestByCompany(company.ID)
	if err != nil {
		return nil, apperrors.NotFound("no memo generated yet", err)
	}

	return memo, nil
}

// buildMemoPrompt flattens company profile and answers into the user prompt
func buildMemoPrompt(company *models.Company, answers []models.QuestionnaireResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Company: %s\n", company.Name)
	fmt.Fprintf(&b, "Stage: %s\n", company.Stage)
	if company.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", company.Category)
	}
	if company.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", company.Description)
	}

	b.WriteString("\nFounder questionnaire answers:\n")
	for _, answer := range answers {
		if strings.TrimSpace(answer.Answer) == "" {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", answer.QuestionKey, answer.Answer)
	}

	return b.String()
}
