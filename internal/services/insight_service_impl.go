package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/uglybaby/memo-engine/internal/insights"
	"github.com/uglybaby/memo-engine/internal/models"
	"github.com/uglybaby/memo-engine/internal/repository"
)

// insightServiceImpl implements InsightService. The engine output is computed
// on demand from stored answers and memos and never persisted.
type insightServiceImpl struct {
	repos  *repository.Repositories
	engine *insights.Engine
}

// newInsightService creates a new insight service implementation
func newInsightService(repos *repository.Repositories, engine *insights.Engine) InsightService {
	return &insightServiceImpl{
		repos:  repos,
		engine: engine,
	}
}

// answerMap loads a company's answers keyed by question
func (s *insightServiceImpl) answerMap(companyID uuid.UUID) (map[string]string, error) {
	answers, err := s.repos.Questionnaire.GetByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}

	byKey := make(map[string]string, len(answers))
	for _, answer := range answers {
		byKey[answer.QuestionKey] = answer.Answer
	}
	return byKey, nil
}

// Differentiation scores how defensible the company's positioning reads
func (s *insightServiceImpl) Differentiation(companyID string, requesterID uuid.UUID, requesterRole string) (*insights.DifferentiationResult, error) {
	company, err := loadOwnedCompany(s.repos, companyID, requesterID, requesterRole)
	if err != nil {
		return nil, err
	}

	answers, err := s.answerMap(company.ID)
	if err != nil {
		return nil, err
	}

	return s.engine.ComputeDifferentiation(
		answers[models.QuestionSolution],
		answers[models.QuestionProblem],
		company.Name,
	), nil
}

// Momentum scores traction signals against stage benchmarks
func (s *insightServiceImpl) Momentum(companyID string, requesterID uuid.UUID, requesterRole string) (*insights.MomentumResult, error) {
	company, err := loadOwnedCompany(s.repos, companyID, requesterID, requesterRole)
	if err != nil {
		return nil, err
	}

	answers, err := s.answerMap(company.ID)
	if err != nil {
		return nil, err
	}

	return s.engine.ComputeMomentum(answers[models.QuestionTraction], company.Stage), nil
}

// ActionPlan derives prioritized fixes from the latest memo
func (s *insightServiceImpl) ActionPlan(companyID string, requesterID uuid.UUID, requesterRole string) (*insights.ActionPlanData, error) {
	company, err := loadOwnedCompany(s.repos, companyID, requesterID, requesterRole)
	if err != nil {
		return nil, err
	}

	memo, err := s.repos.Memo.GetLatestByCompany(company.ID)
	if err != nil {
		// No memo yet: the extractor still produces a plan from nothing
		return s.engine.ExtractActionPlan(nil, nil), nil
	}

	return s.engine.ExtractActionPlan(&memo.Content, memo.QuickTake), nil
}

// ContextMatch finds the memo evidence most relevant to a free-text insight
func (s *insightServiceImpl) ContextMatch(companyID, text string, requesterID uuid.UUID, requesterRole string) (*insights.InsightMatch, error) {
	company, err := loadOwnedCompany(s.repos, companyID, requesterID, requesterRole)
	if err != nil {
		return nil, err
	}

	memo, err := s.repos.Memo.GetLatestByCompany(company.ID)
	if err != nil {
		return nil, nil
	}

	ctx := s.engine.ExtractCompanyInsightContext(memo.SectionTools, company.Name, company.Stage, company.Category)
	return s.engine.GetCompanyContextForInsight(text, ctx), nil
}
