package services

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/uglybaby/memo-engine/internal/deck"
	apperrors "github.com/uglybaby/memo-engine/internal/errors"
	"github.com/uglybaby/memo-engine/internal/models"
	"github.com/uglybaby/memo-engine/internal/repository"
)

// questionnaireServiceImpl implements QuestionnaireService
type questionnaireServiceImpl struct {
	repos    *repository.Repositories
	importer *deck.Importer
}

// newQuestionnaireService creates a new questionnaire service implementation
func newQuestionnaireService(repos *repository.Repositories, importer *deck.Importer) QuestionnaireService {
	return &questionnaireServiceImpl{
		repos:    repos,
		importer: importer,
	}
}

// GetAnswers returns all questionnaire answers for a company
func (s *questionnaireServiceImpl) GetAnswers(companyID string, requesterID uuid.UUID, requesterRole string) ([]models.QuestionnaireResponse, error) {
	company, err := loadOwnedCompany(s.repos, companyID, requesterID, requesterRole)
	if err != nil {
		return nil, err
	}

	answers, err := s.repos.Questionnaire.GetByCompany(company.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get answers: %w", err)
	}

	return answers, nil
}

// UpsertAnswer creates or replaces a single answer
func (s *questionnaireServiceImpl) UpsertAnswer(companyID string, req *models.UpsertAnswerRequest, requesterID uuid.UUID, requesterRole string) (*models.QuestionnaireResponse, error) {
	company, err := loadOwnedCompany(s.repos, companyID, requesterID, requesterRole)
	if err != nil {
		return nil, err
	}

	resp := &models.QuestionnaireResponse{
		CompanyID:   company.ID,
		QuestionKey: req.QuestionKey,
		Answer:      req.Answer,
	}

	if err := s.repos.Questionnaire.Upsert(resp); err != nil {
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}

	return resp, nil
}

// ImportDeck extracts answers from an uploaded deck export and upserts them
// in a single transaction.
func (s *questionnaireServiceImpl) ImportDeck(companyID string, format string, r io.Reader, requesterID uuid.UUID, requesterRole string) (*deck.ImportResult, error) {
	company, err := loadOwnedCompany(s.repos, companyID, requesterID, requesterRole)
	if err != nil {
		return nil, err
	}

	var result *deck.ImportResult
	switch format {
	case "html":
		result, err = s.importer.ImportHTML(r)
	case "csv":
		result, err = s.importer.ImportCSV(r)
	default:
		return nil, apperrors.ValidationError(fmt.Sprintf("unsupported deck format: %s", format), nil)
	}
	if err != nil {
		return nil, apperrors.ValidationError("failed to parse deck", err)
	}

	if len(result.Answers) == 0 {
		return result, nil
	}

	err = s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		for key, answer := range result.Answers {
			resp := &models.QuestionnaireResponse{
				CompanyID:   company.ID,
				QuestionKey: key,
				Answer:      answer,
			}
			if err := repos.Questionnaire.Upsert(resp); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store imported answers: %w", err)
	}

	return result, nil
}
