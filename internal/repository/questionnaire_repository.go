package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/uglybaby/memo-engine/internal/models"
)

// questionnaireRepository implements QuestionnaireRepository
type questionnaireRepository struct {
	db dbExecutor
}

// NewQuestionnaireRepository creates a new questionnaire repository
func NewQuestionnaireRepository(db dbExecutor) QuestionnaireRepository {
	return &questionnaireRepository{db: db}
}

// GetByCompany retrieves all answers for a company
func (r *questionnaireRepository) GetByCompany(companyID uuid.UUID) ([]models.QuestionnaireResponse, error) {
	query := `
		SELECT id, company_id, question_key, answer, created_at, updated_at
		FROM questionnaire_responses
		WHERE company_id = $1
		ORDER BY question_key
	`

	rows, err := r.db.Query(query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questionnaire responses: %w", err)
	}
	defer rows.Close()

	var responses []models.QuestionnaireResponse
	for rows.Next() {
		var resp models.QuestionnaireResponse
		err := rows.Scan(
			&resp.ID, &resp.CompanyID, &resp.QuestionKey, &resp.Answer,
			&resp.CreatedAt, &resp.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan questionnaire response: %w", err)
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// GetAnswer retrieves a single answer by question key
func (r *questionnaireRepository) GetAnswer(companyID uuid.UUID, questionKey string) (*models.QuestionnaireResponse, error) {
	query := `
		SELECT id, company_id, question_key, answer, created_at, updated_at
		FROM questionnaire_responses
		WHERE company_id = $1 AND question_key = $2
	`

	resp := &models.QuestionnaireResponse{}
	err := r.db.QueryRow(query, companyID, questionKey).Scan(
		&resp.ID, &resp.CompanyID, &resp.QuestionKey, &resp.Answer,
		&resp.CreatedAt, &resp.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("answer not found")
		}
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}

	return resp, nil
}

// Upsert creates or replaces an answer for a question key
func (r *questionnaireRepository) Upsert(resp *models.QuestionnaireResponse) error {
	if resp.ID == uuid.Nil {
		resp.ID = uuid.New()
	}

	now := time.Now()
	resp.CreatedAt = now
	resp.UpdatedAt = now

	query := `
		INSERT INTO questionnaire_responses (id, company_id, question_key, answer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (company_id, question_key)
		DO UPDATE SET answer = EXCLUDED.answer, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(query,
		resp.ID, resp.CompanyID, resp.QuestionKey, resp.Answer,
		resp.CreatedAt, resp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert answer: %w", err)
	}

	return nil
}

// DeleteByCompany removes all answers for a company
func (r *questionnaireRepository) DeleteByCompany(companyID uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM questionnaire_responses WHERE company_id = $1`, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete questionnaire responses: %w", err)
	}
	return nil
}
