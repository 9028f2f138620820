package models

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a startup profile created by a founder
type Company struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Stage       string    `json:"stage" db:"stage"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	OwnerID     uuid.UUID `json:"owner_id" db:"owner_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// FundingStage represents recognized funding stage values
type FundingStage string

const (
	StagePreSeed FundingStage = "pre-seed"
	StageSeed    FundingStage = "seed"
	StageSeriesA FundingStage = "series a"
)

// QuestionnaireResponse represents a single free-text answer keyed by question.
// Unique per (company_id, question_key); updated in place on re-submission.
type QuestionnaireResponse struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CompanyID   uuid.UUID `json:"company_id" db:"company_id"`
	QuestionKey string    `json:"question_key" db:"question_key"`
	Answer      string    `json:"answer" db:"answer"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Well-known questionnaire keys consumed by the insight engine.
const (
	QuestionSolution        = "solution"
	QuestionProblem         = "problem"
	QuestionTraction        = "traction"
	QuestionMarket          = "market"
	QuestionTeam            = "team"
	QuestionBusinessModel   = "business_model"
	QuestionCompetition     = "competition"
	QuestionFundraisingPlan = "fundraising_plan"
)

// CreateCompanyRequest represents a company creation request
type CreateCompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Stage       string `json:"stage" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// UpdateCompanyRequest represents a company profile edit
type UpdateCompanyRequest struct {
	Name        string `json:"name"`
	Stage       string `json:"stage"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// UpsertAnswerRequest represents a questionnaire answer submission
type UpsertAnswerRequest struct {
	QuestionKey string `json:"question_key" binding:"required"`
	Answer      string `json:"answer"`
}
