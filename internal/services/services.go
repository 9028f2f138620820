package services

import (
	"context"
	"database/sql"
	"io"

	"github.com/google/uuid"

	"github.com/uglybaby/memo-engine/internal/aigateway"
	"github.com/uglybaby/memo-engine/internal/deck"
	"github.com/uglybaby/memo-engine/internal/insights"
	"github.com/uglybaby/memo-engine/internal/models"
	"github.com/uglybaby/memo-engine/internal/repository"
	"github.com/uglybaby/memo-engine/pkg/config"
)

// Services contains all application services
type Services struct {
	Company       CompanyService
	Questionnaire QuestionnaireService
	Memo          MemoService
	Insight       InsightService
	Auth          AuthService
}

// CompanyService defines the interface for company business logic
type CompanyService interface {
	GetByID(id string, requesterID uuid.UUID, requesterRole string) (*models.Company, error)
	GetAll(filters repository.CompanyFilters) ([]models.Company, error)
	GetByOwner(ownerID uuid.UUID) ([]models.Company, error)
	Create(req *models.CreateCompanyRequest, ownerID uuid.UUID) (*models.Company, error)
	Update(id string, req *models.UpdateCompanyRequest, requesterID uuid.UUID, requesterRole string) (*models.Company, error)
	Delete(id string, requesterID uuid.UUID, requesterRole string) error
}

// QuestionnaireService defines the interface for questionnaire business logic
type QuestionnaireService interface {
	GetAnswers(companyID string, requesterID uuid.UUID, requesterRole string) ([]models.QuestionnaireResponse, error)
	UpsertAnswer(companyID string, req *models.UpsertAnswerRequest, requesterID uuid.UUID, requesterRole string) (*models.QuestionnaireResponse, error)
	ImportDeck(companyID string, format string, r io.Reader, requesterID uuid.UUID, requesterRole string) (*deck.ImportResult, error)
}

// MemoService defines the interface for memo generation and retrieval
type MemoService interface {
	Generate(ctx context.Context, companyID string, requesterID uuid.UUID, requesterRole string) (*models.Memo, error)
	GetLatest(companyID string, requesterID uuid.UUID, requesterRole string) (*models.Memo, error)
}

// InsightService runs the heuristic engine over a company's answers and memo
type InsightService interface {
	Differentiation(companyID string, requesterID uuid.UUID, requesterRole string) (*insights.DifferentiationResult, error)
	Momentum(companyID string, requesterID uuid.UUID, requesterRole string) (*insights.MomentumResult, error)
	ActionPlan(companyID string, requesterID uuid.UUID, requesterRole string) (*insights.ActionPlanData, error)
	ContextMatch(companyID, text string, requesterID uuid.UUID, requesterRole string) (*insights.InsightMatch, error)
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(email, password string) (*models.LoginResponse, error)
	Register(req *models.RegisterRequest) (*models.User, error)
	ValidateToken(token string) (*models.User, error)
	RefreshToken(token string) (*models.LoginResponse, error)
}

// NewServices creates a new Services instance with all dependencies
func NewServices(db *sql.DB, cfg *config.Config) *Services {
	repos := repository.NewRepositories(db)
	engine := insights.NewEngine()
	gateway := aigateway.NewClient(cfg)

	return &Services{
		Company:       newCompanyService(repos),
		Questionnaire: newQuestionnaireService(repos, deck.NewImporter()),
		Memo:          newMemoService(repos, gateway),
		Insight:       newInsightService(repos, engine),
		Auth:          newAuthService(repos, cfg),
	}
}
