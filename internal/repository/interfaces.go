package repository

import (
	"github.com/google/uuid"

	"github.com/uglybaby/memo-engine/internal/models"
)

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	GetByID(id uuid.UUID) (*models.Company, error)
	GetByOwner(ownerID uuid.UUID) ([]models.Company, error)
	GetAll(filters CompanyFilters) ([]models.Company, error)
	Create(company *models.Company) error
	Update(company *models.Company) error
	Delete(id uuid.UUID) error
}

// QuestionnaireRepository defines the interface for questionnaire answers
type QuestionnaireRepository interface {
	GetByCompany(companyID uuid.UUID) ([]models.QuestionnaireResponse, error)
	GetAnswer(companyID uuid.UUID, questionKey string) (*models.QuestionnaireResponse, error)
	Upsert(response *models.QuestionnaireResponse) error
	DeleteByCompany(companyID uuid.UUID) error
}

// MemoRepository defines the interface for generated memos
type MemoRepository interface {
	GetByID(id uuid.UUID) (*models.Memo, error)
	GetLatestByCompany(companyID uuid.UUID) (*models.Memo, error)
	Create(memo *models.Memo) error
	Update(memo *models.Memo) error
	DeleteByCompany(companyID uuid.UUID) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id uuid.UUID) error
}

// TransactionManager defines the interface for database transaction management
type TransactionManager interface {
	WithTransaction(fn func(repos *Repositories) error) error
}

// Repositories groups all repository interfaces
type Repositories struct {
	Company       CompanyRepository
	Questionnaire QuestionnaireRepository
	Memo          MemoRepository
	User          UserRepository
	Tx            TransactionManager
}

// CompanyFilters defines filters for querying companies
type CompanyFilters struct {
	Stage    []string
	Category []string
	OwnerID  *uuid.UUID
	Limit    int
	Offset   int
}
