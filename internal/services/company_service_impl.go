package services

import (
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/uglybaby/memo-engine/internal/errors"
	"github.com/uglybaby/memo-engine/internal/models"
	"github.com/uglybaby/memo-engine/internal/repository"
)

// companyServiceImpl implements CompanyService
type companyServiceImpl struct {
	repos *repository.Repositories
}

// newCompanyService creates a new company service implementation
func newCompanyService(repos *repository.Repositories) CompanyService {
	return &companyServiceImpl{
		repos: repos,
	}
}

// loadOwnedCompany loads a company and enforces that the requester owns it
// or carries the admin/investor role.
func loadOwnedCompany(repos *repository.Repositories, id string, requesterID uuid.UUID, requesterRole string) (*models.Company, error) {
	companyID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ValidationError("invalid company ID", err)
	}

	company, err := repos.Company.GetByID(companyID)
	if err != nil {
		return nil, apperrors.NotFound("company not found", err)
	}

	if company.OwnerID != requesterID &&
		requesterRole != string(models.RoleAdmin) &&
		requesterRole != string(models.RoleInvestor) {
		return nil, apperrors.Forbidden("not authorized for this company", nil)
	}

	return company, nil
}

// GetByID retrieves a company, enforcing ownership
func (s *companyServiceImpl) GetByID(id string, requesterID uuid.UUID, requesterRole string) (*models.Company, error) {
	return loadOwnedCompany(s.repos, id, requesterID, requesterRole)
}

// GetAll retrieves companies with filters
func (s *companyServiceImpl) GetAll(filters repository.CompanyFilters) ([]models.Company, error) {
	companies, err := s.repos.Company.GetAll(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get companies: %w", err)
	}
	return companies, nil
}

// GetByOwner retrieves all companies owned by a user
func (s *companyServiceImpl) GetByOwner(ownerID uuid.UUID) ([]models.Company, error) {
	companies, err := s.repos.Company.GetByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get companies: %w", err)
	}
	return companies, nil
}

// Create creates a new company owned by the requester
func (s *companyServiceImpl) Create(req *models.CreateCompanyRequest, ownerID uuid.UUID) (*models.Company, error) {
	company := &models.Company{
		Name:        req.Name,
		Stage:       req.Stage,
		Category:    req.Category,
		Description: req.Description,
		OwnerID:     ownerID,
	}

	if err := s.repos.Company.Create(company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	return company, nil
}

// Update updates an existing company, enforcing ownership
func (s *companyServiceImpl) Update(id string, req *models.UpdateCompanyRequest, requesterID uuid.UUID, requesterRole string) (*models.Company, error) {
	company, err := loadOwnedCompany(s.repos, id, requesterID, requesterRole)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		company.Name = req.Name
	}
	if req.Stage != "" {
		company.Stage = req.Stage
	}
	if req.Category != "" {
		company.Category = req.Category
	}
	if req.Description != "" {
		company.Description = req.Description
	}

	if err := s.repos.Company.Update(company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	return company, nil
}

// Delete deletes a company along with its answers and memos
func (s *companyServiceImpl) Delete(id string, requesterID uuid.UUID, requesterRole string) error {
	company, err := loadOwnedCompany(s.repos, id, requesterID, requesterRole)
	if err != nil {
		return err
	}

	return s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		if err := repos.Questionnaire.DeleteByCompany(company.ID); err != nil {
			return err
		}
		if err := repos.Memo.DeleteByCompany(company.ID); err != nil {
			return err
		}
		return repos.Company.Delete(company.ID)
	})
}
