package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/uglybaby/memo-engine/internal/models"
)

// companyRepository implements CompanyRepository
type companyRepository struct {
	db dbExecutor
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db dbExecutor) CompanyRepository {
	return &companyRepository{db: db}
}

const companyColumns = `id, name, stage, category, description, owner_id, created_at, updated_at`

func scanCompany(row interface{ Scan(...interface{}) error }, company *models.Company) error {
	return row.Scan(
		&company.ID, &company.Name, &company.Stage, &company.Category,
		&company.Description, &company.OwnerID, &company.CreatedAt, &company.UpdatedAt,
	)
}

// GetByID retrieves a company by ID
func (r *companyRepository) GetByID(id uuid.UUID) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	company := &models.Company{}
	err := scanCompany(r.db.QueryRow(query, id), company)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("company not found")
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return company, nil
}

// GetByOwner retrieves all companies owned by a user
func (r *companyRepository) GetByOwner(ownerID uuid.UUID) ([]models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE owner_id = $1 ORDER BY updated_at DESC`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	return collectCompanies(rows)
}

// GetAll retrieves companies with filters
func (r *companyRepository) GetAll(filters CompanyFilters) ([]models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies`

	var whereClauses []string
	var args []interface{}
	argIndex := 1

	if len(filters.Stage) > 0 {
		placeholders := make([]string, len(filters.Stage))
		for i, stage := range filters.Stage {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, stage)
			argIndex++
		}
		whereClauses = append(whereClauses, fmt.Sprintf("stage IN (%s)", strings.Join(placeholders, ",")))
	}

	if len(filters.Category) > 0 {
		placeholders := make([]string, len(filters.Category))
		for i, category := range filters.Category {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, category)
			argIndex++
		}
		whereClauses = append(whereClauses, fmt.Sprintf("category IN (%s)", strings.Join(placeholders, ",")))
	}

	if filters.OwnerID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("owner_id = $%d", argIndex))
		args = append(args, *filters.OwnerID)
		argIndex++
	}

	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	query += " ORDER BY updated_at DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filters.Limit)
		argIndex++
	}

	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	return collectCompanies(rows)
}

// Create creates a new company
func (r *companyRepository) Create(company *models.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}

	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now

	query := `
		INSERT INTO companies (id, name, stage, category, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(query,
		company.ID, company.Name, company.Stage, company.Category,
		company.Description, company.OwnerID, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

// Update updates an existing company
func (r *companyRepository) Update(company *models.Company) error {
	company.UpdatedAt = time.Now()

	query := `
		UPDATE companies SET
			name = $2, stage = $3, category = $4, description = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		company.ID, company.Name, company.Stage, company.Category,
		company.Description, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("company not found")
	}

	return nil
}

// Delete deletes a company
func (r *companyRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("company not found")
	}

	return nil
}

func collectCompanies(rows *sql.Rows) ([]models.Company, error) {
	var companies []models.Company
	for rows.Next() {
		var company models.Company
		if err := scanCompany(rows, &company); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, company)
	}
	return companies, nil
}
