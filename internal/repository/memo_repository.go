package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/uglybaby/memo-engine/internal/models"
)

// memoRepository implements MemoRepository
type memoRepository struct {
	db dbExecutor
}

// NewMemoRepository creates a new memo repository
func NewMemoRepository(db dbExecutor) MemoRepository {
	return &memoRepository{db: db}
}

const memoColumns = `id, company_id, content, section_tools, quick_take, status, created_at, updated_at`

// GetByID retrieves a memo by ID
func (r *memoRepository) GetByID(id uuid.UUID) (*models.Memo, error) {
	query := `SELECT ` + memoColumns + ` FROM memos WHERE id = $1`

	memo := &models.Memo{}
	var quickTake models.QuickTakeColumn
	err := r.db.QueryRow(query, id).Scan(
		&memo.ID, &memo.CompanyID, &memo.Content, &memo.SectionTools,
		&quickTake, &memo.Status, &memo.CreatedAt, &memo.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("memo not found")
		}
		return nil, fmt.Errorf("failed to get memo: %w", err)
	}
	memo.QuickTake = quickTake.QuickTake

	return memo, nil
}

// GetLatestByCompany retrieves the most recent memo for a company
func (r *memoRepository) GetLatestByCompany(companyID uuid.UUID) (*models.Memo, error) {
	query := `
		SELECT ` + memoColumns + `
		FROM memos
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	memo := &models.Memo{}
	var quickTake models.QuickTakeColumn
	err := r.db.QueryRow(query, companyID).Scan(
		&memo.ID, &memo.CompanyID, &memo.Content, &memo.SectionTools,
		&quickTake, &memo.Status, &memo.CreatedAt, &memo.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("memo not found")
		}
		return nil, fmt.Errorf("failed to get latest memo: %w", err)
	}
	memo.QuickTake = quickTake.QuickTake

	return memo, nil
}

// Create inserts a new memo
func (r *memoRepository) Create(memo *models.Memo) error {
	if memo.ID == uuid.Nil {
		memo.ID = uuid.New()
	}

	now := time.Now()
	memo.CreatedAt = now
	memo.UpdatedAt = now

	query := `
		INSERT INTO memos (id, company_id, content, section_tools, quick_take, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(query,
		memo.ID, memo.CompanyID, memo.Content, memo.SectionTools,
		models.QuickTakeColumn{QuickTake: memo.QuickTake}, memo.Status,
		memo.CreatedAt, memo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create memo: %w", err)
	}

	return nil
}

// Update updates an existing memo
func (r *memoRepository) Update(memo *models.Memo) error {
	memo.UpdatedAt = time.Now()

	query := `
		UPDATE memos SET
			content = $2, section_tools = $3, quick_take = $4, status = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		memo.ID, memo.Content, memo.SectionTools,
		models.QuickTakeColumn{QuickTake: memo.QuickTake}, memo.Status, memo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update memo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("memo not found")
	}

	return nil
}

// DeleteByCompany removes all memos for a company
func (r *memoRepository) DeleteByCompany(companyID uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM memos WHERE company_id = $1`, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete memos: %w", err)
	}
	return nil
}
