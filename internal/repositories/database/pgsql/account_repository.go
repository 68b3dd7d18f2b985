package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tidybooks/tidybooks_backend/internal/apperrors"
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	portsrepo "github.com/tidybooks/tidybooks_backend/internal/core/ports/repositories"
	"github.com/tidybooks/tidybooks_backend/internal/models"
	"github.com/tidybooks/tidybooks_backend/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, company_id, code, name, account_type, parent_account_id, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

// scanAccount scans one account row into a model, handling the nullable
// parent reference.
func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var parentID sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.CompanyID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&parentID,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Account{}, err
	}
	if parentID.Valid {
		m.ParentAccountID = parentID.String
	}
	return m, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.CompanyID,
		m.Code,
		m.Name,
		m.AccountType,
		m.ParentAccountID,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on (company_id, code)
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert account "+m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves a specific account by ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs
// are absent from the result; the caller decides whether that is an error.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		result[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return result, nil
}

// FindAccountByCode retrieves an account by its company-scoped code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND code = $2;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by code "+code, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ListAccounts retrieves all accounts of a company ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for company "+companyID, err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// HasJournalLines reports whether any journal line references the account.
func (r *PgxAccountRepository) HasJournalLines(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM journal_lines WHERE account_id = $1);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check journal lines for account "+accountID, err)
	}
	return exists, nil
}

// UpdateAccount persists changes to an existing account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2, description = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.Description,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes the account and promotes its children to root level
// in the same transaction.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string, updatedByUserID string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	reparentQuery := `
		UPDATE accounts
		SET parent_account_id = NULL, last_updated_at = $2, last_updated_by = $3
		WHERE parent_account_id = $1;
	`
	if _, err := tx.Exec(ctx, reparentQuery, accountID, updatedAt, updatedByUserID); err != nil {
		return apperrors.NewAppError(500, "failed to reparent children of account "+accountID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation from journal_lines
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to delete account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
