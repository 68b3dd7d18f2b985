package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tidybooks/tidybooks_backend/internal/apperrors"
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	portsrepo "github.com/tidybooks/tidybooks_backend/internal/core/ports/repositories"
	"github.com/tidybooks/tidybooks_backend/internal/models"
	"github.com/tidybooks/tidybooks_backend/internal/utils/mapping"
)

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

// SaveCompany inserts the company and its creator's ADMIN membership in one
// transaction.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company, creatorUserID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelCompany := mapping.ToModelCompany(company)
	companyQuery := `
		INSERT INTO companies (company_id, name, base_currency, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, companyQuery,
		modelCompany.CompanyID,
		modelCompany.Name,
		modelCompany.BaseCurrency,
		modelCompany.IsActive,
		modelCompany.CreatedAt,
		modelCompany.CreatedBy,
		modelCompany.LastUpdatedAt,
		modelCompany.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert company "+modelCompany.CompanyID, err)
	}

	membershipQuery := `
		INSERT INTO company_users (user_id, company_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err = tx.Exec(ctx, membershipQuery, creatorUserID, modelCompany.CompanyID, string(domain.RoleAdmin), modelCompany.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert creator membership for company "+modelCompany.CompanyID, err)
	}

	return r.Commit(ctx, tx)
}

// FindCompanyByID retrieves a company by its ID.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
		SELECT company_id, name, base_currency, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM companies
		WHERE company_id = $1;
	`
	var m models.Company
	err := r.Pool.QueryRow(ctx, query, companyID).Scan(
		&m.CompanyID,
		&m.Name,
		&m.BaseCurrency,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find company by ID "+companyID, err)
	}
	company := mapping.ToDomainCompany(m)
	return &company, nil
}

// ListCompaniesByUser retrieves the companies a user belongs to.
func (r *PgxCompanyRepository) ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error) {
	query := `
		SELECT c.company_id, c.name, c.base_currency, c.is_active, c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
		FROM companies c
		JOIN company_users cu ON cu.company_id = c.company_id
		WHERE cu.user_id = $1
		ORDER BY c.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query companies for user "+userID, err)
	}
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		var m models.Company
		err := rows.Scan(
			&m.CompanyID,
			&m.Name,
			&m.BaseCurrency,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan company row", err)
		}
		companies = append(companies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating company rows", err)
	}

	return mapping.ToDomainCompanySlice(companies), nil
}

// FindUserCompany retrieves a user's membership row for a company.
func (r *PgxCompanyRepository) FindUserCompany(ctx context.Context, userID, companyID string) (*domain.UserCompany, error) {
	query := `
		SELECT user_id, company_id, role, joined_at
		FROM company_users
		WHERE user_id = $1 AND company_id = $2;
	`
	var m models.UserCompany
	err := r.Pool.QueryRow(ctx, query, userID, companyID).Scan(
		&m.UserID,
		&m.CompanyID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find membership for user "+userID, err)
	}
	membership := mapping.ToDomainUserCompany(m)
	return &membership, nil
}
