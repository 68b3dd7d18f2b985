package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tidybooks/tidybooks_backend/internal/apperrors"
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	portsrepo "github.com/tidybooks/tidybooks_backend/internal/core/ports/repositories"
	"github.com/tidybooks/tidybooks_backend/internal/models"
	"github.com/tidybooks/tidybooks_backend/internal/utils/mapping"
)

// SearchCapabilities declares what the underlying store supports for name
// search, decided once at startup rather than probed per query.
type SearchCapabilities struct {
	// TrigramIndex is true when pg_trgm is installed and a trigram index
	// exists on contacts.name, enabling similarity search.
	TrigramIndex bool
}

type PgxContactRepository struct {
	BaseRepository
	search SearchCapabilities
}

// newPgxContactRepository creates a new repository for contact data.
func newPgxContactRepository(pool *pgxpool.Pool, search SearchCapabilities) portsrepo.ContactRepositoryFacade {
	return &PgxContactRepository{
		BaseRepository: BaseRepository{Pool: pool},
		search:         search,
	}
}

var _ portsrepo.ContactRepositoryFacade = (*PgxContactRepository)(nil)

const contactColumns = `contact_id, company_id, name, contact_type, email, phone, credit_terms_days, credit_limit, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanContact(row pgx.Row) (models.Contact, error) {
	var m models.Contact
	err := row.Scan(
		&m.ContactID,
		&m.CompanyID,
		&m.Name,
		&m.ContactType,
		&m.Email,
		&m.Phone,
		&m.CreditTermsDays,
		&m.CreditLimit,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveContact inserts a new contact.
func (r *PgxContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	m := mapping.ToModelContact(contact)
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ContactID,
		m.CompanyID,
		m.Name,
		m.ContactType,
		m.Email,
		m.Phone,
		m.CreditTermsDays,
		m.CreditLimit,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert contact "+m.ContactID, err)
	}
	return nil
}

// FindContactByID retrieves a contact by its ID.
func (r *PgxContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE contact_id = $1;`
	m, err := scanContact(r.Pool.QueryRow(ctx, query, contactID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find contact by ID "+contactID, err)
	}
	contact := mapping.ToDomainContact(m)
	return &contact, nil
}

// ListContacts retrieves contacts of a company with optional type and name
// filters, ordered by name.
func (r *PgxContactRepository) ListContacts(ctx context.Context, companyID string, filter portsrepo.ListContactsFilter) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE company_id = $1`
	args := []interface{}{companyID}
	argPos := 2

	if filter.ContactType != nil {
		query += ` AND (contact_type = $` + strconv.Itoa(argPos) + ` OR contact_type = 'BOTH')`
		args = append(args, string(*filter.ContactType))
		argPos++
	}
	if filter.Search != "" {
		if r.search.TrigramIndex {
			query += ` AND name % $` + strconv.Itoa(argPos)
		} else {
			query += ` AND name ILIKE '%' || $` + strconv.Itoa(argPos) + ` || '%'`
		}
		args = append(args, filter.Search)
		argPos++
	}

	query += ` ORDER BY name, contact_id LIMIT $` + strconv.Itoa(argPos) + ` OFFSET $` + strconv.Itoa(argPos+1) + `;`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query contacts for company "+companyID, err)
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan contact row", err)
		}
		contacts = append(contacts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating contact rows", err)
	}
	return mapping.ToDomainContactSlice(contacts), nil
}

// UpdateContact persists changes to an existing contact.
func (r *PgxContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	m := mapping.ToModelContact(contact)
	query := `
		UPDATE contacts
		SET name = $2, contact_type = $3, email = $4, phone = $5, credit_terms_days = $6,
		    credit_limit = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE contact_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ContactID,
		m.Name,
		m.ContactType,
		m.Email,
		m.Phone,
		m.CreditTermsDays,
		m.CreditLimit,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update contact "+m.ContactID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
