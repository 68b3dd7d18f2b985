package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tidybooks/tidybooks_backend/internal/apperrors"
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	portsrepo "github.com/tidybooks/tidybooks_backend/internal/core/ports/repositories"
	"github.com/tidybooks/tidybooks_backend/internal/models"
	"github.com/tidybooks/tidybooks_backend/internal/utils/mapping"
	"github.com/tidybooks/tidybooks_backend/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, company_id, entry_no, entry_date, description, reference, created_at, created_by, last_updated_at, last_updated_by`
const lineColumns = `line_id, entry_id, account_id, description, debit, credit, created_at, created_by, last_updated_at, last_updated_by`

// SaveEntry reserves the next entry number and persists the entry with all
// its lines in a single transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	seq, err := nextSequence(ctx, tx, entry.CompanyID, sequenceScopeJournal)
	if err != nil {
		return nil, err
	}
	entry.EntryNo = fmt.Sprintf("JE-%05d", seq)

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.CompanyID,
		m.EntryNo,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range lines {
		ml := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			ml.LineID,
			ml.EntryID,
			ml.AccountID,
			ml.Description,
			ml.Debit,
			ml.Credit,
			ml.CreatedAt,
			ml.CreatedBy,
			ml.LastUpdatedAt,
			ml.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to execute line batch for entry "+m.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindEntryByID retrieves a journal entry header by ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	var m models.JournalEntry
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.EntryNo,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

func scanJournalLines(rows pgx.Rows) ([]models.JournalLine, error) {
	defer rows.Close()
	lines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.Description,
			&l.Debit,
			&l.Credit,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// FindLinesByEntryID retrieves all lines of a single entry.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY created_at, line_id;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	lines, err := scanJournalLines(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan line rows for entry "+entryID, err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries grouped by entry ID.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	result := make(map[string][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = ANY($1) ORDER BY created_at, line_id;`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entries", err)
	}
	lines, err := scanJournalLines(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan line rows", err)
	}
	for _, l := range lines {
		result[l.EntryID] = append(result[l.EntryID], mapping.ToDomainJournalLine(l))
	}
	return result, nil
}

// ListEntries retrieves a page of entries ordered by date descending, using
// a keyset token on (entry_date, created_at).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, companyID string, from, to *time.Time, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE company_id = $1`
	args := []interface{}{companyID}
	argPos := 2

	if from != nil {
		query += ` AND entry_date >= $` + strconv.Itoa(argPos)
		args = append(args, *from)
		argPos++
	}
	if to != nil {
		query += ` AND entry_date <= $` + strconv.Itoa(argPos)
		args = append(args, *to)
		argPos++
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` AND (entry_date, created_at) < ($` + strconv.Itoa(argPos) + `, $` + strconv.Itoa(argPos+1) + `)`
		args = append(args, lastDate, lastCreatedAt)
		argPos += 2
	}
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $` + strconv.Itoa(argPos) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries for company "+companyID, err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var m models.JournalEntry
		err := rows.Scan(
			&m.EntryID,
			&m.CompanyID,
			&m.EntryNo,
			&m.EntryDate,
			&m.Description,
			&m.Reference,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var token *string
	if len(entries) == fetchLimit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &t
	}

	domainEntries := make([]domain.JournalEntry, len(entries))
	for i, m := range entries {
		domainEntries[i] = mapping.ToDomainJournalEntry(m)
	}
	return domainEntries, token, nil
}

// DeleteEntry removes the entry and its lines in one transaction.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines of entry "+entryID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
