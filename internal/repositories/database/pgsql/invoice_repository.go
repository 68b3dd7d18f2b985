package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks_backend/internal/apperrors"
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	portsrepo "github.com/tidybooks/tidybooks_backend/internal/core/ports/repositories"
	"github.com/tidybooks/tidybooks_backend/internal/models"
	"github.com/tidybooks/tidybooks_backend/internal/utils/mapping"
	"github.com/tidybooks/tidybooks_backend/internal/utils/pagination"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, company_id, contact_id, invoice_no, invoice_date, due_date, status, subtotal, tax_total, total, template_id, notes, custom_field_values, created_at, created_by, last_updated_at, last_updated_by`
const invoiceLineColumns = `line_id, invoice_id, item_name, item_code, description, quantity, unit_price, discount, tax_rate, amount, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.CompanyID,
		&m.ContactID,
		&m.InvoiceNo,
		&m.InvoiceDate,
		&m.DueDate,
		&m.Status,
		&m.Subtotal,
		&m.TaxTotal,
		&m.Total,
		&m.TemplateID,
		&m.Notes,
		&m.CustomFieldValues,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveInvoice reserves the next per-company-per-year invoice number and
// persists the invoice with its lines in a single transaction. A unique
// index on (company_id, invoice_no) backstops the counter; on the rare
// conflict the whole transaction is retried once.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) (*domain.Invoice, error) {
	saved, err := r.saveInvoiceOnce(ctx, invoice, lines)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return r.saveInvoiceOnce(ctx, invoice, lines)
		}
		return nil, err
	}
	return saved, nil
}

func (r *PgxInvoiceRepository) saveInvoiceOnce(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	year := invoice.InvoiceDate.Year()
	seq, err := nextSequence(ctx, tx, invoice.CompanyID, invoiceSequenceScope(year))
	if err != nil {
		return nil, err
	}
	invoice.InvoiceNo = fmt.Sprintf("INV-%d-%03d", year, seq)

	m := mapping.ToModelInvoice(invoice)
	invoiceQuery := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, invoiceQuery,
		m.InvoiceID,
		m.CompanyID,
		m.ContactID,
		m.InvoiceNo,
		m.InvoiceDate,
		m.DueDate,
		m.Status,
		m.Subtotal,
		m.TaxTotal,
		m.Total,
		m.TemplateID,
		m.Notes,
		m.CustomFieldValues,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if err := insertInvoiceLines(ctx, tx, lines); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func insertInvoiceLines(ctx context.Context, tx pgx.Tx, lines []domain.InvoiceLine) error {
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO invoice_lines (` + invoiceLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, line := range lines {
		ml := mapping.ToModelInvoiceLine(line)
		batch.Queue(lineQuery,
			ml.LineID,
			ml.InvoiceID,
			ml.ItemName,
			ml.ItemCode,
			ml.Description,
			ml.Quantity,
			ml.UnitPrice,
			ml.Discount,
			ml.TaxRate,
			ml.Amount,
			ml.CreatedAt,
			ml.CreatedBy,
			ml.LastUpdatedAt,
			ml.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute invoice line batch", err)
	}
	return nil
}

// FindInvoiceByID retrieves an invoice header by ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}
	invoice := mapping.ToDomainInvoice(m)
	return &invoice, nil
}

// FindLinesByInvoiceID retrieves all lines of a single invoice.
func (r *PgxInvoiceRepository) FindLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	query := `SELECT ` + invoiceLineColumns + ` FROM invoice_lines WHERE invoice_id = $1 ORDER BY created_at, line_id;`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for invoice "+invoiceID, err)
	}
	defer rows.Close()

	lines := []models.InvoiceLine{}
	for rows.Next() {
		var l models.InvoiceLine
		err := rows.Scan(
			&l.LineID,
			&l.InvoiceID,
			&l.ItemName,
			&l.ItemCode,
			&l.Description,
			&l.Quantity,
			&l.UnitPrice,
			&l.Discount,
			&l.TaxRate,
			&l.Amount,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice line row", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice line rows", err)
	}
	return mapping.ToDomainInvoiceLineSlice(lines), nil
}

// ListInvoices retrieves a page of invoices ordered by date descending with
// a keyset token on (invoice_date, created_at). The OVERDUE filter is a
// view over open invoices past their due date; it is never a stored status.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, companyID string, filter portsrepo.ListInvoicesFilter) ([]domain.Invoice, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1`
	args := []interface{}{companyID}
	argPos := 2

	if filter.Status != nil {
		if *filter.Status == domain.InvoiceOverdue {
			query += ` AND status IN ('DRAFT', 'SENT') AND due_date < $` + strconv.Itoa(argPos)
			args = append(args, time.Now())
			argPos++
		} else {
			query += ` AND status = $` + strconv.Itoa(argPos)
			args = append(args, string(*filter.Status))
			argPos++
		}
	}
	if filter.ContactID != nil {
		query += ` AND contact_id = $` + strconv.Itoa(argPos)
		args = append(args, *filter.ContactID)
		argPos++
	}
	if filter.DateFrom != nil {
		query += ` AND invoice_date >= $` + strconv.Itoa(argPos)
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		query += ` AND invoice_date <= $` + strconv.Itoa(argPos)
		args = append(args, *filter.DateTo)
		argPos++
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastDate, lastCreatedAt, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` AND (invoice_date, created_at) < ($` + strconv.Itoa(argPos) + `, $` + strconv.Itoa(argPos+1) + `)`
		args = append(args, lastDate, lastCreatedAt)
		argPos += 2
	}
	query += ` ORDER BY invoice_date DESC, created_at DESC LIMIT $` + strconv.Itoa(argPos) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query invoices for company "+companyID, err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}

	var token *string
	if len(invoices) == fetchLimit {
		invoices = invoices[:limit]
		last := invoices[len(invoices)-1]
		t := pagination.EncodeToken(last.InvoiceDate, last.CreatedAt)
		token = &t
	}

	domainInvoices := make([]domain.Invoice, len(invoices))
	for i, m := range invoices {
		domainInvoices[i] = mapping.ToDomainInvoice(m)
	}
	return domainInvoices, token, nil
}

// ListOpenInvoices retrieves all open invoices joined with contact names,
// restricted to contacts of the given types.
func (r *PgxInvoiceRepository) ListOpenInvoices(ctx context.Context, companyID string, contactTypes []domain.ContactType) ([]domain.OpenInvoice, error) {
	types := make([]string, len(contactTypes))
	for i, t := range contactTypes {
		types[i] = string(t)
	}
	query := `
		SELECT i.invoice_id, i.contact_id, c.name, i.due_date, i.total
		FROM invoices i
		JOIN contacts c ON c.contact_id = i.contact_id
		WHERE i.company_id = $1
		  AND i.status NOT IN ('PAID', 'CANCELLED')
		  AND c.contact_type = ANY($2)
		ORDER BY i.due_date, i.invoice_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, types)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open invoices for company "+companyID, err)
	}
	defer rows.Close()

	open := []domain.OpenInvoice{}
	for rows.Next() {
		var o domain.OpenInvoice
		if err := rows.Scan(&o.InvoiceID, &o.ContactID, &o.ContactName, &o.DueDate, &o.Total); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan open invoice row", err)
		}
		open = append(open, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating open invoice rows", err)
	}
	return open, nil
}

// CountOpenInvoices counts invoices that are neither PAID nor CANCELLED.
func (r *PgxInvoiceRepository) CountOpenInvoices(ctx context.Context, companyID string) (int, error) {
	query := `SELECT COUNT(*) FROM invoices WHERE company_id = $1 AND status NOT IN ('PAID', 'CANCELLED');`
	var count int
	if err := r.Pool.QueryRow(ctx, query, companyID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count open invoices for company "+companyID, err)
	}
	return count, nil
}

// SumPaidInvoiceTotals sums PAID invoice totals dated within [from, to).
func (r *PgxInvoiceRepository) SumPaidInvoiceTotals(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM invoices
		WHERE company_id = $1 AND status = 'PAID' AND invoice_date >= $2 AND invoice_date < $3;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, companyID, from, to).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum paid invoices for company "+companyID, err)
	}
	return sum, nil
}

// MonthlyPaidInvoiceTotals sums PAID invoice totals per calendar month over
// [start, end), keyed by "YYYY-MM".
func (r *PgxInvoiceRepository) MonthlyPaidInvoiceTotals(ctx context.Context, companyID string, start, end time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT to_char(date_trunc('month', invoice_date), 'YYYY-MM') AS month, SUM(total)
		FROM invoices
		WHERE company_id = $1 AND status = 'PAID' AND invoice_date >= $2 AND invoice_date < $3
		GROUP BY month;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query monthly paid invoices for company "+companyID, err)
	}
	defer rows.Close()

	totals := map[string]decimal.Decimal{}
	for rows.Next() {
		var month string
		var sum decimal.Decimal
		if err := rows.Scan(&month, &sum); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan monthly paid invoice row", err)
		}
		totals[month] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating monthly paid invoice rows", err)
	}
	return totals, nil
}

// UpdateInvoice persists header changes and replaces all lines in one
// transaction.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelInvoice(invoice)
	headerQuery := `
		UPDATE invoices
		SET contact_id = $2, invoice_date = $3, due_date = $4, subtotal = $5, tax_total = $6, total = $7,
		    template_id = $8, notes = $9, custom_field_values = $10, last_updated_at = $11, last_updated_by = $12
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, headerQuery,
		m.InvoiceID,
		m.ContactID,
		m.InvoiceDate,
		m.DueDate,
		m.Subtotal,
		m.TaxTotal,
		m.Total,
		m.TemplateID,
		m.Notes,
		m.CustomFieldValues,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1;`, m.InvoiceID); err != nil {
		return apperrors.NewAppError(500, "failed to clear lines of invoice "+m.InvoiceID, err)
	}
	if err := insertInvoiceLines(ctx, tx, lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateInvoiceStatus updates only the stored status of an invoice.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE invoices
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, invoiceID, string(status), updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of invoice "+invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteInvoice removes the invoice and its lines in one transaction.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1;`, invoiceID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines of invoice "+invoiceID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete invoice "+invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
