package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tidybooks/tidybooks_backend/internal/apperrors"
)

// Per-company counter scopes. Journal numbers run forever; invoice numbers
// restart each calendar year via a year-qualified scope.
const (
	sequenceScopeJournal = "journal"
	sequenceScopeInvoice = "invoice" // combined with the year, e.g. "invoice:2026"
)

// nextSequence reserves the next value of a per-company counter inside the
// caller's transaction. The counter row is upserted atomically, so two
// concurrent transactions get distinct values; the later one blocks on the
// row lock until the earlier commits.
func nextSequence(ctx context.Context, tx pgx.Tx, companyID, scope string) (int64, error) {
	const query = `
		INSERT INTO company_sequences (company_id, scope, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, scope)
		DO UPDATE SET value = company_sequences.value + 1
		RETURNING value;
	`
	var value int64
	if err := tx.QueryRow(ctx, query, companyID, scope).Scan(&value); err != nil {
		return 0, apperrors.NewAppError(500, "failed to reserve sequence "+scope+" for company "+companyID, err)
	}
	return value, nil
}

// invoiceSequenceScope builds the year-qualified invoice counter scope.
func invoiceSequenceScope(year int) string {
	return fmt.Sprintf("%s:%d", sequenceScopeInvoice, year)
}
