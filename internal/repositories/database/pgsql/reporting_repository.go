package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks_backend/internal/apperrors"
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	portsrepo "github.com/tidybooks/tidybooks_backend/internal/core/ports/repositories"
)

// PgxReportingRepository runs the aggregate queries behind reports and the
// dashboard. Unlike the other repositories it scans straight into domain
// and port types; there is no table-shaped model for an aggregation row.
type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for reporting data.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) scanAccountNets(rows pgx.Rows) ([]portsrepo.AccountNet, error) {
	defer rows.Close()
	nets := []portsrepo.AccountNet{}
	for rows.Next() {
		var n portsrepo.AccountNet
		if err := rows.Scan(&n.AccountID, &n.Code, &n.Name, &n.AccountType, &n.Net); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account net row", err)
		}
		nets = append(nets, n)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account net rows", err)
	}
	return nets, nil
}

// GetTrialBalanceData nets every posted-to account over [from, to] inclusive.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, companyID string, from, to time.Time) ([]portsrepo.AccountNet, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit - l.credit), 0) AS net
		FROM accounts a
		JOIN journal_lines l ON l.account_id = a.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE a.company_id = $1
		  AND e.entry_date >= $2
		  AND e.entry_date <= $3
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data for company "+companyID, err)
	}
	return r.scanAccountNets(rows)
}

// GetProfitAndLossData nets REVENUE and EXPENSE accounts over [from, to]
// inclusive.
func (r *PgxReportingRepository) GetProfitAndLossData(ctx context.Context, companyID string, from, to time.Time) ([]portsrepo.AccountNet, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit - l.credit), 0) AS net
		FROM accounts a
		JOIN journal_lines l ON l.account_id = a.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE a.company_id = $1
		  AND a.account_type IN ('REVENUE', 'EXPENSE')
		  AND e.entry_date >= $2
		  AND e.entry_date <= $3
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query profit and loss data for company "+companyID, err)
	}
	return r.scanAccountNets(rows)
}

// GetBalanceSheetData nets balance sheet accounts over everything dated on
// or before asOf.
func (r *PgxReportingRepository) GetBalanceSheetData(ctx context.Context, companyID string, asOf time.Time) ([]portsrepo.AccountNet, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit - l.credit), 0) AS net
		FROM accounts a
		JOIN journal_lines l ON l.account_id = a.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE a.company_id = $1
		  AND a.account_type IN ('ASSET', 'LIABILITY', 'EQUITY')
		  AND e.entry_date <= $2
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query balance sheet data for company "+companyID, err)
	}
	return r.scanAccountNets(rows)
}

// GetMonthlyExpenseOutflows sums expense postings per calendar month over
// [start, end), keyed by "YYYY-MM".
func (r *PgxReportingRepository) GetMonthlyExpenseOutflows(ctx context.Context, companyID string, start, end time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT to_char(date_trunc('month', e.entry_date), 'YYYY-MM') AS month,
		       SUM(l.debit - l.credit)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.company_id = $1
		  AND a.account_type = 'EXPENSE'
		  AND e.entry_date >= $2
		  AND e.entry_date < $3
		GROUP BY month;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query monthly expense outflows for company "+companyID, err)
	}
	defer rows.Close()

	outflows := map[string]decimal.Decimal{}
	for rows.Next() {
		var month string
		var sum decimal.Decimal
		if err := rows.Scan(&month, &sum); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan monthly expense row", err)
		}
		outflows[month] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating monthly expense rows", err)
	}
	return outflows, nil
}

// GetTopExpenseAccounts returns the largest expense accounts by net posting
// within [from, to), positive sums only.
func (r *PgxReportingRepository) GetTopExpenseAccounts(ctx context.Context, companyID string, from, to time.Time, limit int) ([]domain.AccountAmount, error) {
	query := `
		SELECT a.account_id, a.code, a.name, SUM(l.debit - l.credit) AS spent
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.company_id = $1
		  AND a.account_type = 'EXPENSE'
		  AND e.entry_date >= $2
		  AND e.entry_date < $3
		GROUP BY a.account_id, a.code, a.name
		HAVING SUM(l.debit - l.credit) > 0
		ORDER BY spent DESC
		LIMIT $4;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, from, to, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query top expense accounts for company "+companyID, err)
	}
	defer rows.Close()

	top := []domain.AccountAmount{}
	for rows.Next() {
		var a domain.AccountAmount
		if err := rows.Scan(&a.AccountID, &a.Code, &a.Name, &a.NetAmount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan top expense row", err)
		}
		top = append(top, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating top expense rows", err)
	}
	return top, nil
}
