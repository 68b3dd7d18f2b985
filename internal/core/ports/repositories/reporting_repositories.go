package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
)

// AccountNet is the raw aggregation row reports are built from: one account
// with its net (debit minus credit) over some window. Aggregation happens
// store-side; services only apply sign conventions and totals.
type AccountNet struct {
	AccountID   string
	Code        string
	Name        string
	AccountType domain.AccountType
	Net         decimal.Decimal
}

// ReportingRepository defines the read-only aggregate queries behind the
// report generator and the dashboard. Every method produces its numbers
// from a single query so a report's internal totals cannot drift apart
// under concurrent writes.
type ReportingRepository interface {
	// GetTrialBalanceData nets every account over journal lines dated within
	// [from, to] inclusive.
	GetTrialBalanceData(ctx context.Context, companyID string, from, to time.Time) ([]AccountNet, error)

	// GetProfitAndLossData nets REVENUE and EXPENSE accounts over journal
	// lines dated within [from, to] inclusive.
	GetProfitAndLossData(ctx context.Context, companyID string, from, to time.Time) ([]AccountNet, error)

	// GetBalanceSheetData nets ASSET, LIABILITY and EQUITY accounts over all
	// journal lines from inception through asOf.
	GetBalanceSheetData(ctx context.Context, companyID string, asOf time.Time) ([]AccountNet, error)

	// GetMonthlyExpenseOutflows sums (debit - credit) over EXPENSE-typed
	// journal lines per calendar month over [start, end), keyed by "YYYY-MM".
	GetMonthlyExpenseOutflows(ctx context.Context, companyID string, start, end time.Time) (map[string]decimal.Decimal, error)

	// GetTopExpenseAccounts sums (debit - credit) over EXPENSE-typed journal
	// lines per account within [from, to), keeps positive sums only, ordered
	// descending, at most limit rows.
	GetTopExpenseAccounts(ctx context.Context, companyID string, from, to time.Time, limit int) ([]domain.AccountAmount, error)
}
