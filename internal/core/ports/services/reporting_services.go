package services

import (
	"context"
	"time"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
)

// ReportingSvcFacade defines the financial report generators. From/to
// ranges are inclusive on both ends; asOf snapshots include everything
// dated on or before the given day.
type ReportingSvcFacade interface {
	GetTrialBalance(ctx context.Context, userID string, companyID string, from time.Time, to time.Time) (*domain.TrialBalanceReport, error)
	GetProfitAndLoss(ctx context.Context, userID string, companyID string, from time.Time, to time.Time) (*domain.PAndLReport, error)
	GetBalanceSheet(ctx context.Context, userID string, companyID string, asOf time.Time) (*domain.BalanceSheetReport, error)
	GetAgedReceivables(ctx context.Context, userID string, companyID string, asOf time.Time) (*domain.AgingReport, error)
	GetAgedPayables(ctx context.Context, userID string, companyID string, asOf time.Time) (*domain.AgingReport, error)
}
