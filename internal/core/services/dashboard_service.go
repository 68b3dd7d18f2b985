package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	portsrepo "github.com/tidybooks/tidybooks_backend/internal/core/ports/repositories"
	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
	"github.com/tidybooks/tidybooks_backend/internal/utils/accounting"
)

const (
	cashFlowMonths  = 6
	topExpenseLimit = 8
)

// dashboardService implements the DashboardSvcFacade interface.
type dashboardService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	invoiceRepo   portsrepo.InvoiceReader
	now           func() time.Time
}

// DashboardServiceOption is a functional option for configuring the dashboard service
type DashboardServiceOption func(*dashboardService)

// WithDashboardCompanyAuthorizer adds the company authorizer dependency
func WithDashboardCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) DashboardServiceOption {
	return func(s *dashboardService) {
		s.CompanyAuthorizer = authorizer
	}
}

// WithDashboardClock overrides the clock, used by tests.
func WithDashboardClock(now func() time.Time) DashboardServiceOption {
	return func(s *dashboardService) {
		s.now = now
	}
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(reportingRepo portsrepo.ReportingRepository, invoiceRepo portsrepo.InvoiceReader, options ...DashboardServiceOption) portssvc.DashboardSvcFacade {
	svc := &dashboardService{
		reportingRepo: reportingRepo,
		invoiceRepo:   invoiceRepo,
		now:           time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

// GetSummary assembles the dashboard KPIs, the trailing six-month cash
// flow and the current month's top expense accounts.
func (s *dashboardService) GetSummary(ctx context.Context, userID string, companyID string) (*domain.DashboardSummary, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	now := s.now()
	thisMonthStart := accounting.MonthStart(now)
	nextMonthStart := accounting.AddMonths(thisMonthStart, 1)
	lastMonthStart := accounting.AddMonths(thisMonthStart, -1)
	windowStart := accounting.AddMonths(thisMonthStart, -(cashFlowMonths - 1))

	moneyIn, err := s.invoiceRepo.MonthlyPaidInvoiceTotals(ctx, companyID, windowStart, nextMonthStart)
	if err != nil {
		s.LogError(ctx, err, "Failed to load monthly paid invoice totals", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to get monthly paid invoice totals: %w", err)
	}
	moneyOut, err := s.reportingRepo.GetMonthlyExpenseOutflows(ctx, companyID, windowStart, nextMonthStart)
	if err != nil {
		s.LogError(ctx, err, "Failed to load monthly expense outflows", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to get monthly expense outflows: %w", err)
	}

	summary := &domain.DashboardSummary{
		RevenueThisMonth:       decimal.Zero,
		RevenueLastMonth:       decimal.Zero,
		OutstandingReceivables: decimal.Zero,
		CashFlow:               make([]domain.CashFlowPoint, 0, cashFlowMonths),
		TopExpenses:            []domain.TopExpense{},
	}

	cumulative := decimal.Zero
	for m := windowStart; m.Before(nextMonthStart); m = accounting.AddMonths(m, 1) {
		key := m.Format("2006-01")
		in := moneyIn[key]
		out := moneyOut[key]
		// Months where refunds outweigh spend read as zero outflow.
		if out.IsNegative() {
			out = decimal.Zero
		}
		cumulative = cumulative.Add(in.Sub(out))
		summary.CashFlow = append(summary.CashFlow, domain.CashFlowPoint{
			Month:    key,
			MoneyIn:  in,
			MoneyOut: out,
			NetCash:  cumulative,
		})
	}

	summary.RevenueThisMonth = moneyIn[thisMonthStart.Format("2006-01")]
	summary.RevenueLastMonth = moneyIn[lastMonthStart.Format("2006-01")]
	summary.RevenueChangePct = accounting.RevenueChangePercent(summary.RevenueThisMonth, summary.RevenueLastMonth)

	openInvoices, err := s.invoiceRepo.ListOpenInvoices(ctx, companyID, []domain.ContactType{domain.ContactCustomer, domain.ContactBoth})
	if err != nil {
		s.LogError(ctx, err, "Failed to load open invoices", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list open invoices: %w", err)
	}
	for _, inv := range openInvoices {
		summary.OutstandingReceivables = summary.OutstandingReceivables.Add(inv.Total)
	}
	summary.OpenInvoiceCount = len(openInvoices)

	topExpenses, err := s.reportingRepo.GetTopExpenseAccounts(ctx, companyID, thisMonthStart, nextMonthStart, topExpenseLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to load top expense accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to get top expense accounts: %w", err)
	}

	displayedTotal := decimal.Zero
	for _, e := range topExpenses {
		displayedTotal = displayedTotal.Add(e.NetAmount)
	}
	for _, e := range topExpenses {
		pct := decimal.Zero
		if displayedTotal.IsPositive() {
			pct = e.NetAmount.Div(displayedTotal).Mul(decimal.NewFromInt(100)).Round(2)
		}
		summary.TopExpenses = append(summary.TopExpenses, domain.TopExpense{
			AccountID:   e.AccountID,
			AccountName: e.Name,
			Amount:      e.NetAmount,
			Percent:     pct,
		})
	}
	return summary, nil
}
