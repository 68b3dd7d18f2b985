package services

import (
	"context"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
)

// DashboardSvcFacade assembles the landing-page summary.
type DashboardSvcFacade interface {
	GetSummary(ctx context.Context, userID string, companyID string) (*domain.DashboardSummary, error)
}
