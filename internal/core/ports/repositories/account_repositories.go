package repositories

import (
	"context"
	"time"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts, keyed by account ID.
	// IDs that do not resolve are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountByCode retrieves an account by its company-scoped code.
	FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error)

	// ListAccounts retrieves all accounts of a company ordered by code.
	ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error)

	// HasJournalLines reports whether any journal line references the account.
	HasJournalLines(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account. Returns apperrors.ErrDuplicate when
	// the company-scoped code is already taken.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount persists changes to an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes the account and clears the parent reference of
	// its direct children in the same transaction, so children become
	// root-level rather than being cascaded away.
	DeleteAccount(ctx context.Context, accountID string, updatedByUserID string, updatedAt time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
