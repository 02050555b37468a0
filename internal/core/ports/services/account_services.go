package services

import (
	"context"

	"github.com/bankcore/banking/internal/core/domain"
)

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	// GetAccount retrieves a specific account by its account number.
	GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	// CreateAccount registers a new account with a fresh account number,
	// zero balance and empty history.
	CreateAccount(ctx context.Context, owner string, accountType domain.AccountType) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces.
// This is a facade for clients that need access to all operations.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
