package repositories

import (
	"context"

	"github.com/bankcore/banking/internal/core/domain"
)

// AccountReader defines read operations against the account registry.
type AccountReader interface {
	// FindAccountByNumber retrieves the account handle for an account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccounts retrieves handles for every registered account.
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
}

// AccountWriter defines write operations against the account registry.
type AccountWriter interface {
	// SaveAccount registers a new account. It fails with apperrors.ErrDuplicate
	// if the account number is already taken.
	SaveAccount(ctx context.Context, account *domain.Account) error
}

// AccountRepositoryFacade combines all account registry interfaces.
// This is a facade for clients that need access to all operations.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
