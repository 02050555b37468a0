package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bankcore/banking/internal/apperrors"
	"github.com/bankcore/banking/internal/core/domain"
	portsrepo "github.com/bankcore/banking/internal/core/ports/repositories"
)

// AccountRepository is an in-memory, process-local account registry.
// The registry lock guards only the map itself; each account carries its
// own lock for balance and history mutation, so operations on unrelated
// accounts never serialize against each other here.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	order    []string // account numbers in insertion order, for stable listing
}

// NewAccountRepository returns an empty registry.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Ensure AccountRepository implements the repository facade.
var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

// SaveAccount registers the account under its account number. The
// existence check and the insert happen under one critical section, so two
// concurrent saves of the same number cannot both succeed.
func (r *AccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.AccountNumber]; exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountNumber)
	}
	r.accounts[account.AccountNumber] = account
	r.order = append(r.order, account.AccountNumber)
	return nil
}

// FindAccountByNumber returns the live account handle for the number.
func (r *AccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.accounts[accountNumber]
	if !exists {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountNumber)
	}
	return account, nil
}

// ListAccounts returns handles for all accounts in creation order.
func (r *AccountRepository) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Account, 0, len(r.order))
	for _, number := range r.order {
		out = append(out, r.accounts[number])
	}
	return out, nil
}
