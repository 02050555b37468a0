package domain

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account.
type AccountType string

const (
	Savings  AccountType = "SAVINGS"
	Checking AccountType = "CHECKING"
)

// ParseAccountType parses a case-insensitive account type name.
// The boolean reports whether the input named a known type.
func ParseAccountType(s string) (AccountType, bool) {
	switch AccountType(strings.ToUpper(s)) {
	case Savings:
		return Savings, true
	case Checking:
		return Checking, true
	}
	return "", false
}

// Account represents a bank account within the core domain.
// AccountNumber, Owner and Type are immutable after creation; Balance and
// Transactions are mutated only by the ledger service, under the account
// lock. The zero Balance and nil Transactions of a fresh account are the
// valid initial state.
type Account struct {
	AccountNumber string          // Opaque unique identifier, assigned by the store
	Owner         string          // Display name, no rename operation exists
	Type          AccountType     // SAVINGS or CHECKING
	Balance       decimal.Decimal // Never negative
	Transactions  []Transaction   // Append-only, insertion order preserved

	mu sync.Mutex
}

// NewAccount returns an account with zero balance and empty history.
func NewAccount(accountNumber, owner string, accountType AccountType) *Account {
	return &Account{
		AccountNumber: accountNumber,
		Owner:         owner,
		Type:          accountType,
	}
}

// Lock acquires exclusive access to the account's balance and history.
// Callers mutating two accounts must acquire locks in account number order.
func (a *Account) Lock() {
	a.mu.Lock()
}

// Unlock releases the account lock.
func (a *Account) Unlock() {
	a.mu.Unlock()
}

// Apply adds the transaction amount to the balance and appends the record,
// keeping the two in step. The caller must hold the account lock and must
// have validated the resulting balance.
func (a *Account) Apply(txn Transaction) {
	a.Balance = a.Balance.Add(txn.Amount)
	a.Transactions = append(a.Transactions, txn)
}

// AccountSnapshot is a point-in-time value copy of an account, safe to
// read and serialize without holding the account lock.
type AccountSnapshot struct {
	AccountNumber string
	Owner         string
	Type          AccountType
	Balance       decimal.Decimal
	Transactions  []Transaction
}

// Snapshot returns a consistent copy of the account state.
func (a *Account) Snapshot() AccountSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	txns := make([]Transaction, len(a.Transactions))
	copy(txns, a.Transactions)
	return AccountSnapshot{
		AccountNumber: a.AccountNumber,
		Owner:         a.Owner,
		Type:          a.Type,
		Balance:       a.Balance,
		Transactions:  txns,
	}
}
