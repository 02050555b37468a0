package services

import (
	"context"

	"github.com/bankcore/banking/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade defines the money movement operations of the ledger
// engine. Each operation either applies completely, leaving the affected
// account(s) with an updated balance and a matching transaction record, or
// rejects with a typed error and touches nothing.
type LedgerSvcFacade interface {
	// Deposit credits amount to the account.
	Deposit(ctx context.Context, account *domain.Account, amount decimal.Decimal) error

	// Withdraw debits amount from the account.
	Withdraw(ctx context.Context, account *domain.Account, amount decimal.Decimal) error

	// Transfer moves amount from source to destination as a single atomic
	// unit, recording one debit leg and one credit leg.
	Transfer(ctx context.Context, source, destination *domain.Account, amount decimal.Decimal) error
}
