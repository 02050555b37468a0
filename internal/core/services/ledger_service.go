package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bankcore/banking/internal/apperrors"
	"github.com/bankcore/banking/internal/core/domain"
	portssvc "github.com/bankcore/banking/internal/core/ports/services"
	"github.com/bankcore/banking/internal/middleware"
	"github.com/shopspring/decimal"
)

// ledgerService provides the core money movement operations. It never
// touches the account registry; callers hand it the account handles to
// operate on, and it mutates balance and history together under the
// account locks so no partially applied state is ever observable.
type ledgerService struct{}

// NewLedgerService creates a new ledger service.
func NewLedgerService() portssvc.LedgerSvcFacade {
	return &ledgerService{}
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Deposit credits amount to the account and records a DEPOSIT transaction.
func (s *ledgerService) Deposit(ctx context.Context, account *domain.Account, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("deposit of %s rejected: %w", amount, apperrors.ErrInvalidAmount)
	}

	account.Lock()
	defer account.Unlock()

	account.Apply(domain.NewTransaction(amount, domain.Deposit, "Cash Deposit", ""))

	middleware.GetLoggerFromCtx(ctx).Info("Deposit applied",
		slog.String("account_number", account.AccountNumber),
		slog.String("amount", amount.String()),
		slog.String("balance", account.Balance.String()))
	return nil
}

// Withdraw debits amount from the account and records a WITHDRAWAL
// transaction. Amount validity is checked before funds, so a non-positive
// amount is always reported as ErrInvalidAmount even on an empty account.
func (s *ledgerService) Withdraw(ctx context.Context, account *domain.Account, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("withdrawal of %s rejected: %w", amount, apperrors.ErrInvalidAmount)
	}

	account.Lock()
	defer account.Unlock()

	if account.Balance.LessThan(amount) {
		return fmt.Errorf("withdrawal of %s from account %s rejected: %w", amount, account.AccountNumber, apperrors.ErrInsufficientFunds)
	}

	account.Apply(domain.NewTransaction(amount.Neg(), domain.Withdrawal, "Cash Withdrawal", ""))

	middleware.GetLoggerFromCtx(ctx).Info("Withdrawal applied",
		slog.String("account_number", account.AccountNumber),
		slog.String("amount", amount.String()),
		slog.String("balance", account.Balance.String()))
	return nil
}

// Transfer moves amount from source to destination, recording a
// TRANSFER_OUT leg on the source and a TRANSFER_IN leg on the destination.
// Both account locks are held across validation and mutation, so a
// concurrent operation cannot invalidate the funds check, and either both
// legs are recorded or neither is.
func (s *ledgerService) Transfer(ctx context.Context, source, destination *domain.Account, amount decimal.Decimal) error {
	if source == nil || destination == nil {
		return fmt.Errorf("transfer requires both account handles: %w", apperrors.ErrInvalidReference)
	}
	if amount.Sign() <= 0 {
		return fmt.Errorf("transfer of %s rejected: %w", amount, apperrors.ErrInvalidAmount)
	}
	if source.AccountNumber == destination.AccountNumber {
		return fmt.Errorf("transfer within account %s rejected: %w", source.AccountNumber, apperrors.ErrSameAccount)
	}

	// Lock both accounts in account number order. Two transfers moving
	// opposite directions between the same pair then contend on the same
	// first lock instead of deadlocking.
	first, second := source, destination
	if second.AccountNumber < first.AccountNumber {
		first, second = second, first
	}
	first.Lock()
	defer first.Unlock()
	second.Lock()
	defer second.Unlock()

	if source.Balance.LessThan(amount) {
		return fmt.Errorf("transfer of %s from account %s rejected: %w", amount, source.AccountNumber, apperrors.ErrInsufficientFunds)
	}

	source.Apply(domain.NewTransaction(amount.Neg(), domain.TransferOut,
		fmt.Sprintf("Transfer to %s", destination.AccountNumber), destination.AccountNumber))
	destination.Apply(domain.NewTransaction(amount, domain.TransferIn,
		fmt.Sprintf("Transfer from %s", source.AccountNumber), source.AccountNumber))

	middleware.GetLoggerFromCtx(ctx).Info("Transfer applied",
		slog.String("source_account", source.AccountNumber),
		slog.String("destination_account", destination.AccountNumber),
		slog.String("amount", amount.String()))
	return nil
}
