package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bankcore/banking/internal/apperrors"
	"github.com/bankcore/banking/internal/core/domain"
	portsrepo "github.com/bankcore/banking/internal/core/ports/repositories"
	portssvc "github.com/bankcore/banking/internal/core/ports/services"
	"github.com/bankcore/banking/internal/middleware"
	"github.com/bankcore/banking/internal/utils"
)

// accountNumberBytes sets the size of generated account numbers: 4 random
// bytes hex-encode to the 8-character numbers carried on the wire. The
// registry rejects the rare collision and creation retries with a fresh draw.
const accountNumberBytes = 4

// maxNumberRetries bounds the collision retry loop. Exhausting it means the
// random source is broken, not that the number space filled up.
const maxNumberRetries = 5

// accountService implements the AccountSvcFacade interface. It owns account
// creation and lookup; money movement belongs to the ledger service.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service backed by the given registry.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account with a fresh account number, zero
// balance and empty transaction history.
func (s *accountService) CreateAccount(ctx context.Context, owner string, accountType domain.AccountType) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		number, err := utils.GenerateSecureRandomString(accountNumberBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to generate account number: %w", err)
		}

		account := domain.NewAccount(number, owner, accountType)
		err = s.accountRepo.SaveAccount(ctx, account)
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Account number collision, retrying", slog.String("account_number", number))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to save account: %w", err)
		}

		logger.Info("Account created",
			slog.String("account_number", account.AccountNumber),
			slog.String("owner", account.Owner),
			slog.String("account_type", string(account.Type)))
		return account, nil
	}

	return nil, fmt.Errorf("failed to allocate a unique account number after %d attempts", maxNumberRetries)
}

// GetAccount retrieves an account handle by account number.
func (s *accountService) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves all account handles.
func (s *accountService) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx)
}
