package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/bankcore/banking/internal/apperrors"
	"github.com/bankcore/banking/internal/core/domain"
	portssvc "github.com/bankcore/banking/internal/core/ports/services"
	"github.com/bankcore/banking/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	service portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.service = services.NewLedgerService()
}

// newAccount builds a fresh account handle the way the store would.
func newAccount(number string, accountType domain.AccountType) *domain.Account {
	return domain.NewAccount(number, "User", accountType)
}

// assertReconciled checks that the balance equals the sum of the
// transaction amounts and never went negative.
func (suite *LedgerServiceTestSuite) assertReconciled(account *domain.Account) {
	snap := account.Snapshot()
	sum := decimal.Zero
	for _, txn := range snap.Transactions {
		sum = sum.Add(txn.Amount)
	}
	suite.True(snap.Balance.Equal(sum), "balance %s != transaction sum %s", snap.Balance, sum)
	suite.False(snap.Balance.IsNegative(), "balance %s is negative", snap.Balance)
}

// --- Deposit ---

func (suite *LedgerServiceTestSuite) TestDeposit_Success() {
	ctx := context.Background()
	account := newAccount("aaaa0001", domain.Checking)

	err := suite.service.Deposit(ctx, account, decimal.NewFromInt(100))

	suite.Require().NoError(err)
	snap := account.Snapshot()
	suite.True(snap.Balance.Equal(decimal.NewFromInt(100)))
	suite.Require().Len(snap.Transactions, 1)
	suite.Equal(domain.Deposit, snap.Transactions[0].Kind)
	suite.True(snap.Transactions[0].Amount.Equal(decimal.NewFromInt(100)))
	suite.Equal("Cash Deposit", snap.Transactions[0].Description)
	suite.Empty(snap.Transactions[0].RelatedAccount)
	suite.NotEmpty(snap.Transactions[0].ID)
	suite.assertReconciled(account)
}

func (suite *LedgerServiceTestSuite) TestDeposit_NonPositiveAmount() {
	ctx := context.Background()
	account := newAccount("aaaa0002", domain.Savings)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		err := suite.service.Deposit(ctx, account, amount)
		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	}

	snap := account.Snapshot()
	suite.True(snap.Balance.IsZero())
	suite.Empty(snap.Transactions)
}

// --- Withdraw ---

func (suite *LedgerServiceTestSuite) TestWithdraw_Success() {
	ctx := context.Background()
	account := newAccount("aaaa0003", domain.Checking)
	suite.Require().NoError(suite.service.Deposit(ctx, account, decimal.NewFromInt(200)))

	err := suite.service.Withdraw(ctx, account, decimal.NewFromInt(50))

	suite.Require().NoError(err)
	snap := account.Snapshot()
	suite.True(snap.Balance.Equal(decimal.NewFromInt(150)))
	suite.Require().Len(snap.Transactions, 2)
	suite.Equal(domain.Withdrawal, snap.Transactions[1].Kind)
	suite.True(snap.Transactions[1].Amount.Equal(decimal.NewFromInt(-50)))
	suite.Equal("Cash Withdrawal", snap.Transactions[1].Description)
	suite.assertReconciled(account)
}

func (suite *LedgerServiceTestSuite) TestWithdraw_InsufficientFunds() {
	ctx := context.Background()
	account := newAccount("aaaa0004", domain.Savings)
	suite.Require().NoError(suite.service.Deposit(ctx, account, decimal.NewFromInt(50)))

	err := suite.service.Withdraw(ctx, account, decimal.NewFromInt(100))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	snap := account.Snapshot()
	suite.True(snap.Balance.Equal(decimal.NewFromInt(50)))
	suite.Len(snap.Transactions, 1)
}

func (suite *LedgerServiceTestSuite) TestWithdraw_NonPositiveAmountCheckedBeforeFunds() {
	ctx := context.Background()
	account := newAccount("aaaa0005", domain.Checking)

	// Zero balance and non-positive amount: the amount check must win.
	err := suite.service.Withdraw(ctx, account, decimal.Zero)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.NotErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Empty(account.Snapshot().Transactions)
}

// --- Transfer ---

func (suite *LedgerServiceTestSuite) TestTransfer_Success() {
	ctx := context.Background()
	source := newAccount("aaaa0006", domain.Checking)
	destination := newAccount("bbbb0006", domain.Savings)
	suite.Require().NoError(suite.service.Deposit(ctx, source, decimal.NewFromInt(500)))

	err := suite.service.Transfer(ctx, source, destination, decimal.NewFromInt(200))

	suite.Require().NoError(err)

	srcSnap := source.Snapshot()
	dstSnap := destination.Snapshot()
	suite.True(srcSnap.Balance.Equal(decimal.NewFromInt(300)))
	suite.True(dstSnap.Balance.Equal(decimal.NewFromInt(200)))

	suite.Require().Len(srcSnap.Transactions, 2)
	out := srcSnap.Transactions[1]
	suite.Equal(domain.TransferOut, out.Kind)
	suite.True(out.Amount.Equal(decimal.NewFromInt(-200)))
	suite.Equal(destination.AccountNumber, out.RelatedAccount)
	suite.Equal(fmt.Sprintf("Transfer to %s", destination.AccountNumber), out.Description)

	suite.Require().Len(dstSnap.Transactions, 1)
	in := dstSnap.Transactions[0]
	suite.Equal(domain.TransferIn, in.Kind)
	suite.True(in.Amount.Equal(decimal.NewFromInt(200)))
	suite.Equal(source.AccountNumber, in.RelatedAccount)
	suite.Equal(fmt.Sprintf("Transfer from %s", source.AccountNumber), in.Description)

	// Conservation: total across the pair is unchanged.
	suite.True(srcSnap.Balance.Add(dstSnap.Balance).Equal(decimal.NewFromInt(500)))
	suite.assertReconciled(source)
	suite.assertReconciled(destination)
}

func (suite *LedgerServiceTestSuite) TestTransfer_SameAccount() {
	ctx := context.Background()
	account := newAccount("aaaa0007", domain.Checking)
	suite.Require().NoError(suite.service.Deposit(ctx, account, decimal.NewFromInt(1000)))

	// Rejected even though funds are sufficient.
	err := suite.service.Transfer(ctx, account, account, decimal.NewFromInt(100))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSameAccount)
	snap := account.Snapshot()
	suite.True(snap.Balance.Equal(decimal.NewFromInt(1000)))
	suite.Len(snap.Transactions, 1)
}

func (suite *LedgerServiceTestSuite) TestTransfer_InsufficientFunds() {
	ctx := context.Background()
	source := newAccount("aaaa0008", domain.Savings)
	destination := newAccount("bbbb0008", domain.Checking)
	suite.Require().NoError(suite.service.Deposit(ctx, source, decimal.NewFromInt(50)))

	err := suite.service.Transfer(ctx, source, destination, decimal.NewFromInt(100))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.True(source.Snapshot().Balance.Equal(decimal.NewFromInt(50)))
	suite.True(destination.Snapshot().Balance.IsZero())
	suite.Len(source.Snapshot().Transactions, 1)
	suite.Empty(destination.Snapshot().Transactions)
}

func (suite *LedgerServiceTestSuite) TestTransfer_NonPositiveAmount() {
	ctx := context.Background()
	source := newAccount("aaaa0009", domain.Checking)
	destination := newAccount("bbbb0009", domain.Savings)

	err := suite.service.Transfer(ctx, source, destination, decimal.NewFromInt(-5))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.Empty(source.Snapshot().Transactions)
	suite.Empty(destination.Snapshot().Transactions)
}

func (suite *LedgerServiceTestSuite) TestTransfer_NilHandles() {
	ctx := context.Background()
	account := newAccount("aaaa0010", domain.Checking)

	suite.ErrorIs(suite.service.Transfer(ctx, nil, account, decimal.NewFromInt(10)), apperrors.ErrInvalidReference)
	suite.ErrorIs(suite.service.Transfer(ctx, account, nil, decimal.NewFromInt(10)), apperrors.ErrInvalidReference)
	suite.Empty(account.Snapshot().Transactions)
}

// --- Concurrency ---

func (suite *LedgerServiceTestSuite) TestConcurrentDeposits_NoLostUpdates() {
	ctx := context.Background()
	account := newAccount("cccc0001", domain.Checking)

	const workers = 100
	amount := decimal.NewFromInt(7)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			suite.NoError(suite.service.Deposit(ctx, account, amount))
		}()
	}
	wg.Wait()

	snap := account.Snapshot()
	suite.True(snap.Balance.Equal(decimal.NewFromInt(7 * workers)))
	suite.Len(snap.Transactions, workers)
	suite.assertReconciled(account)
}

func (suite *LedgerServiceTestSuite) TestOppositeTransfers_CompleteAndConserve() {
	ctx := context.Background()
	x := newAccount("cccc0002", domain.Checking)
	y := newAccount("dddd0002", domain.Checking)
	suite.Require().NoError(suite.service.Deposit(ctx, x, decimal.NewFromInt(1000)))
	suite.Require().NoError(suite.service.Deposit(ctx, y, decimal.NewFromInt(1000)))

	// Opposite-direction transfers between the same pair. The test
	// finishing at all is the deadlock freedom check.
	const rounds = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			suite.NoError(suite.service.Transfer(ctx, x, y, decimal.NewFromInt(1)))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			suite.NoError(suite.service.Transfer(ctx, y, x, decimal.NewFromInt(1)))
		}
	}()
	wg.Wait()

	xSnap := x.Snapshot()
	ySnap := y.Snapshot()
	suite.True(xSnap.Balance.Add(ySnap.Balance).Equal(decimal.NewFromInt(2000)))
	suite.Len(xSnap.Transactions, 1+2*rounds)
	suite.Len(ySnap.Transactions, 1+2*rounds)
	suite.assertReconciled(x)
	suite.assertReconciled(y)
}

func (suite *LedgerServiceTestSuite) TestMixedWorkload_InvariantsHold() {
	ctx := context.Background()
	a := newAccount("eeee0001", domain.Checking)
	b := newAccount("ffff0001", domain.Savings)
	suite.Require().NoError(suite.service.Deposit(ctx, a, decimal.NewFromInt(500)))

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			suite.NoError(suite.service.Deposit(ctx, a, decimal.NewFromInt(3)))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			// May legitimately hit insufficient funds under contention.
			err := suite.service.Withdraw(ctx, a, decimal.NewFromInt(4))
			if err != nil {
				suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			err := suite.service.Transfer(ctx, a, b, decimal.NewFromInt(2))
			if err != nil {
				suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
			}
		}
	}()
	wg.Wait()

	suite.assertReconciled(a)
	suite.assertReconciled(b)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
