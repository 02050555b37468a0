package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind identifies the operation that produced a transaction.
type TransactionKind string

const (
	Deposit     TransactionKind = "DEPOSIT"
	Withdrawal  TransactionKind = "WITHDRAWAL"
	TransferIn  TransactionKind = "TRANSFER_IN"
	TransferOut TransactionKind = "TRANSFER_OUT"
)

// Transaction is a single immutable entry in an account's history.
// Amount is signed: positive for credits (deposit, transfer-in), negative
// for debits (withdrawal, transfer-out), so that the sum of an account's
// transaction amounts always equals its balance.
type Transaction struct {
	ID             string          // Unique identifier (UUID)
	Timestamp      time.Time       // Capture time of the operation, UTC
	Amount         decimal.Decimal // Signed
	Kind           TransactionKind // DEPOSIT, WITHDRAWAL, TRANSFER_IN, TRANSFER_OUT
	Description    string          // Human-readable label
	RelatedAccount string          // Counterparty account number; transfer legs only
}

// NewTransaction builds a transaction record stamped with the current time.
func NewTransaction(amount decimal.Decimal, kind TransactionKind, description, relatedAccount string) Transaction {
	return Transaction{
		ID:             uuid.NewString(),
		Timestamp:      time.Now().UTC(),
		Amount:         amount,
		Kind:           kind,
		Description:    description,
		RelatedAccount: relatedAccount,
	}
}
