package dto

import (
	"time"

	"github.com/bankcore/banking/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
// AccountType is matched case-insensitively against the known types.
type CreateAccountRequest struct {
	Owner       string `json:"owner" binding:"required"`
	AccountType string `json:"accountType" binding:"required"` // "Savings" or "Checking"
}

// TransactionResponse defines the data returned for one history entry.
type TransactionResponse struct {
	ID             string                 `json:"id"`
	Timestamp      time.Time              `json:"timestamp"`
	Amount         decimal.Decimal        `json:"amount"`
	Kind           domain.TransactionKind `json:"kind"`
	Description    string                 `json:"description"`
	RelatedAccount string                 `json:"relatedAccount,omitempty"` // Transfer legs only
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountNumber string                `json:"accountNumber"`
	Owner         string                `json:"owner"`
	Type          domain.AccountType    `json:"type"`
	Balance       decimal.Decimal       `json:"balance"`
	Transactions  []TransactionResponse `json:"transactions"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts an account snapshot to an AccountResponse DTO.
func ToAccountResponse(snap domain.AccountSnapshot) AccountResponse {
	txns := make([]TransactionResponse, len(snap.Transactions))
	for i, txn := range snap.Transactions {
		txns[i] = TransactionResponse{
			ID:             txn.ID,
			Timestamp:      txn.Timestamp,
			Amount:         txn.Amount,
			Kind:           txn.Kind,
			Description:    txn.Description,
			RelatedAccount: txn.RelatedAccount,
		}
	}
	return AccountResponse{
		AccountNumber: snap.AccountNumber,
		Owner:         snap.Owner,
		Type:          snap.Type,
		Balance:       snap.Balance,
		Transactions:  txns,
	}
}

// ToListAccountsResponse converts account handles to the list DTO. Each
// account is snapshotted individually; the list is not a global snapshot.
func ToListAccountsResponse(accounts []*domain.Account) ListAccountsResponse {
	res := ListAccountsResponse{Accounts: make([]AccountResponse, len(accounts))}
	for i, account := range accounts {
		res.Accounts[i] = ToAccountResponse(account.Snapshot())
	}
	return res
}
