package dto

import (
	"github.com/shopspring/decimal"
)

// DepositRequest asks for a cash deposit into one account.
type DepositRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,gt=0"`
}

// WithdrawRequest asks for a cash withdrawal from one account.
type WithdrawRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,gt=0"`
}

// TransferRequest asks to move funds between two accounts.
type TransferRequest struct {
	SourceAccountNumber      string          `json:"sourceAccountNumber" binding:"required"`
	DestinationAccountNumber string          `json:"destinationAccountNumber" binding:"required"`
	Amount                   decimal.Decimal `json:"amount" binding:"required,gt=0"`
}

// TransferResponse reports the outcome of a successful transfer.
type TransferResponse struct {
	Message            string          `json:"message"`
	SourceBalance      decimal.Decimal `json:"sourceBalance"`
	DestinationBalance decimal.Decimal `json:"destinationBalance"`
}
