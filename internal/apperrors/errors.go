package apperrors

import "errors"

// ErrNotFound indicates that a requested account could not be found.
var ErrNotFound = errors.New("account not found")

// ErrDuplicate indicates that an attempt was made to register an account
// number that already exists.
var ErrDuplicate = errors.New("account number already exists")

// ErrInvalidAmount indicates that a monetary amount given to an operation
// was zero or negative.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrInsufficientFunds indicates that a debit would drive an account's
// balance negative.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrSameAccount indicates that a transfer named the same account as both
// source and destination.
var ErrSameAccount = errors.New("cannot transfer to the same account")

// ErrInvalidReference indicates that a required account handle was nil.
var ErrInvalidReference = errors.New("invalid account reference")
