package domain

import (
	"errors"
	"time"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInvalidAmount indicates a zero or negative transfer amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrSelfTransfer indicates that source and destination are the same account.
	ErrSelfTransfer = errors.New("source and destination accounts must differ")
	// ErrTxSerialization indicates a transient serialization or deadlock
	// failure; the transfer may be retried.
	ErrTxSerialization = errors.New("transaction serialization failure")
)

// Transaction records a committed transfer between two accounts.
// A committed record is immutable.
type Transaction struct {
	ID                   int64     `json:"id"`
	SourceAccountID      int32     `json:"source_account_id"`
	DestinationAccountID int32     `json:"destination_account_id"`
	Amount               int64     `json:"amount"` // always positive
	CreatedAt            time.Time `json:"created_at"`
}

// CreateTransactionParams is the input data for the transfer transaction.
type CreateTransactionParams struct {
	SourceAccountID      int32 `json:"source_account_id"`
	DestinationAccountID int32 `json:"destination_account_id"`
	Amount               int64 `json:"amount"`
}

// TransactionTxResult is the result of the transfer transaction.
type TransactionTxResult struct {
	Transaction        Transaction `json:"transaction"`
	SourceAccount      Account     `json:"source_account"`
	DestinationAccount Account     `json:"destination_account"`
}

// TransactionWithAccounts is a transaction enriched with both account
// summaries and their owning users.
type TransactionWithAccounts struct {
	Transaction
	SourceAccount      AccountSummary `json:"source"`
	DestinationAccount AccountSummary `json:"destination"`
}
