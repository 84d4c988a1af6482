package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountNumberAlreadyExists indicates that the account number is already registered.
	ErrAccountNumberAlreadyExists = errors.New("account number already exists")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrAccountReferenced indicates that the account still has transactions and cannot be deleted.
	ErrAccountReferenced = errors.New("account has referencing transactions")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Account holds bank account data. Balance is an integer amount of the
// smallest currency denomination and never goes below zero.
type Account struct {
	ID            int32     `json:"id"`
	BankName      string    `json:"bank_name"`
	AccountNumber int64     `json:"account_number"`
	Balance       int64     `json:"balance"`
	OwnerID       int32     `json:"owner_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	BankName      string `json:"bank_name"`
	AccountNumber int64  `json:"account_number"`
	Balance       int64  `json:"balance"`
	OwnerID       int32  `json:"owner_id"`
}

// UpdateAccountParams is the input data to update account metadata.
// Balance is deliberately absent: it is mutated only by the ledger.
type UpdateAccountParams struct {
	ID            int32  `json:"id"`
	BankName      string `json:"bank_name"`
	AccountNumber int64  `json:"account_number"`
}

// AccountWithOwner is an account joined with its owner summary.
type AccountWithOwner struct {
	Account
	Owner UserSummary `json:"user"`
}

// AccountSummary is the account data attached to enriched transactions.
type AccountSummary struct {
	ID            int32       `json:"id"`
	BankName      string      `json:"bank_name"`
	AccountNumber int64       `json:"account_number"`
	Owner         UserSummary `json:"user"`
}
