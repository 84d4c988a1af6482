// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/mbanking/bankledger/internal/domain"
	"github.com/mbanking/bankledger/pkg/dbpkg"
	"github.com/mbanking/bankledger/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE id = $2
RETURNING id, bank_name, account_number, balance, owner_id, created_at
`

// AddBalance applies amount (which may be negative) to the account's balance
// and returns the changed account. The accounts_balance_check constraint makes
// the update fail atomically when the result would be negative, so the
// read-then-write lost-update race cannot drive a balance below zero.
func (r *RepoPGS) AddBalance(ctx context.Context, amount int64, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, amount, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.BankName,
		&a.AccountNumber,
		&a.Balance,
		&a.OwnerID,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}

			switch pqErr.Code {
			case "40001", "40P01": // serialization_failure, deadlock_detected
				return a, domain.ErrTxSerialization
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const createQuery = `
INSERT INTO
    accounts (bank_name, account_number, balance, owner_id)
VALUES
    ($1, $2, $3, $4)
RETURNING id, bank_name, account_number, balance, owner_id, created_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.BankName, arg.AccountNumber, arg.Balance, arg.OwnerID)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.BankName,
		&a.AccountNumber,
		&a.Balance,
		&a.OwnerID,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_owner_id_fkey":
				return a, domain.ErrOwnerNotFound
			case "accounts_account_number_key":
				return a, domain.ErrAccountNumberAlreadyExists
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, bank_name, account_number, balance, owner_id, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.BankName,
		&a.AccountNumber,
		&a.Balance,
		&a.OwnerID,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getByNumberQuery = `
SELECT
	id, bank_name, account_number, balance, owner_id, created_at
FROM accounts
WHERE account_number = $1
`

// GetByNumber returns the account with the given account number.
func (r *RepoPGS) GetByNumber(ctx context.Context, accountNumber int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByNumberQuery, accountNumber)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.BankName,
		&a.AccountNumber,
		&a.Balance,
		&a.OwnerID,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getWithOwnerQuery = `
SELECT
	a.id, a.bank_name, a.account_number, a.balance, a.owner_id, a.created_at,
	u.id, u.name, u.email
FROM accounts a
JOIN users u ON u.id = a.owner_id
WHERE a.id = $1
`

// GetWithOwner returns the account with the given id joined with its owner summary.
func (r *RepoPGS) GetWithOwner(ctx context.Context, id int32) (domain.AccountWithOwner, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getWithOwnerQuery, id)

	var a domain.AccountWithOwner

	err := row.Scan(
		&a.ID,
		&a.BankName,
		&a.AccountNumber,
		&a.Balance,
		&a.OwnerID,
		&a.CreatedAt,
		&a.Owner.ID,
		&a.Owner.Name,
		&a.Owner.Email,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT
	id, bank_name, account_number, balance, owner_id, created_at
FROM accounts
ORDER BY id
`

// List returns all accounts in creation order.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.BankName, &a.AccountNumber, &a.Balance, &a.OwnerID, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateQuery = `
UPDATE accounts
SET bank_name = $1, account_number = $2
WHERE id = $3
RETURNING id, bank_name, account_number, balance, owner_id, created_at
`

// Update changes the account metadata and returns the updated account.
// Balance is left untouched: only the ledger mutates it.
func (r *RepoPGS) Update(ctx context.Context, arg domain.UpdateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery, arg.BankName, arg.AccountNumber, arg.ID)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.BankName,
		&a.AccountNumber,
		&a.Balance,
		&a.OwnerID,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_account_number_key" {
				return a, domain.ErrAccountNumberAlreadyExists
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const deleteQuery = `
DELETE FROM accounts
WHERE id = $1
RETURNING id
`

// Delete removes the account with the given id. Accounts referenced by
// transactions are rejected so committed ledger history stays resolvable.
func (r *RepoPGS) Delete(ctx context.Context, id int32) error {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, deleteQuery, id)

	var deleted int32
	if err := row.Scan(&deleted); err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_source_account_id_fkey", "transactions_destination_account_id_fkey":
				return domain.ErrAccountReferenced
			}
		}

		return errorspkg.ErrInternal
	}

	return nil
}
