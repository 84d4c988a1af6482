// Package transactionrepo manages repository layer of ledger transactions.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/mbanking/bankledger/internal/accountrepo"
	"github.com/mbanking/bankledger/internal/domain"
	"github.com/mbanking/bankledger/pkg/dbpkg"
	"github.com/mbanking/bankledger/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewRepoPGS returns transaction RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

// NewTxRepoPGS returns transaction RepoPGS bound to an already running transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    transactions (source_account_id, destination_account_id, amount)
VALUES
    ($1, $2, $3)
RETURNING id, source_account_id, destination_account_id, amount, created_at
`

// Create inserts the transaction record and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.SourceAccountID, arg.DestinationAccountID, arg.Amount)

	var t domain.Transaction
	err := row.Scan(
		&t.ID,
		&t.SourceAccountID,
		&t.DestinationAccountID,
		&t.Amount,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx context.Context, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_source_account_id_fkey", "transactions_destination_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return t, domain.ErrInvalidAmount
			}

			switch pqErr.Code {
			case "40001", "40P01":
				return t, domain.ErrTxSerialization
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

// Transfer moves amount between two accounts as one storage transaction.
//
// Both balance mutations and the transaction insert commit together or not
// at all. Balance rows are locked in ascending account id order so that two
// opposite transfers between the same pair cannot deadlock.
func (r *RepoPGS) Transfer(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransactionTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		_ = tx.Rollback()
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)
	txRepo := NewTxRepoPGS(tx)

	var sourceAccount, destinationAccount domain.Account
	if arg.SourceAccountID < arg.DestinationAccountID {
		sourceAccount, err = accountRepo.AddBalance(ctx, -arg.Amount, arg.SourceAccountID)
		if err == nil {
			destinationAccount, err = accountRepo.AddBalance(ctx, arg.Amount, arg.DestinationAccountID)
		}
	} else {
		destinationAccount, err = accountRepo.AddBalance(ctx, arg.Amount, arg.DestinationAccountID)
		if err == nil {
			sourceAccount, err = accountRepo.AddBalance(ctx, -arg.Amount, arg.SourceAccountID)
		}
	}

	if err != nil {
		l.Error().Err(err).Send()
		return result, err
	}

	result.SourceAccount, result.DestinationAccount = sourceAccount, destinationAccount

	result.Transaction, err = txRepo.Create(ctx, arg)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TransactionTxResult{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "40001", "40P01":
				return domain.TransactionTxResult{}, domain.ErrTxSerialization
			}
		}

		return domain.TransactionTxResult{}, errorspkg.ErrInternal
	}

	return result, nil
}

const enrichedColumns = `
	t.id, t.source_account_id, t.destination_account_id, t.amount, t.created_at,
	sa.id, sa.bank_name, sa.account_number, su.id, su.name, su.email,
	da.id, da.bank_name, da.account_number, du.id, du.name, du.email
`

const enrichedJoins = `
FROM transactions t
JOIN accounts sa ON sa.id = t.source_account_id
JOIN users su ON su.id = sa.owner_id
JOIN accounts da ON da.id = t.destination_account_id
JOIN users du ON du.id = da.owner_id
`

const getQuery = `
SELECT` + enrichedColumns + enrichedJoins + `
WHERE t.id = $1
`

// Get returns the transaction with the given id enriched with both account
// and owner summaries.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.TransactionWithAccounts, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var t domain.TransactionWithAccounts

	err := scanEnriched(row, &t)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listTransactions = `
SELECT` + enrichedColumns + enrichedJoins + `
ORDER BY t.id
`

// List returns all transactions enriched, in creation order.
func (r *RepoPGS) List(ctx context.Context) ([]domain.TransactionWithAccounts, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listTransactions)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.TransactionWithAccounts{}

	for rows.Next() {
		var t domain.TransactionWithAccounts
		if err := scanEnriched(rows, &t); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const deleteQuery = `
DELETE FROM transactions
WHERE id = $1
RETURNING id
`

// Delete removes the transaction record. This is an administrative override;
// removed records are not compensated in account balances.
func (r *RepoPGS) Delete(ctx context.Context, id int64) error {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, deleteQuery, id)

	var deleted int64
	if err := row.Scan(&deleted); err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return domain.ErrTransactionNotFound
		}

		return errorspkg.ErrInternal
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEnriched(s scanner, t *domain.TransactionWithAccounts) error {
	return s.Scan(
		&t.ID,
		&t.SourceAccountID,
		&t.DestinationAccountID,
		&t.Amount,
		&t.CreatedAt,
		&t.SourceAccount.ID,
		&t.SourceAccount.BankName,
		&t.SourceAccount.AccountNumber,
		&t.SourceAccount.Owner.ID,
		&t.SourceAccount.Owner.Name,
		&t.SourceAccount.Owner.Email,
		&t.DestinationAccount.ID,
		&t.DestinationAccount.BankName,
		&t.DestinationAccount.AccountNumber,
		&t.DestinationAccount.Owner.ID,
		&t.DestinationAccount.Owner.Name,
		&t.DestinationAccount.Owner.Email,
	)
}
