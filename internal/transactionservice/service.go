// Package transactionservice manages business logic layer of ledger transactions.
package transactionservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mbanking/bankledger/internal/domain"
	"github.com/mbanking/bankledger/pkg/errorspkg"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Transfer(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionTxResult, error)
	Get(ctx context.Context, id int64) (domain.TransactionWithAccounts, error)
	List(ctx context.Context) ([]domain.TransactionWithAccounts, error)
	Delete(ctx context.Context, id int64) error
}

// AccountService provides the account lookups needed to validate transfers.
type AccountService interface {
	Get(ctx context.Context, id int32) (domain.Account, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo           Repo
	accountService AccountService
	maxRetries     int
}

// New returns transaction service struct to manage ledger bussines logic.
// maxRetries bounds the transparent retries on transient storage conflicts.
func New(tr Repo, as AccountService, maxRetries int) *Service {
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &Service{
		repo:           tr,
		accountService: as,
		maxRetries:     maxRetries,
	}
}

func (s *Service) validRequest(ctx context.Context, arg domain.CreateTransactionParams) error {
	l := zerolog.Ctx(ctx)

	if arg.Amount <= 0 {
		l.Info().
			Int32("source_account_id", arg.SourceAccountID).
			Int64("amount", arg.Amount).
			Msg("rejected transfer amount")

		return domain.ErrInvalidAmount
	}

	sourceAccount, err := s.accountService.Get(ctx, arg.SourceAccountID)
	if err != nil {
		l.Info().Err(err).Int32("source_account_id", arg.SourceAccountID).Send()
		return err
	}

	if _, err := s.accountService.Get(ctx, arg.DestinationAccountID); err != nil {
		l.Info().Err(err).Int32("destination_account_id", arg.DestinationAccountID).Send()
		return err
	}

	if arg.SourceAccountID == arg.DestinationAccountID {
		return domain.ErrSelfTransfer
	}

	// Early check on a possibly stale balance. The authoritative check is
	// the conditional balance update inside the repo transaction.
	if sourceAccount.Balance < arg.Amount {
		return domain.ErrInsufficientBalance
	}

	return nil
}

// Transfer validates the transfer request and then executes it atomically.
//
// Transient serialization and deadlock failures are retried a bounded number
// of times; once the budget is exhausted the caller sees ErrUnavailable.
func (s *Service) Transfer(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionTxResult, error) {
	l := zerolog.Ctx(ctx)

	if err := s.validRequest(ctx, arg); err != nil {
		return domain.TransactionTxResult{}, err
	}

	var (
		result domain.TransactionTxResult
		err    error
	)

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		result, err = s.repo.Transfer(ctx, arg)
		if err != domain.ErrTxSerialization {
			return result, err
		}

		l.Warn().
			Int("attempt", attempt).
			Int32("source_account_id", arg.SourceAccountID).
			Int32("destination_account_id", arg.DestinationAccountID).
			Int64("amount", arg.Amount).
			Msg("transfer serialization conflict")
	}

	return domain.TransactionTxResult{}, errorspkg.ErrUnavailable
}

// Get returns the enriched transaction with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.TransactionWithAccounts, error) {
	transaction, err := s.repo.Get(ctx, id)
	if err != nil {
		return transaction, err
	}

	return transaction, nil
}

// List returns all enriched transactions in creation order.
func (s *Service) List(ctx context.Context) ([]domain.TransactionWithAccounts, error) {
	transactions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// Delete removes the transaction record with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
