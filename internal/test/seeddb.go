// Package test provides db seed helpers shared by integration tests.
package test

import (
	"context"
	"testing"

	"github.com/mbanking/bankledger/internal/accountrepo"
	"github.com/mbanking/bankledger/internal/domain"
	"github.com/mbanking/bankledger/internal/transactionrepo"
	"github.com/mbanking/bankledger/internal/userrepo"
	"github.com/mbanking/bankledger/pkg/dbpkg"
	"github.com/mbanking/bankledger/pkg/randompkg"
)

// SeedUser creates a random user with its profile inside a test transaction.
func SeedUser(t *testing.T, tx dbpkg.SQLInterface) domain.UserWithProfile {
	t.Helper()

	arg := domain.CreateUserParams{
		Name:           randompkg.Name(),
		Email:          randompkg.Email(),
		Password:       randompkg.String(16),
		IdentityType:   randompkg.IdentityType(),
		IdentityNumber: randompkg.IdentityNumber(),
	}

	userRepo := userrepo.NewTxRepoPGS(tx)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedAccountWithBalance creates an account with the given balance inside a test transaction.
func SeedAccountWithBalance(t *testing.T, tx dbpkg.SQLInterface, ownerID int32, balance int64) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		BankName:      randompkg.BankName(),
		AccountNumber: randompkg.AccountNumber(),
		Balance:       balance,
		OwnerID:       ownerID,
	}

	accountRepo := accountrepo.NewRepoPGS(tx)

	account, err := accountRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedTransaction creates a transaction record inside a test transaction.
func SeedTransaction(t *testing.T, tx dbpkg.SQLInterface, sourceID, destinationID int32, amount int64) domain.Transaction {
	t.Helper()

	arg := domain.CreateTransactionParams{
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		Amount:               amount,
	}

	transactionRepo := transactionrepo.NewTxRepoPGS(tx)

	transaction, err := transactionRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("transactionRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return transaction
}
