// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/mbanking/bankledger/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	GetWithOwner(ctx context.Context, id int32) (domain.AccountWithOwner, error)
	List(ctx context.Context) ([]domain.Account, error)
	Update(ctx context.Context, arg domain.UpdateAccountParams) (domain.Account, error)
	Delete(ctx context.Context, id int32) error
}

// UserGetter resolves account owners in the user service layer.
type UserGetter interface {
	Get(ctx context.Context, id int32) (domain.UserWithProfile, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo  Repo
	users UserGetter
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo, ug UserGetter) *Service {
	return &Service{repo: ar, users: ug}
}

// Create creates and returns the account after checking the owner exists.
func (s *Service) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	if _, err := s.users.Get(ctx, arg.OwnerID); err != nil {
		if err == domain.ErrUserNotFound {
			return domain.Account{}, domain.ErrOwnerNotFound
		}

		return domain.Account{}, err
	}

	account, err := s.repo.Create(ctx, arg)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// GetWithOwner returns the account joined with its owner summary.
func (s *Service) GetWithOwner(ctx context.Context, id int32) (domain.AccountWithOwner, error) {
	account, err := s.repo.GetWithOwner(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns all accounts in creation order.
func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// Update changes account metadata and returns the updated account.
func (s *Service) Update(ctx context.Context, arg domain.UpdateAccountParams) (domain.Account, error) {
	account, err := s.repo.Update(ctx, arg)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Delete removes the account unless transactions still reference it.
func (s *Service) Delete(ctx context.Context, id int32) error {
	return s.repo.Delete(ctx, id)
}
