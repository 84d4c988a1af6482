// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/mbanking/bankledger/internal/domain"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.UserWithProfile, error)
	Get(ctx context.Context, id int32) (domain.UserWithProfile, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, arg domain.UpdateUserParams) (domain.UserWithProfile, error)
	Delete(ctx context.Context, id int32) error
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New return user service struct to manage user bussines logic.
func New(ur Repo) *Service {
	return &Service{
		repo: ur,
	}
}

func validIdentityType(identityType string) bool {
	for _, t := range domain.IdentityTypes {
		if t == identityType {
			return true
		}
	}

	return false
}

// Create creates and returns the user together with its profile.
func (s *Service) Create(ctx context.Context, arg domain.CreateUserParams) (domain.UserWithProfile, error) {
	if !validIdentityType(arg.IdentityType) {
		return domain.UserWithProfile{}, domain.ErrInvalidIdentityType
	}

	user, err := s.repo.Create(ctx, arg)
	if err != nil {
		return user, err
	}

	return user, nil
}

// Get returns the user with its profile for the given user ID.
func (s *Service) Get(ctx context.Context, id int32) (domain.UserWithProfile, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return user, err
	}

	return user, nil
}

// List returns all users in creation order.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return users, nil
}

// Update updates the user and its profile.
func (s *Service) Update(ctx context.Context, arg domain.UpdateUserParams) (domain.UserWithProfile, error) {
	if !validIdentityType(arg.IdentityType) {
		return domain.UserWithProfile{}, domain.ErrInvalidIdentityType
	}

	user, err := s.repo.Update(ctx, arg)
	if err != nil {
		return user, err
	}

	return user, nil
}

// Delete removes the user and its profile unless the user still owns accounts.
func (s *Service) Delete(ctx context.Context, id int32) error {
	return s.repo.Delete(ctx, id)
}
