package userservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/mbanking/bankledger/internal/domain"
	"github.com/mbanking/bankledger/pkg/randompkg"
)

func randomUser() domain.UserWithProfile {
	id := randompkg.IntBetween(1, 100)

	return domain.UserWithProfile{
		User: domain.User{
			ID:        id,
			Name:      randompkg.Name(),
			Email:     randompkg.Email(),
			CreatedAt: time.Now().Truncate(time.Second).UTC(),
		},
		Profile: domain.Profile{
			ID:             id,
			IdentityType:   randompkg.IdentityType(),
			IdentityNumber: randompkg.IdentityNumber(),
			UserID:         id,
		},
	}
}

func TestCreate(t *testing.T) {
	testUser := randomUser()

	testArg := domain.CreateUserParams{
		Name:           testUser.Name,
		Email:          testUser.Email,
		Password:       randompkg.String(16),
		IdentityType:   testUser.Profile.IdentityType,
		IdentityNumber: testUser.Profile.IdentityNumber,
	}

	testCases := []struct {
		name          string
		arg           domain.CreateUserParams
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.UserWithProfile, err error)
	}{
		{
			name: "InvalidIdentityType",
			arg: domain.CreateUserParams{
				Name:           testArg.Name,
				Email:          testArg.Email,
				Password:       testArg.Password,
				IdentityType:   "DRIVING_LICENSE",
				IdentityNumber: testArg.IdentityNumber,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.UserWithProfile, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidIdentityType.Error())
			},
		},
		{
			name: "DuplicateEmail",
			arg:  testArg,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(testArg)).
					Times(1).
					Return(domain.UserWithProfile{}, domain.ErrEmailAlreadyExists)
			},
			checkResponse: func(res domain.UserWithProfile, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrEmailAlreadyExists.Error())
			},
		},
		{
			name: "DuplicateIdentityNumber",
			arg:  testArg,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(testArg)).
					Times(1).
					Return(domain.UserWithProfile{}, domain.ErrIdentityNumberAlreadyExists)
			},
			checkResponse: func(res domain.UserWithProfile, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrIdentityNumberAlreadyExists.Error())
			},
		},
		{
			name: "OK",
			arg:  testArg,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(testArg)).
					Times(1).
					Return(testUser, nil)
			},
			checkResponse: func(res domain.UserWithProfile, err error) {
				require.NoError(t, err)
				require.Equal(t, testUser, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo := NewMockRepo(ctrl)
			userService := New(userRepo)

			tc.buildStubs(userRepo)

			tc.checkResponse(userService.Create(context.Background(), tc.arg))
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := NewMockRepo(ctrl)
	userService := New(userRepo)

	testUser := randomUser()

	userRepo.EXPECT().Get(gomock.Any(), gomock.Eq(testUser.ID)).
		Times(1).
		Return(testUser, nil)

	got, err := userService.Get(context.Background(), testUser.ID)
	require.NoError(t, err)
	require.Equal(t, testUser, got)
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := NewMockRepo(ctrl)
	userService := New(userRepo)

	userRepo.EXPECT().Get(gomock.Any(), gomock.Eq(int32(42))).
		Times(1).
		Return(domain.UserWithProfile{}, domain.ErrUserNotFound)

	_, err := userService.Get(context.Background(), 42)
	require.EqualError(t, err, domain.ErrUserNotFound.Error())
}

func TestList(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := NewMockRepo(ctrl)
	userService := New(userRepo)

	testUsers := []domain.User{randomUser().User, randomUser().User}

	userRepo.EXPECT().List(gomock.Any()).
		Times(1).
		Return(testUsers, nil)

	got, err := userService.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, testUsers, got)
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := NewMockRepo(ctrl)
	userService := New(userRepo)

	testUser := randomUser()

	testArg := domain.UpdateUserParams{
		ID:             testUser.ID,
		Name:           testUser.Name,
		Email:          testUser.Email,
		Password:       randompkg.String(16),
		IdentityType:   testUser.Profile.IdentityType,
		IdentityNumber: testUser.Profile.IdentityNumber,
	}

	userRepo.EXPECT().Update(gomock.Any(), gomock.Eq(testArg)).
		Times(1).
		Return(testUser, nil)

	got, err := userService.Update(context.Background(), testArg)
	require.NoError(t, err)
	require.Equal(t, testUser, got)
}

func TestUpdateInvalidIdentityType(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := NewMockRepo(ctrl)
	userService := New(userRepo)

	userRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

	_, err := userService.Update(context.Background(), domain.UpdateUserParams{
		ID:           1,
		IdentityType: "UNKNOWN",
	})
	require.EqualError(t, err, domain.ErrInvalidIdentityType.Error())
}

func TestDelete(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := NewMockRepo(ctrl)
	userService := New(userRepo)

	userRepo.EXPECT().Delete(gomock.Any(), gomock.Eq(int32(1))).
		Times(1).
		Return(nil)

	require.NoError(t, userService.Delete(context.Background(), 1))
}

func TestDeleteWithAccounts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := NewMockRepo(ctrl)
	userService := New(userRepo)

	userRepo.EXPECT().Delete(gomock.Any(), gomock.Eq(int32(1))).
		Times(1).
		Return(domain.ErrUserHasAccounts)

	require.EqualError(t, userService.Delete(context.Background(), 1), domain.ErrUserHasAccounts.Error())
}
