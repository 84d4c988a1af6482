//go:build integration

package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mbanking/bankledger/internal/domain"
	"github.com/mbanking/bankledger/internal/integrationtest"
	"github.com/mbanking/bankledger/internal/test"
)

func TestCreateTransactionAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	user1 := test.SeedUser(t, server.DB)
	account1 := test.SeedAccountWithBalance(t, server.DB, user1.ID, 1000)
	user2 := test.SeedUser(t, server.DB)
	account2 := test.SeedAccountWithBalance(t, server.DB, user2.ID, 1000)

	testCases := []struct {
		name           string
		requestBody    gin.H
		wantStatusCode int
	}{
		{
			name: "OK",
			requestBody: gin.H{
				"source_account_id":      account1.ID,
				"destination_account_id": account2.ID,
				"amount":                 100,
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "ZeroAmount",
			requestBody: gin.H{
				"source_account_id":      account1.ID,
				"destination_account_id": account2.ID,
				"amount":                 0,
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "SelfTransfer",
			requestBody: gin.H{
				"source_account_id":      account1.ID,
				"destination_account_id": account1.ID,
				"amount":                 100,
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "SourceAccountNotFound",
			requestBody: gin.H{
				"source_account_id":      account2.ID + 1,
				"destination_account_id": account2.ID,
				"amount":                 100,
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "InsufficientBalance",
			requestBody: gin.H{
				"source_account_id":      account1.ID,
				"destination_account_id": account2.ID,
				"amount":                 1_000_000,
			},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(body))
			recorder := httptest.NewRecorder()

			server.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.wantStatusCode != http.StatusCreated {
				return
			}

			var res struct {
				Success bool                       `json:"success"`
				Data    domain.TransactionTxResult `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
			require.True(t, res.Success)
			require.NotZero(t, res.Data.Transaction.ID)
			require.Equal(t, account1.Balance-100, res.Data.SourceAccount.Balance)
			require.Equal(t, account2.Balance+100, res.Data.DestinationAccount.Balance)
		})
	}
}

func TestGetTransactionAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	user1 := test.SeedUser(t, server.DB)
	account1 := test.SeedAccountWithBalance(t, server.DB, user1.ID, 1000)
	user2 := test.SeedUser(t, server.DB)
	account2 := test.SeedAccountWithBalance(t, server.DB, user2.ID, 1000)

	seeded := test.SeedTransaction(t, server.DB, account1.ID, account2.ID, 250)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/transactions/%d", seeded.ID), nil)
	recorder := httptest.NewRecorder()

	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var res struct {
		Data domain.TransactionWithAccounts `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

	require.Equal(t, seeded.ID, res.Data.ID)
	require.Equal(t, int64(250), res.Data.Amount)
	require.Equal(t, account1.ID, res.Data.SourceAccount.ID)
	require.Equal(t, account1.AccountNumber, res.Data.SourceAccount.AccountNumber)
	require.Equal(t, user1.Name, res.Data.SourceAccount.Owner.Name)
	require.Equal(t, account2.ID, res.Data.DestinationAccount.ID)
	require.Equal(t, user2.Email, res.Data.DestinationAccount.Owner.Email)

	t.Run("NotFound", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/transactions/%d", seeded.ID+1), nil)
		recorder := httptest.NewRecorder()

		server.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestListTransactionsAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	user1 := test.SeedUser(t, server.DB)
	account1 := test.SeedAccountWithBalance(t, server.DB, user1.ID, 1000)
	user2 := test.SeedUser(t, server.DB)
	account2 := test.SeedAccountWithBalance(t, server.DB, user2.ID, 1000)

	seeded := []domain.Transaction{
		test.SeedTransaction(t, server.DB, account1.ID, account2.ID, 100),
		test.SeedTransaction(t, server.DB, account2.ID, account1.ID, 200),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	recorder := httptest.NewRecorder()

	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var res struct {
		Data []domain.TransactionWithAccounts `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
	require.Len(t, res.Data, len(seeded))

	for i := range seeded {
		require.Equal(t, seeded[i].ID, res.Data[i].ID)
		require.Equal(t, seeded[i].Amount, res.Data[i].Amount)
	}
}

func TestDeleteTransactionAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	user1 := test.SeedUser(t, server.DB)
	account1 := test.SeedAccountWithBalance(t, server.DB, user1.ID, 1000)
	user2 := test.SeedUser(t, server.DB)
	account2 := test.SeedAccountWithBalance(t, server.DB, user2.ID, 1000)

	seeded := test.SeedTransaction(t, server.DB, account1.ID, account2.ID, 100)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/transactions/%d", seeded.ID), nil)
	recorder := httptest.NewRecorder()

	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/transactions/%d", seeded.ID), nil)
	recorder = httptest.NewRecorder()

	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusNotFound, recorder.Code)
}
