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
	"github.com/mbanking/bankledger/pkg/randompkg"
)

func TestCreateAccountAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	user := test.SeedUser(t, server.DB)
	accountNumber := randompkg.AccountNumber()

	requestBody := gin.H{
		"bank_name":      randompkg.BankName(),
		"account_number": accountNumber,
		"balance":        1000,
		"owner_id":       user.ID,
	}

	body, err := json.Marshal(requestBody)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	recorder := httptest.NewRecorder()

	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var res struct {
		Data domain.Account `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

	require.NotZero(t, res.Data.ID)
	require.Equal(t, accountNumber, res.Data.AccountNumber)
	require.Equal(t, int64(1000), res.Data.Balance)
	require.Equal(t, user.ID, res.Data.OwnerID)

	t.Run("DuplicateAccountNumber", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
		recorder := httptest.NewRecorder()

		server.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("OwnerNotFound", func(t *testing.T) {
		missing := gin.H{
			"bank_name":      randompkg.BankName(),
			"account_number": randompkg.AccountNumber(),
			"balance":        1000,
			"owner_id":       user.ID + 1,
		}

		body, err := json.Marshal(missing)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
		recorder := httptest.NewRecorder()

		server.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestGetAccountAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	user := test.SeedUser(t, server.DB)
	account := test.SeedAccountWithBalance(t, server.DB, user.ID, 1000)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/accounts/%d", account.ID), nil)
	recorder := httptest.NewRecorder()

	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var res struct {
		Data domain.AccountWithOwner `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

	require.Equal(t, account.ID, res.Data.ID)
	require.Equal(t, account.Balance, res.Data.Balance)
	require.Equal(t, user.ID, res.Data.Owner.ID)
	require.Equal(t, user.Name, res.Data.Owner.Name)
}

func TestDeleteAccountAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	user := test.SeedUser(t, server.DB)
	account1 := test.SeedAccountWithBalance(t, server.DB, user.ID, 1000)
	account2 := test.SeedAccountWithBalance(t, server.DB, user.ID, 1000)

	test.SeedTransaction(t, server.DB, account1.ID, account2.ID, 100)

	t.Run("Referenced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/accounts/%d", account1.ID), nil)
		recorder := httptest.NewRecorder()

		server.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("OK", func(t *testing.T) {
		account3 := test.SeedAccountWithBalance(t, server.DB, user.ID, 0)

		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/accounts/%d", account3.ID), nil)
		recorder := httptest.NewRecorder()

		server.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
	})
}
