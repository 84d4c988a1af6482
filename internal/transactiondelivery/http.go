// Package transactiondelivery manages delivery layer of ledger transactions.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/mbanking/bankledger/internal/domain"
	"github.com/mbanking/bankledger/pkg/errorspkg"
	"github.com/mbanking/bankledger/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Transfer(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionTxResult, error)
	Get(ctx context.Context, id int64) (domain.TransactionWithAccounts, error)
	List(ctx context.Context) ([]domain.TransactionWithAccounts, error)
	Delete(ctx context.Context, id int64) error
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

type createRequest struct {
	SourceAccountID      int32 `json:"source_account_id" binding:"required,min=1"`
	DestinationAccountID int32 `json:"destination_account_id" binding:"required,min=1"`
	Amount               int64 `json:"amount" binding:"required,gt=0"`
}

// Create handles http request to transfer funds between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	arg := domain.CreateTransactionParams{
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
		Amount:               req.Amount,
	}

	result, err := h.service.Transfer(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrInvalidAmount,
			domain.ErrSelfTransfer:
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))

			return
		case domain.ErrInsufficientBalance:
			gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))

			return
		case errorspkg.ErrUnavailable:
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Success: true, Data: result})
}

type uriRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get an enriched transaction.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	transaction, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrTransactionNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transaction})
}

// List handles http request to list all enriched transactions in creation order.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	transactions, err := h.service.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactions})
}

// Delete handles http request to remove a transaction record.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if err := h.service.Delete(ctx, req.ID); err != nil {
		if err == domain.ErrTransactionNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Success: true})
}
