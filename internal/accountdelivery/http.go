// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

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

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	GetWithOwner(ctx context.Context, id int32) (domain.AccountWithOwner, error)
	List(ctx context.Context) ([]domain.Account, error)
	Update(ctx context.Context, arg domain.UpdateAccountParams) (domain.Account, error)
	Delete(ctx context.Context, id int32) error
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type createRequest struct {
	BankName      string `json:"bank_name" binding:"required"`
	AccountNumber int64  `json:"account_number" binding:"required,min=1"`
	Balance       int64  `json:"balance" binding:"min=0"`
	OwnerID       int32  `json:"owner_id" binding:"required,min=1"`
}

// Create handles http request to create account.
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

	arg := domain.CreateAccountParams{
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		Balance:       req.Balance,
		OwnerID:       req.OwnerID,
	}

	createdAccount, err := h.service.Create(ctx, arg)
	if err != nil {
		switch err {
		case domain.ErrOwnerNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrAccountNumberAlreadyExists:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: createdAccount})
}

type uriRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get account with its owner summary.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	acc, err := h.service.GetWithOwner(ctx, req.ID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: acc})
}

// List handles http request to list accounts.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	accounts, err := h.service.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accounts})
}

type updateRequest struct {
	BankName      string `json:"bank_name" binding:"required"`
	AccountNumber int64  `json:"account_number" binding:"required,min=1"`
}

// Update handles http request to update account metadata.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var req updateRequest
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

	arg := domain.UpdateAccountParams{
		ID:            uri.ID,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
	}

	updatedAccount, err := h.service.Update(ctx, arg)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrAccountNumberAlreadyExists:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: updatedAccount})
}

// Delete handles http request to delete account.
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
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrAccountReferenced:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Success: true})
}
