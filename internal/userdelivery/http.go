// Package userdelivery manages delivery layer of users.
package userdelivery

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

// Service provides service layer interface needed by user delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package userdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.UserWithProfile, error)
	Get(ctx context.Context, id int32) (domain.UserWithProfile, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, arg domain.UpdateUserParams) (domain.UserWithProfile, error)
	Delete(ctx context.Context, id int32) error
}

// Handler facilitates user delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns user handler.
func NewHandler(us Service) *Handler {
	return &Handler{
		service: us,
	}
}

type createRequest struct {
	Name           string `json:"name" binding:"required,min=3,max=30"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	IdentityType   string `json:"identity_type" binding:"required,oneof=KTP SIM PASSPORT"`
	IdentityNumber int64  `json:"identity_number" binding:"required,min=1"`
}

// Create handles http request to create a user with its profile.
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

	arg := domain.CreateUserParams{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		IdentityType:   req.IdentityType,
		IdentityNumber: req.IdentityNumber,
	}

	createdUser, err := h.service.Create(ctx, arg)
	if err != nil {
		switch err {
		case domain.ErrEmailAlreadyExists,
			domain.ErrIdentityNumberAlreadyExists:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		case domain.ErrInvalidIdentityType:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: createdUser})
}

type uriRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get a user with its profile.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	user, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: user})
}

// List handles http request to list all users.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	users, err := h.service.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: users})
}

// Update handles http request to update a user and its profile.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

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

	arg := domain.UpdateUserParams{
		ID:             uri.ID,
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		IdentityType:   req.IdentityType,
		IdentityNumber: req.IdentityNumber,
	}

	updatedUser, err := h.service.Update(ctx, arg)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrEmailAlreadyExists,
			domain.ErrIdentityNumberAlreadyExists:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		case domain.ErrInvalidIdentityType:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: updatedUser})
}

// Delete handles http request to delete a user and its profile.
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
		case domain.ErrUserNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrUserHasAccounts:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Success: true})
}
