// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/vaultpay/backend/internal/domain/error"
	"github.com/vaultpay/backend/internal/integration/entrypoint/dto"
)

// respondError maps a domain error to its HTTP response. Not-found maps to
// 404, validation to 400, insufficient-funds rules to 422, duplicates to 409,
// and an unrecordable payment outcome to 503 so clients know to reconcile,
// not retry.
func respondError(ctx *gin.Context, err error) {
	var (
		accountErr *domainerror.AccountError
		vaultErr   *domainerror.VaultError
		paymentErr *domainerror.PaymentError
		authErr    *domainerror.AuthError
	)

	switch {
	case errors.As(err, &accountErr):
		ctx.JSON(accountStatus(accountErr.Code), dto.ErrorResponse{
			Error: accountErr.Message,
			Code:  string(accountErr.Code),
		})
	case errors.As(err, &vaultErr):
		ctx.JSON(vaultStatus(vaultErr.Code), dto.ErrorResponse{
			Error: vaultErr.Message,
			Code:  string(vaultErr.Code),
		})
	case errors.As(err, &paymentErr):
		ctx.JSON(paymentStatus(paymentErr.Code), dto.ErrorResponse{
			Error:   paymentErr.Message,
			Code:    string(paymentErr.Code),
			Details: paymentErr.Reference,
		})
	case errors.As(err, &authErr):
		ctx.JSON(authStatus(authErr.Code), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
	case errors.Is(err, domainerror.ErrAccountNotFound),
		errors.Is(err, domainerror.ErrPrimaryAccountNotFound),
		errors.Is(err, domainerror.ErrVaultNotFound),
		errors.Is(err, domainerror.ErrTransactionNotFound),
		errors.Is(err, domainerror.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainerror.ErrInvalidDateRange):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainerror.ErrDuplicateReference):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeDuplicateReference),
		})
	case domainerror.IsRetriable(err):
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "the ledger is temporarily unavailable, retry shortly",
			Code:  string(domainerror.ErrCodeStoreTimeout),
		})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Internal server error",
		})
	}
}

func accountStatus(code domainerror.AccountErrorCode) int {
	switch code {
	case domainerror.ErrCodeAccountNotFound, domainerror.ErrCodePrimaryAccountNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidBalanceAmount, domainerror.ErrCodeMissingAccountFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInsufficientAccountBalance:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeAccountHasActiveVaults:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func vaultStatus(code domainerror.VaultErrorCode) int {
	switch code {
	case domainerror.ErrCodeVaultNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidAllocationAmount, domainerror.ErrCodeInvalidBudgetPeriod, domainerror.ErrCodeMissingVaultFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInsufficientUnallocatedBalance, domainerror.ErrCodeBelowSpentAmount:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func paymentStatus(code domainerror.PaymentErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidPaymentAmount, domainerror.ErrCodeAmountExceedsLimit, domainerror.ErrCodeMissingPaymentFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInsufficientVaultBalance:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeDuplicatePayment:
		return http.StatusConflict
	case domainerror.ErrCodePaymentStateUnknown:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func authStatus(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingAuthFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeMissingToken, domainerror.ErrCodeInvalidToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeEmailAlreadyRegistered:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
