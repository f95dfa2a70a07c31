package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/application/usecase/payment"
	"github.com/vaultpay/backend/internal/domain/entity"
	domainerror "github.com/vaultpay/backend/internal/domain/error"
	"github.com/vaultpay/backend/internal/integration/entrypoint/dto"
	"github.com/vaultpay/backend/internal/integration/entrypoint/middleware"
)

// PaymentController handles payment and transaction endpoints.
type PaymentController struct {
	makePaymentUseCase *payment.MakePaymentUseCase
	listUseCase        *payment.ListTransactionsUseCase
	getUseCase         *payment.GetTransactionUseCase
}

// NewPaymentController creates a new payment controller instance.
func NewPaymentController(
	makePaymentUseCase *payment.MakePaymentUseCase,
	listUseCase *payment.ListTransactionsUseCase,
	getUseCase *payment.GetTransactionUseCase,
) *PaymentController {
	return &PaymentController{
		makePaymentUseCase: makePaymentUseCase,
		listUseCase:        listUseCase,
		getUseCase:         getUseCase,
	}
}

// MakePayment handles POST /payments requests. A gateway decline still
// returns 201: the transaction's status field carries the real outcome.
func (c *PaymentController) MakePayment(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.MakePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return
	}

	vaultID, err := uuid.Parse(req.VaultID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid vault_id",
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "amount must be a decimal number",
			Code:  string(domainerror.ErrCodeInvalidPaymentAmount),
		})
		return
	}

	output, err := c.makePaymentUseCase.Execute(ctx.Request.Context(), payment.MakePaymentInput{
		UserID:         userID,
		VaultID:        vaultID,
		Amount:         amount,
		IdempotencyKey: req.IdempotencyKey,
		Description:    req.Description,
		RecipientPhone: req.RecipientPhone,
		RecipientUPI:   req.RecipientUPI,
		RecipientID:    req.RecipientID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	status := http.StatusCreated
	if output.Replayed {
		status = http.StatusOK
	}
	ctx.JSON(status, dto.ToPaymentResponse(output))
}

// ListTransactions handles GET /transactions requests.
func (c *PaymentController) ListTransactions(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	filter := adapter.TransactionFilter{UserID: userID}

	if raw := ctx.Query("vault_id"); raw != "" {
		vaultID, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid vault_id"})
			return
		}
		filter.VaultID = &vaultID
	}
	if raw := ctx.Query("status"); raw != "" {
		status := entity.TransactionStatus(raw)
		switch status {
		case entity.TransactionStatusPending, entity.TransactionStatusCompleted, entity.TransactionStatusFailed:
			filter.Status = &status
		default:
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid status"})
			return
		}
	}
	startDate, endDate, ok := parseDateRange(ctx)
	if !ok {
		return
	}
	filter.StartDate = startDate
	filter.EndDate = endDate

	pagination := adapter.TransactionPagination{
		Limit:  intQuery(ctx, "limit", 0),
		Offset: intQuery(ctx, "offset", 0),
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), payment.ListTransactionsInput{
		Filter:     filter,
		Pagination: pagination,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Result))
}

// GetTransaction handles GET /transactions/:id requests.
func (c *PaymentController) GetTransaction(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid transaction id",
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), payment.GetTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// parseDateRange reads optional start_date / end_date query parameters
// (YYYY-MM-DD). The end date is inclusive of its whole day.
func parseDateRange(ctx *gin.Context) (*time.Time, *time.Time, bool) {
	const layout = "2006-01-02"

	var start, end *time.Time
	if raw := ctx.Query("start_date"); raw != "" {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "start_date must be YYYY-MM-DD"})
			return nil, nil, false
		}
		start = &parsed
	}
	if raw := ctx.Query("end_date"); raw != "" {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "end_date must be YYYY-MM-DD"})
			return nil, nil, false
		}
		endOfDay := parsed.Add(24*time.Hour - time.Nanosecond)
		end = &endOfDay
	}
	if start != nil && end != nil && end.Before(*start) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "end_date is before start_date"})
		return nil, nil, false
	}
	return start, end, true
}

// intQuery reads an integer query parameter with a fallback.
func intQuery(ctx *gin.Context, name string, fallback int) int {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
