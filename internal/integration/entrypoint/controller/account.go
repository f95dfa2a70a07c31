package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/application/usecase/account"
	"github.com/vaultpay/backend/internal/domain/entity"
	domainerror "github.com/vaultpay/backend/internal/domain/error"
	"github.com/vaultpay/backend/internal/integration/entrypoint/dto"
	"github.com/vaultpay/backend/internal/integration/entrypoint/middleware"
)

// AccountController handles bank account endpoints.
type AccountController struct {
	linkUseCase          *account.LinkAccountUseCase
	listUseCase          *account.ListAccountsUseCase
	getUseCase           *account.GetAccountUseCase
	summaryUseCase       *account.GetAccountSummaryUseCase
	setPrimaryUseCase    *account.SetPrimaryUseCase
	unlinkUseCase        *account.UnlinkAccountUseCase
	updateBalanceUseCase *account.UpdateBalanceUseCase
}

// NewAccountController creates a new account controller instance.
func NewAccountController(
	linkUseCase *account.LinkAccountUseCase,
	listUseCase *account.ListAccountsUseCase,
	getUseCase *account.GetAccountUseCase,
	summaryUseCase *account.GetAccountSummaryUseCase,
	setPrimaryUseCase *account.SetPrimaryUseCase,
	unlinkUseCase *account.UnlinkAccountUseCase,
	updateBalanceUseCase *account.UpdateBalanceUseCase,
) *AccountController {
	return &AccountController{
		linkUseCase:          linkUseCase,
		listUseCase:          listUseCase,
		getUseCase:           getUseCase,
		summaryUseCase:       summaryUseCase,
		setPrimaryUseCase:    setPrimaryUseCase,
		unlinkUseCase:        unlinkUseCase,
		updateBalanceUseCase: updateBalanceUseCase,
	}
}

// Link handles POST /accounts requests.
func (c *AccountController) Link(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.LinkAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingAccountFields),
		})
		return
	}

	balance, err := decimal.NewFromString(req.InitialBalance)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "initial_balance must be a decimal number",
			Code:  string(domainerror.ErrCodeInvalidBalanceAmount),
		})
		return
	}

	output, err := c.linkUseCase.Execute(ctx.Request.Context(), account.LinkAccountInput{
		UserID:            userID,
		AccountNumber:     req.AccountNumber,
		IFSCCode:          req.IFSCCode,
		BankName:          req.BankName,
		AccountHolderName: req.AccountHolderName,
		InitialBalance:    balance,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBankAccountResponse(output.Account))
}

// List handles GET /accounts requests.
func (c *AccountController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), account.ListAccountsInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"accounts": dto.ToBankAccountResponses(output.Accounts)})
}

// Get handles GET /accounts/:id requests.
func (c *AccountController) Get(ctx *gin.Context) {
	userID, accountID, ok := c.pathAccount(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), account.GetAccountInput{
		UserID:    userID,
		AccountID: accountID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBankAccountResponse(output.Account))
}

// Summary handles GET /accounts/:id/summary requests.
func (c *AccountController) Summary(ctx *gin.Context) {
	userID, accountID, ok := c.pathAccount(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), account.GetAccountSummaryInput{
		UserID:    userID,
		AccountID: accountID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountSummaryResponse(output))
}

// SetPrimary handles PUT /accounts/:id/primary requests.
func (c *AccountController) SetPrimary(ctx *gin.Context) {
	userID, accountID, ok := c.pathAccount(ctx)
	if !ok {
		return
	}

	output, err := c.setPrimaryUseCase.Execute(ctx.Request.Context(), account.SetPrimaryInput{
		UserID:    userID,
		AccountID: accountID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBankAccountResponse(output.Account))
}

// Unlink handles DELETE /accounts/:id requests.
func (c *AccountController) Unlink(ctx *gin.Context) {
	userID, accountID, ok := c.pathAccount(ctx)
	if !ok {
		return
	}

	err := c.unlinkUseCase.Execute(ctx.Request.Context(), account.UnlinkAccountInput{
		UserID:    userID,
		AccountID: accountID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Bank account unlinked"})
}

// UpdateBalance handles POST /accounts/:id/balance requests.
func (c *AccountController) UpdateBalance(ctx *gin.Context) {
	userID, accountID, ok := c.pathAccount(ctx)
	if !ok {
		return
	}

	var req dto.UpdateBalanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidBalanceAmount),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "amount must be a decimal number",
			Code:  string(domainerror.ErrCodeInvalidBalanceAmount),
		})
		return
	}

	output, err := c.updateBalanceUseCase.Execute(ctx.Request.Context(), account.UpdateBalanceInput{
		UserID:      userID,
		AccountID:   accountID,
		Amount:      amount,
		Type:        entity.TransactionType(req.Type),
		Description: req.Description,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BalanceAdjustmentResponse{
		Account:         dto.ToBankAccountResponse(output.Account),
		PreviousBalance: output.PreviousBalance.StringFixed(2),
		Transaction:     dto.ToTransactionResponse(output.Transaction),
	})
}

// pathAccount extracts the authenticated user and the :id path parameter.
func (c *AccountController) pathAccount(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return uuid.Nil, uuid.Nil, false
	}

	accountID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid account id",
			Code:  string(domainerror.ErrCodeMissingAccountFields),
		})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, accountID, true
}

// respondUnauthenticated reports a missing authentication context.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "Authentication required",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}
