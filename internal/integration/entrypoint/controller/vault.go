package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	usecasevault "github.com/vaultpay/backend/internal/application/usecase/vault"
	"github.com/vaultpay/backend/internal/domain/entity"
	domainerror "github.com/vaultpay/backend/internal/domain/error"
	"github.com/vaultpay/backend/internal/domain/valueobject"
	"github.com/vaultpay/backend/internal/integration/entrypoint/dto"
	"github.com/vaultpay/backend/internal/integration/entrypoint/middleware"
)

// VaultController handles vault endpoints.
type VaultController struct {
	createUseCase  *usecasevault.CreateVaultUseCase
	updateUseCase  *usecasevault.UpdateVaultUseCase
	deleteUseCase  *usecasevault.DeleteVaultUseCase
	listUseCase    *usecasevault.ListVaultsUseCase
	getUseCase     *usecasevault.GetVaultUseCase
	summaryUseCase *usecasevault.GetVaultSummaryUseCase
}

// NewVaultController creates a new vault controller instance.
func NewVaultController(
	createUseCase *usecasevault.CreateVaultUseCase,
	updateUseCase *usecasevault.UpdateVaultUseCase,
	deleteUseCase *usecasevault.DeleteVaultUseCase,
	listUseCase *usecasevault.ListVaultsUseCase,
	getUseCase *usecasevault.GetVaultUseCase,
	summaryUseCase *usecasevault.GetVaultSummaryUseCase,
) *VaultController {
	return &VaultController{
		createUseCase:  createUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		listUseCase:    listUseCase,
		getUseCase:     getUseCase,
		summaryUseCase: summaryUseCase,
	}
}

// Create handles POST /vaults requests.
func (c *VaultController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateVaultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingVaultFields),
		})
		return
	}

	accountID, err := uuid.Parse(req.BankAccountID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid bank_account_id",
			Code:  string(domainerror.ErrCodeMissingVaultFields),
		})
		return
	}

	amount, err := decimal.NewFromString(req.AllocatedAmount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "allocated_amount must be a decimal number",
			Code:  string(domainerror.ErrCodeInvalidAllocationAmount),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), usecasevault.CreateVaultInput{
		UserID:          userID,
		BankAccountID:   accountID,
		Name:            req.Name,
		Type:            req.Type,
		AllocatedAmount: amount,
		Icon:            req.Icon,
		BudgetPeriod:    entity.BudgetPeriod(req.BudgetPeriod),
		AutoRefill:      req.AutoRefill,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	vault := output.Vault
	ctx.JSON(http.StatusCreated, gin.H{
		"vault":       dto.ToVaultResponse(vault, vaultBalance(vault)),
		"transaction": dto.ToTransactionResponse(output.Transaction),
	})
}

// List handles GET /vaults requests.
func (c *VaultController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), usecasevault.ListVaultsInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"vaults": dto.ToVaultResponses(output.Vaults)})
}

// Get handles GET /vaults/:id requests.
func (c *VaultController) Get(ctx *gin.Context) {
	userID, vaultID, ok := c.pathVault(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), usecasevault.GetVaultInput{
		UserID:  userID,
		VaultID: vaultID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	recent := make([]dto.TransactionResponse, len(output.RecentTransactions))
	for i, t := range output.RecentTransactions {
		recent[i] = dto.ToTransactionResponse(t)
	}

	ctx.JSON(http.StatusOK, dto.VaultDetailResponse{
		Vault:              dto.ToVaultResponse(output.Vault, output.Balance),
		RecentTransactions: recent,
	})
}

// Update handles PUT /vaults/:id requests.
func (c *VaultController) Update(ctx *gin.Context) {
	userID, vaultID, ok := c.pathVault(ctx)
	if !ok {
		return
	}

	var req dto.UpdateVaultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingVaultFields),
		})
		return
	}

	input := usecasevault.UpdateVaultInput{
		UserID:  userID,
		VaultID: vaultID,
		Name:    req.Name,
		Type:    req.Type,
		Icon:    req.Icon,
	}
	if req.BudgetPeriod != nil {
		period := entity.BudgetPeriod(*req.BudgetPeriod)
		input.BudgetPeriod = &period
	}
	if req.AutoRefill != nil {
		input.AutoRefill = req.AutoRefill
	}
	if req.AllocatedAmount != nil {
		amount, err := decimal.NewFromString(*req.AllocatedAmount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "allocated_amount must be a decimal number",
				Code:  string(domainerror.ErrCodeInvalidAllocationAmount),
			})
			return
		}
		input.AllocatedAmount = &amount
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToVaultResponse(output.Vault, vaultBalance(output.Vault)))
}

// Delete handles DELETE /vaults/:id requests.
func (c *VaultController) Delete(ctx *gin.Context) {
	userID, vaultID, ok := c.pathVault(ctx)
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), usecasevault.DeleteVaultInput{
		UserID:  userID,
		VaultID: vaultID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	message := "Vault deleted"
	if output.Archived {
		message = "Vault archived; its transaction history remains available"
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

// Summary handles GET /accounts/:id/vault-summary requests.
func (c *VaultController) Summary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	accountID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid account id",
			Code:  string(domainerror.ErrCodeMissingAccountFields),
		})
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), usecasevault.GetVaultSummaryInput{
		UserID:    userID,
		AccountID: accountID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToVaultSummaryResponse(output))
}

// pathVault extracts the authenticated user and the :id path parameter.
func (c *VaultController) pathVault(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return uuid.Nil, uuid.Nil, false
	}

	vaultID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid vault id",
			Code:  string(domainerror.ErrCodeMissingVaultFields),
		})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, vaultID, true
}

func vaultBalance(v *entity.Vault) valueobject.VaultBalance {
	return valueobject.DeriveBalance(v.AllocatedAmount, v.SpentAmount)
}
