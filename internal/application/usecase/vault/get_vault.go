package vault

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
	"github.com/vaultpay/backend/internal/domain/valueobject"
)

const recentTransactionLimit = 10

// GetVaultInput represents the input for fetching a single vault.
type GetVaultInput struct {
	UserID  uuid.UUID
	VaultID uuid.UUID
}

// GetVaultOutput represents a vault with its derived balance and recent
// ledger entries.
type GetVaultOutput struct {
	Vault              *entity.Vault
	Balance            valueobject.VaultBalance
	RecentTransactions []*entity.Transaction
}

// GetVaultUseCase handles fetching a single vault.
type GetVaultUseCase struct {
	vaultRepository       adapter.VaultRepository
	transactionRepository adapter.TransactionRepository
}

// NewGetVaultUseCase creates a new GetVaultUseCase instance.
func NewGetVaultUseCase(
	vaultRepository adapter.VaultRepository,
	transactionRepository adapter.TransactionRepository,
) *GetVaultUseCase {
	return &GetVaultUseCase{
		vaultRepository:       vaultRepository,
		transactionRepository: transactionRepository,
	}
}

// Execute fetches the vault regardless of state so archived vaults stay
// inspectable, along with its most recent ledger entries.
func (uc *GetVaultUseCase) Execute(ctx context.Context, input GetVaultInput) (*GetVaultOutput, error) {
	vault, err := uc.vaultRepository.FindByID(ctx, input.VaultID, input.UserID)
	if err != nil {
		return nil, err
	}

	recent, err := uc.transactionRepository.FindRecentByVault(ctx, vault.ID, recentTransactionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent transactions: %w", err)
	}

	return &GetVaultOutput{
		Vault:              vault,
		Balance:            valueobject.DeriveBalance(vault.AllocatedAmount, vault.SpentAmount),
		RecentTransactions: recent,
	}, nil
}
