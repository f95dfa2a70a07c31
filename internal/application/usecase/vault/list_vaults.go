package vault

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
	"github.com/vaultpay/backend/internal/domain/valueobject"
)

// VaultView is a vault together with its derived balance.
type VaultView struct {
	Vault   *entity.Vault
	Balance valueobject.VaultBalance
}

// ListVaultsInput represents the input for listing vaults.
type ListVaultsInput struct {
	UserID uuid.UUID
}

// ListVaultsOutput represents the output of listing vaults.
type ListVaultsOutput struct {
	Vaults []VaultView
}

// ListVaultsUseCase handles listing a user's active vaults with derived
// balances.
type ListVaultsUseCase struct {
	vaultRepository adapter.VaultRepository
}

// NewListVaultsUseCase creates a new ListVaultsUseCase instance.
func NewListVaultsUseCase(vaultRepository adapter.VaultRepository) *ListVaultsUseCase {
	return &ListVaultsUseCase{
		vaultRepository: vaultRepository,
	}
}

// Execute lists the user's active vaults, newest first.
func (uc *ListVaultsUseCase) Execute(ctx context.Context, input ListVaultsInput) (*ListVaultsOutput, error) {
	vaults, err := uc.vaultRepository.FindActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vaults: %w", err)
	}

	views := make([]VaultView, 0, len(vaults))
	for _, v := range vaults {
		views = append(views, VaultView{
			Vault:   v,
			Balance: valueobject.DeriveBalance(v.AllocatedAmount, v.SpentAmount),
		})
	}

	return &ListVaultsOutput{Vaults: views}, nil
}
