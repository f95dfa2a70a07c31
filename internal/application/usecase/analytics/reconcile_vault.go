package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
)

// ReconcileVaultInput represents the input for a drift check. VaultID nil
// checks every active vault of the user.
type ReconcileVaultInput struct {
	UserID  uuid.UUID
	VaultID *uuid.UUID
}

// VaultReconciliation compares one vault's cached spent amount against the
// sum of its completed debit entries. The ledger sum is ground truth.
type VaultReconciliation struct {
	VaultID      uuid.UUID
	VaultName    string
	CachedSpent  decimal.Decimal
	LedgerSpent  decimal.Decimal
	Drift        decimal.Decimal // cached minus ledger; zero when consistent
	IsConsistent bool
}

// ReconcileVaultOutput represents the output of a drift check.
type ReconcileVaultOutput struct {
	Results       []VaultReconciliation
	DriftDetected bool
	CheckedVaults int
}

// ReconcileVaultUseCase detects drift between the cached spent figures and
// the append-only ledger. It only reports; it never repairs, because a repair
// would overwrite the evidence needed to find the faulty write path.
type ReconcileVaultUseCase struct {
	vaultRepository       adapter.VaultRepository
	transactionRepository adapter.TransactionRepository
}

// NewReconcileVaultUseCase creates a new ReconcileVaultUseCase instance.
func NewReconcileVaultUseCase(
	vaultRepository adapter.VaultRepository,
	transactionRepository adapter.TransactionRepository,
) *ReconcileVaultUseCase {
	return &ReconcileVaultUseCase{
		vaultRepository:       vaultRepository,
		transactionRepository: transactionRepository,
	}
}

// Execute recomputes spent amounts from the ledger and reports mismatches.
// Running it twice without an intervening mutation yields identical results.
func (uc *ReconcileVaultUseCase) Execute(ctx context.Context, input ReconcileVaultInput) (*ReconcileVaultOutput, error) {
	vaults, err := uc.targetVaults(ctx, input)
	if err != nil {
		return nil, err
	}

	output := &ReconcileVaultOutput{CheckedVaults: len(vaults)}
	for _, v := range vaults {
		ledgerSpent, err := uc.transactionRepository.SumCompletedDebits(ctx, v.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to sum ledger debits for vault %s: %w", v.ID, err)
		}

		drift := v.SpentAmount.Sub(ledgerSpent)
		result := VaultReconciliation{
			VaultID:      v.ID,
			VaultName:    v.Name,
			CachedSpent:  v.SpentAmount,
			LedgerSpent:  ledgerSpent,
			Drift:        drift,
			IsConsistent: drift.IsZero(),
		}
		output.Results = append(output.Results, result)

		if !result.IsConsistent {
			output.DriftDetected = true
			slog.Warn("Vault spent amount drifted from ledger",
				"vaultID", v.ID,
				"cached", v.SpentAmount,
				"ledger", ledgerSpent,
			)
		}
	}

	return output, nil
}

func (uc *ReconcileVaultUseCase) targetVaults(ctx context.Context, input ReconcileVaultInput) ([]*entity.Vault, error) {
	if input.VaultID != nil {
		vault, err := uc.vaultRepository.FindByID(ctx, *input.VaultID, input.UserID)
		if err != nil {
			return nil, err
		}
		return []*entity.Vault{vault}, nil
	}

	vaults, err := uc.vaultRepository.FindActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vaults: %w", err)
	}
	return vaults, nil
}
