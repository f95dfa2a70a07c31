// Package vault contains the allocation engine use cases.
package vault

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
	domainerror "github.com/vaultpay/backend/internal/domain/error"
	"github.com/vaultpay/backend/internal/integration/persistence"
	"github.com/vaultpay/backend/internal/integration/persistence/model"
	"github.com/vaultpay/backend/test/integration/mock"
)

type vaultEnv struct {
	ledger    adapter.Ledger
	userID    uuid.UUID
	accountID uuid.UUID
}

// newVaultEnv seeds one user with an account holding the given balance.
func newVaultEnv(t *testing.T, balance int64) *vaultEnv {
	t.Helper()
	ctx := context.Background()

	db := mock.NewDB(t,
		&model.UserModel{},
		&model.BankAccountModel{},
		&model.VaultModel{},
		&model.TransactionModel{},
	)
	ledger := persistence.NewLedgerStore(db, 0)

	user := entity.NewUser("Ravi Menon", "ravi@example.com", "+918765432109", "hashed")
	if err := persistence.NewUserRepository(db).Create(ctx, user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	account := entity.NewBankAccount(user.ID, "9876543210", "ICIC0000456", "ICICI", "Ravi Menon", decimal.NewFromInt(balance), true)
	if err := ledger.Accounts().Create(ctx, account); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	return &vaultEnv{ledger: ledger, userID: user.ID, accountID: account.ID}
}

func (e *vaultEnv) createInput(name string, amount int64) CreateVaultInput {
	return CreateVaultInput{
		UserID:          e.userID,
		BankAccountID:   e.accountID,
		Name:            name,
		Type:            "spending",
		AllocatedAmount: decimal.NewFromInt(amount),
	}
}

func TestCreateVault(t *testing.T) {
	t.Run("allocates from the unallocated pool and records a debit", func(t *testing.T) {
		env := newVaultEnv(t, 1000)
		uc := NewCreateVaultUseCase(env.ledger)

		out, err := uc.Execute(context.Background(), env.createInput("Groceries", 400))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.Vault.State != entity.VaultStateActive {
			t.Errorf("expected active vault, got %s", out.Vault.State)
		}
		if out.Vault.Icon != entity.DefaultVaultIcon {
			t.Errorf("expected default icon, got %s", out.Vault.Icon)
		}
		if out.Transaction.Category != entity.CategoryVaultAllocation {
			t.Errorf("expected allocation category, got %s", out.Transaction.Category)
		}
		if out.Transaction.Type != entity.TransactionTypeDebit {
			t.Errorf("allocation moves money out of the unallocated pool, got %s", out.Transaction.Type)
		}
		if out.Transaction.Status != entity.TransactionStatusCompleted {
			t.Errorf("expected completed allocation entry, got %s", out.Transaction.Status)
		}
	})

	t.Run("rejects allocation above the unallocated balance", func(t *testing.T) {
		env := newVaultEnv(t, 1000)
		uc := NewCreateVaultUseCase(env.ledger)
		ctx := context.Background()

		if _, err := uc.Execute(ctx, env.createInput("Rent", 700)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// 300 unallocated left; 301 must not fit.
		_, err := uc.Execute(ctx, env.createInput("Travel", 301))
		if !errors.Is(err, domainerror.ErrInsufficientUnallocatedBalance) {
			t.Fatalf("expected insufficient unallocated balance, got %v", err)
		}

		if _, err := uc.Execute(ctx, env.createInput("Travel", 300)); err != nil {
			t.Fatalf("allocating exactly the headroom must succeed, got %v", err)
		}
	})

	t.Run("rejects non-positive allocation", func(t *testing.T) {
		env := newVaultEnv(t, 1000)
		uc := NewCreateVaultUseCase(env.ledger)

		_, err := uc.Execute(context.Background(), env.createInput("Empty", 0))
		if !errors.Is(err, domainerror.ErrInvalidAllocationAmount) {
			t.Fatalf("expected invalid allocation error, got %v", err)
		}
	})

	t.Run("rejects an unknown budget period", func(t *testing.T) {
		env := newVaultEnv(t, 1000)
		uc := NewCreateVaultUseCase(env.ledger)

		input := env.createInput("Oddball", 100)
		input.BudgetPeriod = "fortnightly"
		_, err := uc.Execute(context.Background(), input)
		if !errors.Is(err, domainerror.ErrInvalidBudgetPeriod) {
			t.Fatalf("expected invalid budget period, got %v", err)
		}
	})
}

func TestUpdateVault_Resize(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*vaultEnv, *entity.Vault) {
		env := newVaultEnv(t, 1000)
		out, err := NewCreateVaultUseCase(env.ledger).Execute(ctx, env.createInput("Groceries", 400))
		if err != nil {
			t.Fatalf("failed to seed vault: %v", err)
		}
		return env, out.Vault
	}

	t.Run("grows within the account headroom", func(t *testing.T) {
		env, v := setup(t)
		amount := decimal.NewFromInt(900)

		out, err := NewUpdateVaultUseCase(env.ledger).Execute(ctx, UpdateVaultInput{
			UserID:          env.userID,
			VaultID:         v.ID,
			AllocatedAmount: &amount,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Vault.AllocatedAmount.Equal(amount) {
			t.Errorf("expected allocation 900, got %s", out.Vault.AllocatedAmount)
		}
	})

	t.Run("rejects growth beyond the account headroom", func(t *testing.T) {
		env, v := setup(t)
		amount := decimal.NewFromInt(1001)

		_, err := NewUpdateVaultUseCase(env.ledger).Execute(ctx, UpdateVaultInput{
			UserID:          env.userID,
			VaultID:         v.ID,
			AllocatedAmount: &amount,
		})
		if !errors.Is(err, domainerror.ErrInsufficientUnallocatedBalance) {
			t.Fatalf("expected insufficient unallocated balance, got %v", err)
		}
	})

	t.Run("rejects shrinking below the spent amount", func(t *testing.T) {
		env, v := setup(t)

		// Record a spend directly so the vault has history.
		v.SpentAmount = decimal.NewFromInt(250)
		if err := env.ledger.Vaults().Update(ctx, v); err != nil {
			t.Fatalf("failed to record spend: %v", err)
		}

		amount := decimal.NewFromInt(200)
		_, err := NewUpdateVaultUseCase(env.ledger).Execute(ctx, UpdateVaultInput{
			UserID:          env.userID,
			VaultID:         v.ID,
			AllocatedAmount: &amount,
		})
		if !errors.Is(err, domainerror.ErrBelowSpentAmount) {
			t.Fatalf("expected below-spent error, got %v", err)
		}
	})

	t.Run("updates metadata without touching the allocation", func(t *testing.T) {
		env, v := setup(t)
		name := "Weekly Groceries"
		period := entity.BudgetPeriodWeekly

		out, err := NewUpdateVaultUseCase(env.ledger).Execute(ctx, UpdateVaultInput{
			UserID:       env.userID,
			VaultID:      v.ID,
			Name:         &name,
			BudgetPeriod: &period,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Vault.Name != name || out.Vault.BudgetPeriod != period {
			t.Errorf("metadata not applied: %+v", out.Vault)
		}
		if !out.Vault.AllocatedAmount.Equal(v.AllocatedAmount) {
			t.Errorf("allocation changed unexpectedly to %s", out.Vault.AllocatedAmount)
		}
	})
}

func TestDeleteVault(t *testing.T) {
	ctx := context.Background()

	t.Run("hard-deletes a vault with no spending", func(t *testing.T) {
		env := newVaultEnv(t, 1000)
		out, err := NewCreateVaultUseCase(env.ledger).Execute(ctx, env.createInput("Scratch", 100))
		if err != nil {
			t.Fatalf("failed to seed vault: %v", err)
		}

		res, err := NewDeleteVaultUseCase(env.ledger).Execute(ctx, DeleteVaultInput{UserID: env.userID, VaultID: out.Vault.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Archived {
			t.Error("vault with no spending must be removed, not archived")
		}

		if _, err := env.ledger.Vaults().FindByID(ctx, out.Vault.ID, env.userID); !errors.Is(err, domainerror.ErrVaultNotFound) {
			t.Errorf("expected vault to be gone, got %v", err)
		}
	})

	t.Run("archives a vault with spending history", func(t *testing.T) {
		env := newVaultEnv(t, 1000)
		out, err := NewCreateVaultUseCase(env.ledger).Execute(ctx, env.createInput("History", 100))
		if err != nil {
			t.Fatalf("failed to seed vault: %v", err)
		}

		out.Vault.SpentAmount = decimal.NewFromInt(40)
		if err := env.ledger.Vaults().Update(ctx, out.Vault); err != nil {
			t.Fatalf("failed to record spend: %v", err)
		}

		res, err := NewDeleteVaultUseCase(env.ledger).Execute(ctx, DeleteVaultInput{UserID: env.userID, VaultID: out.Vault.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Archived {
			t.Error("vault with spending must be archived")
		}

		archived, err := env.ledger.Vaults().FindByID(ctx, out.Vault.ID, env.userID)
		if err != nil {
			t.Fatalf("archived vault must stay readable, got %v", err)
		}
		if archived.State != entity.VaultStateArchived {
			t.Errorf("expected archived state, got %s", archived.State)
		}

		// Its allocation no longer counts against the account headroom.
		if _, err := NewCreateVaultUseCase(env.ledger).Execute(ctx, env.createInput("Fresh", 1000)); err != nil {
			t.Errorf("archived allocation must release headroom, got %v", err)
		}
	})
}
