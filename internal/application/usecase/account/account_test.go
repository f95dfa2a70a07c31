// Package account contains the account lifecycle use cases.
package account

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

type accountEnv struct {
	ledger adapter.Ledger
	userID uuid.UUID
}

func newAccountEnv(t *testing.T) *accountEnv {
	t.Helper()

	db := mock.NewDB(t,
		&model.UserModel{},
		&model.BankAccountModel{},
		&model.VaultModel{},
		&model.TransactionModel{},
	)
	ledger := persistence.NewLedgerStore(db, 0)

	user := entity.NewUser("Priya Nair", "priya@example.com", "+917654321098", "hashed")
	if err := persistence.NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	return &accountEnv{ledger: ledger, userID: user.ID}
}

func (e *accountEnv) link(t *testing.T, number string, balance int64) *entity.BankAccount {
	t.Helper()
	out, err := NewLinkAccountUseCase(e.ledger).Execute(context.Background(), LinkAccountInput{
		UserID:            e.userID,
		AccountNumber:     number,
		IFSCCode:          "sbin0001234",
		BankName:          "SBI",
		AccountHolderName: "Priya Nair",
		InitialBalance:    decimal.NewFromInt(balance),
	})
	if err != nil {
		t.Fatalf("failed to link account: %v", err)
	}
	return out.Account
}

func TestLinkAccount(t *testing.T) {
	t.Run("first account becomes primary, later ones do not", func(t *testing.T) {
		env := newAccountEnv(t)

		first := env.link(t, "1111111111", 5000)
		if !first.IsPrimary {
			t.Error("first linked account must be primary")
		}
		if first.IFSCCode != "SBIN0001234" {
			t.Errorf("expected uppercased IFSC, got %s", first.IFSCCode)
		}
		if !first.IsVerified {
			t.Error("linked accounts are marked verified")
		}

		second := env.link(t, "2222222222", 3000)
		if second.IsPrimary {
			t.Error("second account must not steal the primary flag")
		}
	})

	t.Run("rejects a negative initial balance", func(t *testing.T) {
		env := newAccountEnv(t)

		_, err := NewLinkAccountUseCase(env.ledger).Execute(context.Background(), LinkAccountInput{
			UserID:         env.userID,
			AccountNumber:  "3333333333",
			IFSCCode:       "SBIN0001234",
			BankName:       "SBI",
			InitialBalance: decimal.NewFromInt(-1),
		})
		if !errors.Is(err, domainerror.ErrInvalidBalanceAmount) {
			t.Fatalf("expected invalid balance error, got %v", err)
		}
	})
}

func TestSetPrimary(t *testing.T) {
	env := newAccountEnv(t)
	ctx := context.Background()

	env.link(t, "1111111111", 5000)
	second := env.link(t, "2222222222", 3000)

	out, err := NewSetPrimaryUseCase(env.ledger).Execute(ctx, SetPrimaryInput{UserID: env.userID, AccountID: second.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Account.IsPrimary {
		t.Error("target account must be primary")
	}

	// Exactly one primary after the switch.
	accounts, err := env.ledger.Accounts().FindByUser(ctx, env.userID)
	if err != nil {
		t.Fatalf("failed to list accounts: %v", err)
	}
	var primaries int
	for _, a := range accounts {
		if a.IsPrimary {
			primaries++
			if a.ID != second.ID {
				t.Errorf("wrong account is primary: %s", a.ID)
			}
		}
	}
	if primaries != 1 {
		t.Errorf("expected exactly one primary, got %d", primaries)
	}
}

func TestUnlinkAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses while active vaults reference the account", func(t *testing.T) {
		env := newAccountEnv(t)
		acc := env.link(t, "1111111111", 5000)

		vault := entity.NewVault(env.userID, acc.ID, "Groceries", "spending", decimal.NewFromInt(100), "", entity.BudgetPeriodMonthly, false)
		if err := env.ledger.Vaults().Create(ctx, vault); err != nil {
			t.Fatalf("failed to seed vault: %v", err)
		}

		err := NewUnlinkAccountUseCase(env.ledger).Execute(ctx, UnlinkAccountInput{UserID: env.userID, AccountID: acc.ID})
		if !errors.Is(err, domainerror.ErrAccountHasActiveVaults) {
			t.Fatalf("expected active-vaults error, got %v", err)
		}
	})

	t.Run("promotes another account when the primary is removed", func(t *testing.T) {
		env := newAccountEnv(t)
		first := env.link(t, "1111111111", 5000)
		second := env.link(t, "2222222222", 3000)

		if err := NewUnlinkAccountUseCase(env.ledger).Execute(ctx, UnlinkAccountInput{UserID: env.userID, AccountID: first.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		promoted, err := env.ledger.Accounts().FindByID(ctx, second.ID, env.userID)
		if err != nil {
			t.Fatalf("failed to load remaining account: %v", err)
		}
		if !promoted.IsPrimary {
			t.Error("remaining account must be promoted to primary")
		}
	})

	t.Run("removes the last account without a successor", func(t *testing.T) {
		env := newAccountEnv(t)
		only := env.link(t, "1111111111", 5000)

		if err := NewUnlinkAccountUseCase(env.ledger).Execute(ctx, UnlinkAccountInput{UserID: env.userID, AccountID: only.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := env.ledger.Accounts().FindByID(ctx, only.ID, env.userID); !errors.Is(err, domainerror.ErrAccountNotFound) {
			t.Errorf("expected account to be gone, got %v", err)
		}
	})
}

func TestUpdateBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("credit raises the balance and appends an adjustment entry", func(t *testing.T) {
		env := newAccountEnv(t)
		acc := env.link(t, "1111111111", 1000)

		out, err := NewUpdateBalanceUseCase(env.ledger).Execute(ctx, UpdateBalanceInput{
			UserID:    env.userID,
			AccountID: acc.ID,
			Amount:    decimal.NewFromInt(500),
			Type:      entity.TransactionTypeCredit,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !out.Account.Balance.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("expected balance 1500, got %s", out.Account.Balance)
		}
		if !out.PreviousBalance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected previous balance 1000, got %s", out.PreviousBalance)
		}
		if out.Transaction.Category != entity.CategoryBalanceAdjustment {
			t.Errorf("expected balance-adjustment category, got %s", out.Transaction.Category)
		}
		if out.Transaction.VaultID != nil {
			t.Error("account-level entries carry no vault id")
		}
		if out.Transaction.Status != entity.TransactionStatusCompleted {
			t.Errorf("expected completed entry, got %s", out.Transaction.Status)
		}
	})

	t.Run("debit may not drop the balance below the allocated sum", func(t *testing.T) {
		env := newAccountEnv(t)
		acc := env.link(t, "1111111111", 1000)

		vault := entity.NewVault(env.userID, acc.ID, "Groceries", "spending", decimal.NewFromInt(600), "", entity.BudgetPeriodMonthly, false)
		if err := env.ledger.Vaults().Create(ctx, vault); err != nil {
			t.Fatalf("failed to seed vault: %v", err)
		}

		uc := NewUpdateBalanceUseCase(env.ledger)

		// 401 would leave 599 < 600 allocated.
		_, err := uc.Execute(ctx, UpdateBalanceInput{
			UserID:    env.userID,
			AccountID: acc.ID,
			Amount:    decimal.NewFromInt(401),
			Type:      entity.TransactionTypeDebit,
		})
		if !errors.Is(err, domainerror.ErrInsufficientAccountBalance) {
			t.Fatalf("expected insufficient balance error, got %v", err)
		}

		out, err := uc.Execute(ctx, UpdateBalanceInput{
			UserID:    env.userID,
			AccountID: acc.ID,
			Amount:    decimal.NewFromInt(400),
			Type:      entity.TransactionTypeDebit,
		})
		if err != nil {
			t.Fatalf("withdrawing down to the allocated sum must succeed, got %v", err)
		}
		if !out.Account.Balance.Equal(decimal.NewFromInt(600)) {
			t.Errorf("expected balance 600, got %s", out.Account.Balance)
		}
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		env := newAccountEnv(t)
		acc := env.link(t, "1111111111", 1000)

		_, err := NewUpdateBalanceUseCase(env.ledger).Execute(ctx, UpdateBalanceInput{
			UserID:    env.userID,
			AccountID: acc.ID,
			Amount:    decimal.Zero,
			Type:      entity.TransactionTypeCredit,
		})
		if !errors.Is(err, domainerror.ErrInvalidBalanceAmount) {
			t.Fatalf("expected invalid amount error, got %v", err)
		}
	})
}

func TestGetAccountSummary(t *testing.T) {
	env := newAccountEnv(t)
	ctx := context.Background()
	acc := env.link(t, "1111111111", 1000)

	vault := entity.NewVault(env.userID, acc.ID, "Groceries", "spending", decimal.NewFromInt(250), "", entity.BudgetPeriodMonthly, false)
	if err := env.ledger.Vaults().Create(ctx, vault); err != nil {
		t.Fatalf("failed to seed vault: %v", err)
	}

	out, err := NewGetAccountSummaryUseCase(env.ledger.Accounts(), env.ledger.Vaults()).
		Execute(ctx, GetAccountSummaryInput{UserID: env.userID, AccountID: acc.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.AllocatedAmount.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected allocated 250, got %s", out.AllocatedAmount)
	}
	if !out.UnallocatedAmount.Equal(decimal.NewFromInt(750)) {
		t.Errorf("expected unallocated 750, got %s", out.UnallocatedAmount)
	}
	if out.AllocatedPercentage != 25 {
		t.Errorf("expected allocated percentage 25, got %v", out.AllocatedPercentage)
	}
	if out.ActiveVaultCount != 1 {
		t.Errorf("expected 1 active vault, got %d", out.ActiveVaultCount)
	}
}
