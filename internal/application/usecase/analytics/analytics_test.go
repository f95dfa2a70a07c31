package analytics

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
	"github.com/vaultpay/backend/internal/integration/persistence"
	"github.com/vaultpay/backend/internal/integration/persistence/model"
	"github.com/vaultpay/backend/test/integration/mock"
)

type analyticsEnv struct {
	ledger        adapter.Ledger
	analyticsRepo adapter.AnalyticsRepository

	userID    uuid.UUID
	accountID uuid.UUID
	groceries *entity.Vault
	travel    *entity.Vault
}

// newAnalyticsEnv seeds two vaults with a known spread of ledger entries:
// groceries has 100 + 50 completed spend, travel has 150, and there is one
// allocation entry, one failed debit, and one credit that aggregates must all
// ignore.
func newAnalyticsEnv(t *testing.T) *analyticsEnv {
	t.Helper()
	ctx := context.Background()

	db := mock.NewDB(t,
		&model.UserModel{},
		&model.BankAccountModel{},
		&model.VaultModel{},
		&model.TransactionModel{},
	)
	ledger := persistence.NewLedgerStore(db, 0)

	user := entity.NewUser("Meera Iyer", "meera@example.com", "+916543210987", "hashed")
	if err := persistence.NewUserRepository(db).Create(ctx, user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	account := entity.NewBankAccount(user.ID, "5555555555", "AXIS0000789", "Axis", "Meera Iyer", decimal.NewFromInt(10000), true)
	if err := ledger.Accounts().Create(ctx, account); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	groceries := entity.NewVault(user.ID, account.ID, "Groceries", "essentials", decimal.NewFromInt(500), "", entity.BudgetPeriodMonthly, false)
	travel := entity.NewVault(user.ID, account.ID, "Travel", "leisure", decimal.NewFromInt(800), "", entity.BudgetPeriodMonthly, false)
	for _, v := range []*entity.Vault{groceries, travel} {
		if err := ledger.Vaults().Create(ctx, v); err != nil {
			t.Fatalf("failed to seed vault: %v", err)
		}
	}

	entries := []struct {
		vault  *entity.Vault
		txType entity.TransactionType
		cat    string
		amount int64
		status entity.TransactionStatus
	}{
		{groceries, entity.TransactionTypeDebit, entity.CategoryP2P, 100, entity.TransactionStatusCompleted},
		{groceries, entity.TransactionTypeDebit, entity.CategoryP2P, 50, entity.TransactionStatusCompleted},
		{travel, entity.TransactionTypeDebit, entity.CategoryP2P, 150, entity.TransactionStatusCompleted},
		// Noise the aggregates must exclude.
		{groceries, entity.TransactionTypeDebit, entity.CategoryVaultAllocation, 500, entity.TransactionStatusCompleted},
		{travel, entity.TransactionTypeDebit, entity.CategoryP2P, 999, entity.TransactionStatusFailed},
		{groceries, entity.TransactionTypeCredit, entity.CategoryP2P, 30, entity.TransactionStatusCompleted},
	}
	for _, e := range entries {
		tx := entity.NewTransaction(
			entity.ReferencePrefixPayment,
			user.ID, &e.vault.ID, account.ID,
			e.txType, e.cat,
			decimal.NewFromInt(e.amount), "seed", e.status, "gateway",
		)
		if err := ledger.Transactions().Create(ctx, tx); err != nil {
			t.Fatalf("failed to seed transaction: %v", err)
		}
	}

	// Cached figures match the completed p2p debits above.
	groceries.SpentAmount = decimal.NewFromInt(150)
	travel.SpentAmount = decimal.NewFromInt(150)
	for _, v := range []*entity.Vault{groceries, travel} {
		if err := ledger.Vaults().Update(ctx, v); err != nil {
			t.Fatalf("failed to set spent amount: %v", err)
		}
	}

	return &analyticsEnv{
		ledger:        ledger,
		analyticsRepo: persistence.NewAnalyticsRepository(db),
		userID:        user.ID,
		accountID:     account.ID,
		groceries:     groceries,
		travel:        travel,
	}
}

func TestSpendingByCategory(t *testing.T) {
	env := newAnalyticsEnv(t)

	out, err := NewSpendingByCategoryUseCase(env.analyticsRepo).Execute(context.Background(), SpendingByCategoryInput{
		UserID: env.userID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.TotalSpent.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected total 300, got %s", out.TotalSpent)
	}

	byType := make(map[string]CategorySpend)
	for _, c := range out.Categories {
		byType[c.VaultType] = c
	}

	essentials, ok := byType["essentials"]
	if !ok {
		t.Fatal("missing essentials category")
	}
	if !essentials.Amount.Equal(decimal.NewFromInt(150)) || essentials.TransactionCount != 2 {
		t.Errorf("essentials: expected 150 over 2 entries, got %s over %d", essentials.Amount, essentials.TransactionCount)
	}
	if essentials.Percentage != 50 {
		t.Errorf("essentials: expected 50%%, got %v", essentials.Percentage)
	}
}

func TestSpendingByVault(t *testing.T) {
	env := newAnalyticsEnv(t)

	out, err := NewSpendingByVaultUseCase(env.analyticsRepo).Execute(context.Background(), SpendingByVaultInput{
		UserID: env.userID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byID := make(map[uuid.UUID]VaultSpend)
	for _, v := range out.Vaults {
		byID[v.VaultID] = v
	}

	g, ok := byID[env.groceries.ID]
	if !ok {
		t.Fatal("missing groceries vault")
	}
	if !g.Amount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("groceries: expected 150 spend, got %s", g.Amount)
	}
	if g.UsagePercentage != 30 {
		t.Errorf("groceries: expected 30%% usage of 500, got %v", g.UsagePercentage)
	}
}

func TestSpendingOverTime_AggregatesFromLedger(t *testing.T) {
	env := newAnalyticsEnv(t)

	out, err := NewSpendingOverTimeUseCase(env.analyticsRepo).Execute(context.Background(), SpendingOverTimeInput{
		UserID:      env.userID,
		Granularity: GranularityDay,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// All seed entries land today, so one bucket holds the full spend.
	if len(out.Buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(out.Buckets))
	}
	if !out.Buckets[0].Amount.Equal(decimal.NewFromInt(300)) || out.Buckets[0].TransactionCount != 3 {
		t.Errorf("expected 300 over 3 entries, got %s over %d", out.Buckets[0].Amount, out.Buckets[0].TransactionCount)
	}
}

func TestSpendingOverTime_RejectsUnknownGranularity(t *testing.T) {
	env := newAnalyticsEnv(t)

	_, err := NewSpendingOverTimeUseCase(env.analyticsRepo).Execute(context.Background(), SpendingOverTimeInput{
		UserID:      env.userID,
		Granularity: "hourly",
	})
	if err == nil {
		t.Fatal("expected an error for unknown granularity")
	}
}

func TestReconcileVault(t *testing.T) {
	ctx := context.Background()

	t.Run("reports all vaults consistent", func(t *testing.T) {
		env := newAnalyticsEnv(t)
		uc := NewReconcileVaultUseCase(env.ledger.Vaults(), env.ledger.Transactions())

		out, err := uc.Execute(ctx, ReconcileVaultInput{UserID: env.userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.DriftDetected {
			t.Error("no drift was seeded, none must be reported")
		}
		if out.CheckedVaults != 2 {
			t.Errorf("expected 2 checked vaults, got %d", out.CheckedVaults)
		}
	})

	t.Run("reports drift without repairing it", func(t *testing.T) {
		env := newAnalyticsEnv(t)
		uc := NewReconcileVaultUseCase(env.ledger.Vaults(), env.ledger.Transactions())

		// Corrupt the cached figure.
		env.groceries.SpentAmount = decimal.NewFromInt(175)
		if err := env.ledger.Vaults().Update(ctx, env.groceries); err != nil {
			t.Fatalf("failed to corrupt vault: %v", err)
		}

		out, err := uc.Execute(ctx, ReconcileVaultInput{UserID: env.userID, VaultID: &env.groceries.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !out.DriftDetected || len(out.Results) != 1 {
			t.Fatalf("expected one drifting result, got %+v", out)
		}
		r := out.Results[0]
		if !r.Drift.Equal(decimal.NewFromInt(25)) {
			t.Errorf("expected drift 25 (cached minus ledger), got %s", r.Drift)
		}
		if r.IsConsistent {
			t.Error("drifting vault must not be flagged consistent")
		}

		// Running again reports the same drift; reconciliation never writes.
		again, err := uc.Execute(ctx, ReconcileVaultInput{UserID: env.userID, VaultID: &env.groceries.ID})
		if err != nil {
			t.Fatalf("unexpected error on rerun: %v", err)
		}
		if !again.Results[0].Drift.Equal(r.Drift) {
			t.Errorf("rerun changed the reported drift: %s vs %s", again.Results[0].Drift, r.Drift)
		}

		v, err := env.ledger.Vaults().FindByID(ctx, env.groceries.ID, env.userID)
		if err != nil {
			t.Fatalf("failed to reload vault: %v", err)
		}
		if !v.SpentAmount.Equal(decimal.NewFromInt(175)) {
			t.Errorf("reconciliation must not repair the cached figure, got %s", v.SpentAmount)
		}
	})
}
