package adapters

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/vaultpay/backend/test/integration/mock"
)

func TestSimulatedGateway(t *testing.T) {
	ctx := context.Background()
	amount := decimal.NewFromInt(100)

	t.Run("success rate 1 always completes", func(t *testing.T) {
		gw := NewSimulatedGateway(GatewayConfig{SuccessRate: 1})

		for i := 0; i < 10; i++ {
			res, err := gw.Charge(ctx, amount, "key-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.Success || res.Status != "completed" {
				t.Fatalf("expected completed charge, got %+v", res)
			}
			if !strings.HasPrefix(res.GatewayRef, "GW-") {
				t.Errorf("expected GW- reference, got %s", res.GatewayRef)
			}
		}
	})

	t.Run("success rate 0 always declines without error", func(t *testing.T) {
		gw := NewSimulatedGateway(GatewayConfig{SuccessRate: 0})

		res, err := gw.Charge(ctx, amount, "key-2")
		if err != nil {
			t.Fatalf("a decline is a result, not an error: %v", err)
		}
		if res.Success || res.Status != "failed" {
			t.Fatalf("expected declined charge, got %+v", res)
		}
		if res.GatewayRef == "" {
			t.Error("declines still carry a gateway reference")
		}
	})

	t.Run("cancellation during latency surfaces as an error", func(t *testing.T) {
		gw := NewSimulatedGateway(GatewayConfig{
			SuccessRate: 1,
			MinLatency:  time.Second,
			MaxLatency:  2 * time.Second,
		})

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		if _, err := gw.Charge(cancelled, amount, "key-3"); err == nil {
			t.Fatal("expected an error for a cancelled charge")
		}
	})
}

func TestRedisIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	store := NewRedisIdempotencyStore(mock.NewRedis(t), time.Minute)

	t.Run("first reservation wins, second loses", func(t *testing.T) {
		reserved, err := store.Reserve(ctx, "pay-key-1", "PAY-ref-1")
		if err != nil || !reserved {
			t.Fatalf("expected first reservation to win: reserved=%v err=%v", reserved, err)
		}

		reserved, err = store.Reserve(ctx, "pay-key-1", "PAY-ref-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reserved {
			t.Error("second reservation on a held key must lose")
		}
	})

	t.Run("release frees the key", func(t *testing.T) {
		if _, err := store.Reserve(ctx, "pay-key-2", "PAY-ref-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.Release(ctx, "pay-key-2"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		reserved, err := store.Reserve(ctx, "pay-key-2", "PAY-ref-3")
		if err != nil || !reserved {
			t.Errorf("expected reservation after release to win: reserved=%v err=%v", reserved, err)
		}
	})
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService()

	t.Run("hash verifies against the original password", func(t *testing.T) {
		hash, err := svc.HashPassword("correct horse battery")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hash == "correct horse battery" {
			t.Fatal("password must not be stored in the clear")
		}
		if err := svc.VerifyPassword(hash, "correct horse battery"); err != nil {
			t.Errorf("expected verification to pass: %v", err)
		}
		if err := svc.VerifyPassword(hash, "wrong password"); err == nil {
			t.Error("expected verification to fail for the wrong password")
		}
	})

	t.Run("rejects passwords outside the accepted length range", func(t *testing.T) {
		if err := svc.ValidatePasswordStrength("short"); err == nil {
			t.Error("expected a strength error for a short password")
		}
		if err := svc.ValidatePasswordStrength(strings.Repeat("x", 73)); err == nil {
			t.Error("expected a strength error beyond the bcrypt input limit")
		}
		if err := svc.ValidatePasswordStrength("long enough"); err != nil {
			t.Errorf("expected an 11-character password to pass: %v", err)
		}
	})

	t.Run("explicit cost", func(t *testing.T) {
		fast := NewPasswordServiceWithCost(bcrypt.MinCost)
		hash, err := fast.HashPassword("correct horse battery")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cost, err := bcrypt.Cost([]byte(hash))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cost != bcrypt.MinCost {
			t.Errorf("expected cost %d, got %d", bcrypt.MinCost, cost)
		}

		// Out-of-range costs fall back to the default instead of failing.
		if _, err := NewPasswordServiceWithCost(99).HashPassword("correct horse battery"); err != nil {
			t.Errorf("expected the default cost for an out-of-range value: %v", err)
		}
	})
}
