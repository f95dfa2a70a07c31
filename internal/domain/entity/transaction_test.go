// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNewTransactionReference(t *testing.T) {
	userID := uuid.New()

	t.Run("carries the prefix and short user id", func(t *testing.T) {
		ref := NewTransactionReference(ReferencePrefixPayment, userID)

		if !strings.HasPrefix(ref, "PAY-") {
			t.Errorf("expected PAY prefix, got %s", ref)
		}
		if !strings.Contains(ref, userID.String()[:8]) {
			t.Errorf("expected reference to contain short user id, got %s", ref)
		}
		if len(strings.Split(ref, "-")) != 4 {
			t.Errorf("expected 4 dash-separated parts, got %s", ref)
		}
	})

	t.Run("references generated in the same millisecond stay unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			ref := NewTransactionReference(ReferencePrefixAllocation, userID)
			if seen[ref] {
				t.Fatalf("duplicate reference generated: %s", ref)
			}
			seen[ref] = true
		}
	})
}

func TestNewTransaction(t *testing.T) {
	userID := uuid.New()
	accountID := uuid.New()
	vaultID := uuid.New()

	tx := NewTransaction(
		ReferencePrefixPayment,
		userID,
		&vaultID,
		accountID,
		TransactionTypeDebit,
		CategoryP2P,
		decimal.NewFromInt(75),
		"coffee",
		TransactionStatusPending,
		"gateway",
	)

	if tx.ID == uuid.Nil {
		t.Error("expected a generated id")
	}
	if tx.Status != TransactionStatusPending {
		t.Errorf("expected pending status, got %s", tx.Status)
	}
	if tx.VaultID == nil || *tx.VaultID != vaultID {
		t.Error("expected vault id to be set")
	}
	if tx.CreatedAt.IsZero() || !tx.CreatedAt.Equal(tx.UpdatedAt) {
		t.Error("expected created and updated timestamps to match")
	}
}
