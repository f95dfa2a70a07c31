package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainerror "github.com/vaultpay/backend/internal/domain/error"
)

func TestClassifyStoreError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"DeadlineExceeded", context.DeadlineExceeded, domainerror.ErrStoreTimeout},
		{"WrappedDeadline", fmt.Errorf("commit: %w", context.DeadlineExceeded), domainerror.ErrStoreTimeout},
		{"PgDeadlock", &pgconn.PgError{Code: "40P01", Message: "deadlock detected"}, domainerror.ErrStoreConflict},
		{"PgSerializationFailure", &pgconn.PgError{Code: "40001", Message: "could not serialize access"}, domainerror.ErrStoreConflict},
		{"PgLockNotAvailable", &pgconn.PgError{Code: "55P03", Message: "lock timeout"}, domainerror.ErrStoreTimeout},
		{"WrappedPgError", fmt.Errorf("update vault: %w", &pgconn.PgError{Code: "40P01"}), domainerror.ErrStoreConflict},
		{"SQLiteBusy", errors.New("database is locked (5) (SQLITE_BUSY)"), domainerror.ErrStoreTimeout},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyStoreError(tc.err)
			if !errors.Is(got, tc.want) {
				t.Errorf("classifyStoreError(%v) = %v, want %v", tc.err, got, tc.want)
			}
			if !domainerror.IsRetriable(got) {
				t.Errorf("classifyStoreError(%v) = %v, want retriable", tc.err, got)
			}
		})
	}

	t.Run("UnknownErrorPassesThrough", func(t *testing.T) {
		cause := errors.New("column does not exist")
		if got := classifyStoreError(cause); got != cause {
			t.Errorf("classifyStoreError(%v) = %v, want the error unchanged", cause, got)
		}
	})

	t.Run("DomainErrorUntouched", func(t *testing.T) {
		cause := domainerror.ErrVaultNotFound
		got := classifyStoreError(cause)
		if !errors.Is(got, domainerror.ErrVaultNotFound) {
			t.Errorf("classifyStoreError(%v) = %v, want ErrVaultNotFound preserved", cause, got)
		}
		if domainerror.IsRetriable(got) {
			t.Errorf("domain error %v must not classify as retriable", got)
		}
	})
}

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"TranslatedDuplicate", gorm.ErrDuplicatedKey, true},
		{"PgUniqueViolation", &pgconn.PgError{Code: "23505", ConstraintName: "idx_transactions_idempotency_key"}, true},
		{"WrappedPgUniqueViolation", fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505"}), true},
		{"SQLiteConstraint", errors.New("UNIQUE constraint failed: transactions.idempotency_key"), true},
		{"PgOtherCode", &pgconn.PgError{Code: "40P01"}, false},
		{"Unrelated", errors.New("connection refused"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isUniqueViolation(tc.err); got != tc.want {
				t.Errorf("isUniqueViolation(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
