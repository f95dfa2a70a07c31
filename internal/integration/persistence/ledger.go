// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/vaultpay/backend/internal/application/adapter"
	domainerror "github.com/vaultpay/backend/internal/domain/error"
)

// DefaultTxTimeout bounds a unit of work independently of gateway latency.
const DefaultTxTimeout = 10 * time.Second

// ledgerStore implements adapter.Ledger on top of a gorm connection. Outside a
// unit of work its repositories run against the pool; inside WithinTransaction
// every repository handed to fn is bound to the same transaction.
type ledgerStore struct {
	db        *gorm.DB
	txTimeout time.Duration

	accounts     adapter.BankAccountRepository
	vaults       adapter.VaultRepository
	transactions adapter.TransactionRepository
}

// NewLedgerStore creates a ledger store with the given unit-of-work timeout.
// A non-positive timeout falls back to DefaultTxTimeout.
func NewLedgerStore(db *gorm.DB, txTimeout time.Duration) adapter.Ledger {
	if txTimeout <= 0 {
		txTimeout = DefaultTxTimeout
	}
	return &ledgerStore{
		db:           db,
		txTimeout:    txTimeout,
		accounts:     NewBankAccountRepository(db),
		vaults:       NewVaultRepository(db),
		transactions: NewTransactionRepository(db),
	}
}

func (s *ledgerStore) Accounts() adapter.BankAccountRepository { return s.accounts }

func (s *ledgerStore) Vaults() adapter.VaultRepository { return s.vaults }

func (s *ledgerStore) Transactions() adapter.TransactionRepository { return s.transactions }

// txOps is the repository bundle bound to one open transaction.
type txOps struct {
	accounts     adapter.BankAccountRepository
	vaults       adapter.VaultRepository
	transactions adapter.TransactionRepository
}

func (o *txOps) Accounts() adapter.BankAccountRepository     { return o.accounts }
func (o *txOps) Vaults() adapter.VaultRepository             { return o.vaults }
func (o *txOps) Transactions() adapter.TransactionRepository { return o.transactions }

// WithinTransaction runs fn inside one database transaction with a bounded
// deadline. Any error from fn rolls the unit back entirely; deadline and lock
// contention failures are mapped to the retriable store errors so callers can
// distinguish them from business-rule rejections.
func (s *ledgerStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, ops adapter.LedgerOps) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ops := &txOps{
			accounts:     NewBankAccountRepository(tx),
			vaults:       NewVaultRepository(tx),
			transactions: NewTransactionRepository(tx),
		}
		return fn(ctx, ops)
	})
	if err != nil {
		return classifyStoreError(err)
	}
	return nil
}

// Postgres error codes the engines must react to. The gorm postgres driver
// surfaces them as *pgconn.PgError.
const (
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
	pgCodeLockNotAvailable     = "55P03"
)

// classifyStoreError maps driver-level contention and deadline failures onto
// the domain's retriable store errors, leaving domain errors untouched so
// errors.Is checks in the engines keep working.
func classifyStoreError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("unit of work exceeded its deadline: %w", domainerror.ErrStoreTimeout)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeSerializationFailure, pgCodeDeadlockDetected:
			return domainerror.ErrStoreConflict
		case pgCodeLockNotAvailable:
			return domainerror.ErrStoreTimeout
		}
	}

	// The SQLite test store has no typed error codes.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "lock timeout"):
		return domainerror.ErrStoreTimeout
	}
	return err
}
