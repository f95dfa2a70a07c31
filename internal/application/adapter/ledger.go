// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// LedgerOps bundles the repositories participating in money movement. Inside
// WithinTransaction they are bound to the same database transaction and see
// each other's uncommitted writes.
type LedgerOps interface {
	Accounts() BankAccountRepository
	Vaults() VaultRepository
	Transactions() TransactionRepository
}

// Ledger is the durable, transactional store for bank accounts, vaults and the
// transaction log. It is constructed explicitly and injected into each engine;
// no component holds an ambient database handle.
type Ledger interface {
	LedgerOps

	// WithinTransaction executes fn against a consistent snapshot. It commits
	// only if fn returns nil and rolls back entirely otherwise, including on
	// invariant violations raised inside fn. The unit has a bounded maximum
	// duration independent of any external call; exceeding it surfaces as
	// ErrStoreTimeout after a full rollback.
	//
	// Engines must re-read mutable rows through the ops argument rather than
	// trusting pre-transaction reads: that re-read, combined with row locking
	// in FindActiveByIDForUpdate, closes the check-then-act race between
	// concurrent units touching the same vault.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, ops LedgerOps) error) error
}
