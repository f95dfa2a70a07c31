// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a ledger entry.
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "debit"
	TransactionTypeCredit TransactionType = "credit"
)

// TransactionStatus represents the outcome of a ledger entry.
// Pending entries are finalized exactly once to completed or failed;
// only completed debits count toward a vault's spent amount.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction categories recorded by the money-movement core.
const (
	CategoryP2P               = "p2p"
	CategoryVaultAllocation   = "vault-allocation"
	CategoryBalanceAdjustment = "balance-adjustment"
)

// Reference prefixes per money-movement event.
const (
	ReferencePrefixPayment    = "PAY"
	ReferencePrefixAllocation = "ALLOC"
	ReferencePrefixBalance    = "BAL"
)

// Transaction is an append-only ledger entry. Entries are immutable once
// finalized; the sum of completed non-allocation debits for a vault is the
// ground truth for that vault's spent amount.
type Transaction struct {
	ID              uuid.UUID
	Reference       string
	IdempotencyKey  *string
	UserID          uuid.UUID
	VaultID         *uuid.UUID // nil for account-level events
	BankAccountID   uuid.UUID
	Type            TransactionType
	Category        string
	Amount          decimal.Decimal // always a positive magnitude
	Description     string
	Status          TransactionStatus
	PaymentMethod   string
	GatewayRef      *string
	GatewayResponse string // opaque raw gateway payload
	RecipientPhone  string
	RecipientUPI    string
	RecipientID     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewTransaction creates a new ledger entry with a generated id and reference.
func NewTransaction(
	refPrefix string,
	userID uuid.UUID,
	vaultID *uuid.UUID,
	bankAccountID uuid.UUID,
	txType TransactionType,
	category string,
	amount decimal.Decimal,
	description string,
	status TransactionStatus,
	paymentMethod string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:            uuid.New(),
		Reference:     NewTransactionReference(refPrefix, userID),
		UserID:        userID,
		VaultID:       vaultID,
		BankAccountID: bankAccountID,
		Type:          txType,
		Category:      category,
		Amount:        amount,
		Description:   description,
		Status:        status,
		PaymentMethod: paymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NewTransactionReference builds a unique human-readable reference of the form
// {PREFIX}-{unix-millis}-{short-user-id}-{suffix}. The random suffix keeps
// references unique when two entries for one user land in the same millisecond.
func NewTransactionReference(prefix string, userID uuid.UUID) string {
	short := userID.String()[:8]
	return fmt.Sprintf("%s-%d-%s-%s", prefix, time.Now().UnixMilli(), short, uuid.NewString()[:6])
}

// TransactionWithVault pairs a ledger entry with a light view of its vault.
type TransactionWithVault struct {
	Transaction *Transaction
	VaultName   string
	VaultIcon   string
}

// TransactionListResult represents one page of ledger entries.
type TransactionListResult struct {
	Transactions []*TransactionWithVault
	Total        int64
	Limit        int
	Offset       int
	HasMore      bool
}
