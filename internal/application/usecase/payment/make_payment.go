// Package payment contains the payment engine use cases. A payment touches an
// external gateway, so it cannot run in one atomic unit; instead it records a
// durable pending ledger entry, charges, and finalizes in a second bounded
// unit that re-validates the vault under a row lock.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
	domainerror "github.com/vaultpay/backend/internal/domain/error"
	"github.com/vaultpay/backend/internal/domain/valueobject"
)

// MakePaymentInput represents the input for making a payment from a vault.
type MakePaymentInput struct {
	UserID         uuid.UUID
	VaultID        uuid.UUID
	Amount         decimal.Decimal
	IdempotencyKey string
	Description    string
	RecipientPhone string
	RecipientUPI   string
	RecipientID    string
}

// MakePaymentOutput represents the outcome of a payment attempt. Replayed is
// true when the idempotency key matched an already-recorded payment and no new
// charge happened.
type MakePaymentOutput struct {
	Transaction     *entity.Transaction
	PreviousBalance valueobject.VaultBalance
	NewBalance      valueobject.VaultBalance
	Replayed        bool
}

// MakePaymentUseCase handles vault payments through the external gateway.
type MakePaymentUseCase struct {
	ledger           adapter.Ledger
	gateway          adapter.PaymentGateway
	idempotencyStore adapter.IdempotencyStore
	maxAmount        decimal.Decimal
}

// NewMakePaymentUseCase creates a new MakePaymentUseCase instance. maxAmount
// is the per-transaction ceiling from configuration.
func NewMakePaymentUseCase(
	ledger adapter.Ledger,
	gateway adapter.PaymentGateway,
	idempotencyStore adapter.IdempotencyStore,
	maxAmount decimal.Decimal,
) *MakePaymentUseCase {
	return &MakePaymentUseCase{
		ledger:           ledger,
		gateway:          gateway,
		idempotencyStore: idempotencyStore,
		maxAmount:        maxAmount,
	}
}

// Execute runs one payment attempt end to end.
//
// A gateway decline is not an error: the returned transaction carries status
// "failed" and the vault is untouched. Errors are reserved for requests that
// never reached the gateway, plus the one genuinely ambiguous case where the
// outcome could not be recorded (ErrPaymentStateUnknown).
func (uc *MakePaymentUseCase) Execute(ctx context.Context, input MakePaymentInput) (*MakePaymentOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidPaymentAmount,
		)
	}
	if input.Amount.GreaterThan(uc.maxAmount) {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeAmountExceedsLimit,
			fmt.Sprintf("amount %s exceeds the per-transaction limit of %s", input.Amount, uc.maxAmount),
			domainerror.ErrAmountExceedsLimit,
		)
	}
	if input.IdempotencyKey == "" {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeMissingPaymentFields,
			"idempotency key is required",
			nil,
		)
	}

	// Replay: a key that already reached the ledger returns the recorded
	// outcome without charging again.
	if existing, err := uc.findExisting(ctx, input); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	// Pre-check outside any unit of work. Purely a fast fail; the binding
	// check happens again in the finalize unit under a row lock.
	vault, err := uc.ledger.Vaults().FindActiveByID(ctx, input.VaultID, input.UserID)
	if err != nil {
		return nil, err
	}
	previous := valueobject.DeriveBalance(vault.AllocatedAmount, vault.SpentAmount)
	if input.Amount.GreaterThan(previous.Remaining) {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInsufficientVaultBalance,
			fmt.Sprintf("amount %s exceeds the vault's remaining balance %s", input.Amount, previous.Remaining),
			domainerror.ErrInsufficientVaultBalance,
		)
	}

	transaction := entity.NewTransaction(
		entity.ReferencePrefixPayment,
		input.UserID,
		&input.VaultID,
		vault.BankAccountID,
		entity.TransactionTypeDebit,
		entity.CategoryP2P,
		input.Amount,
		input.Description,
		entity.TransactionStatusPending,
		"gateway",
	)
	transaction.IdempotencyKey = &input.IdempotencyKey
	transaction.RecipientPhone = input.RecipientPhone
	transaction.RecipientUPI = input.RecipientUPI
	transaction.RecipientID = input.RecipientID

	// Fast-path duplicate suppression. The ledger's unique index on the
	// idempotency key stays authoritative if the reservation is lost.
	reserved, err := uc.idempotencyStore.Reserve(ctx, input.IdempotencyKey, transaction.Reference)
	if err != nil {
		slog.Warn("Idempotency reservation unavailable, relying on ledger index", "error", err)
	} else if !reserved {
		// The holder may have landed its pending entry already.
		if existing, err := uc.findExisting(ctx, input); err != nil {
			return nil, err
		} else if existing != nil {
			return existing, nil
		}
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeDuplicatePayment,
			"a payment with this idempotency key is already being processed",
			domainerror.ErrDuplicatePayment,
		)
	}

	// Unit A: durable pending entry before any external effect.
	err = uc.ledger.WithinTransaction(ctx, func(ctx context.Context, ops adapter.LedgerOps) error {
		return ops.Transactions().Create(ctx, transaction)
	})
	if err != nil {
		uc.releaseReservation(ctx, input.IdempotencyKey)

		if errors.Is(err, domainerror.ErrDuplicateReference) {
			// Lost the race on the unique index: the other request's entry is
			// the payment of record.
			if existing, lookupErr := uc.findExisting(ctx, input); lookupErr == nil && existing != nil {
				return existing, nil
			}
			return nil, domainerror.NewPaymentError(
				domainerror.ErrCodeDuplicatePayment,
				"a payment with this idempotency key is already being processed",
				domainerror.ErrDuplicatePayment,
			)
		}
		return nil, err
	}

	// The charge runs outside any unit of work; holding row locks across a
	// multi-second network call would serialize every payment on the store.
	charge, err := uc.gateway.Charge(ctx, input.Amount, input.IdempotencyKey)
	if err != nil {
		// The charge may or may not have gone through. Leave the pending
		// entry for reconciliation and tell the caller the truth.
		slog.Error("Gateway charge outcome unknown",
			"reference", transaction.Reference,
			"error", err,
		)
		return nil, uc.unknownStateError(transaction.Reference, err)
	}

	output, err := uc.finalize(ctx, input, transaction, charge, previous)
	if err != nil {
		// The finalized entry, not the reservation, is the record of this
		// attempt; an immediate retry must not wait out the TTL.
		uc.releaseReservation(ctx, input.IdempotencyKey)
		return nil, err
	}

	uc.releaseReservation(ctx, input.IdempotencyKey)

	slog.Info("Payment processed",
		"userID", input.UserID,
		"vaultID", input.VaultID,
		"reference", transaction.Reference,
		"status", output.Transaction.Status,
		"amount", input.Amount,
	)

	return output, nil
}

// finalize runs unit B: re-validate the vault under a row lock, apply the
// spend on success, and move the pending entry to its terminal status.
func (uc *MakePaymentUseCase) finalize(
	ctx context.Context,
	input MakePaymentInput,
	transaction *entity.Transaction,
	charge *adapter.ChargeResult,
	previous valueobject.VaultBalance,
) (*MakePaymentOutput, error) {
	var (
		newBalance valueobject.VaultBalance
		raceLost   bool
	)

	err := uc.ledger.WithinTransaction(ctx, func(ctx context.Context, ops adapter.LedgerOps) error {
		vault, err := ops.Vaults().FindActiveByIDForUpdate(ctx, input.VaultID, input.UserID)
		if err != nil {
			return err
		}

		// Balance views come from the row read in this unit, so the response
		// matches exactly what is committed.
		previous = valueobject.DeriveBalance(vault.AllocatedAmount, vault.SpentAmount)
		newBalance = previous

		gatewayRef := &charge.GatewayRef

		if !charge.Success {
			transaction.GatewayRef = gatewayRef
			transaction.GatewayResponse = charge.Raw
			transaction.Status = entity.TransactionStatusFailed
			return ops.Transactions().FinalizeStatus(ctx, transaction.ID, entity.TransactionStatusFailed, gatewayRef, charge.Raw)
		}

		// Re-validation under the lock. A concurrent payment may have drained
		// the vault between the pre-check and now.
		if input.Amount.GreaterThan(previous.Remaining) {
			raceLost = true
			transaction.GatewayRef = gatewayRef
			transaction.GatewayResponse = charge.Raw
			transaction.Status = entity.TransactionStatusFailed
			return ops.Transactions().FinalizeStatus(ctx, transaction.ID, entity.TransactionStatusFailed, gatewayRef, charge.Raw)
		}

		vault.SpentAmount = vault.SpentAmount.Add(input.Amount)
		if err := ops.Vaults().Update(ctx, vault); err != nil {
			return fmt.Errorf("failed to record spend: %w", err)
		}
		newBalance = valueobject.DeriveBalance(vault.AllocatedAmount, vault.SpentAmount)

		transaction.GatewayRef = gatewayRef
		transaction.GatewayResponse = charge.Raw
		transaction.Status = entity.TransactionStatusCompleted
		return ops.Transactions().FinalizeStatus(ctx, transaction.ID, entity.TransactionStatusCompleted, gatewayRef, charge.Raw)
	})
	if err != nil {
		if charge.Success && domainerror.IsRetriable(err) {
			// The money moved at the gateway but the ledger could not record
			// it. Surface the ambiguity instead of pretending either outcome.
			return nil, uc.unknownStateError(transaction.Reference, err)
		}
		return nil, err
	}

	if raceLost {
		return nil, &domainerror.PaymentError{
			Code:      domainerror.ErrCodeInsufficientVaultBalance,
			Message:   "vault balance was consumed by a concurrent payment",
			Err:       domainerror.ErrInsufficientVaultBalance,
			Reference: transaction.Reference,
		}
	}

	return &MakePaymentOutput{
		Transaction:     transaction,
		PreviousBalance: previous,
		NewBalance:      newBalance,
	}, nil
}

// findExisting returns the recorded outcome for the idempotency key, nil when
// the key is unused.
func (uc *MakePaymentUseCase) findExisting(ctx context.Context, input MakePaymentInput) (*MakePaymentOutput, error) {
	existing, err := uc.ledger.Transactions().FindByIdempotencyKey(ctx, input.IdempotencyKey, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, nil
		}
		return nil, err
	}

	slog.Info("Payment replayed from idempotency key",
		"userID", input.UserID,
		"reference", existing.Reference,
	)

	var balance valueobject.VaultBalance
	if existing.VaultID != nil {
		if vault, err := uc.ledger.Vaults().FindByID(ctx, *existing.VaultID, input.UserID); err == nil {
			balance = valueobject.DeriveBalance(vault.AllocatedAmount, vault.SpentAmount)
		}
	}

	return &MakePaymentOutput{
		Transaction:     existing,
		PreviousBalance: balance,
		NewBalance:      balance,
		Replayed:        true,
	}, nil
}

func (uc *MakePaymentUseCase) unknownStateError(reference string, err error) error {
	return &domainerror.PaymentError{
		Code:      domainerror.ErrCodePaymentStateUnknown,
		Message:   fmt.Sprintf("outcome of payment %s could not be recorded; reconcile before retrying", reference),
		Err:       fmt.Errorf("%w: %w", domainerror.ErrPaymentStateUnknown, err),
		Reference: reference,
	}
}

func (uc *MakePaymentUseCase) releaseReservation(ctx context.Context, key string) {
	if err := uc.idempotencyStore.Release(ctx, key); err != nil {
		slog.Warn("Failed to release idempotency reservation", "error", err)
	}
}
