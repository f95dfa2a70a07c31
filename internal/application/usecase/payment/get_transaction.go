package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
)

// GetTransactionInput represents the input for fetching a ledger entry.
type GetTransactionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
}

// GetTransactionOutput represents the output of fetching a ledger entry.
type GetTransactionOutput struct {
	Transaction *entity.Transaction
}

// GetTransactionUseCase handles fetching a single ledger entry by id.
type GetTransactionUseCase struct {
	transactionRepository adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepository adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{
		transactionRepository: transactionRepository,
	}
}

// Execute fetches the ledger entry, scoped to the owning user.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, input GetTransactionInput) (*GetTransactionOutput, error) {
	transaction, err := uc.transactionRepository.FindByID(ctx, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetTransactionOutput{Transaction: transaction}, nil
}
