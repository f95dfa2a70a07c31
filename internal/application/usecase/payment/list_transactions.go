package payment

import (
	"context"
	"fmt"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListTransactionsInput represents the input for listing ledger entries.
type ListTransactionsInput struct {
	Filter     adapter.TransactionFilter
	Pagination adapter.TransactionPagination
}

// ListTransactionsOutput represents one page of ledger entries.
type ListTransactionsOutput struct {
	Result *entity.TransactionListResult
}

// ListTransactionsUseCase handles paginated ledger queries.
type ListTransactionsUseCase struct {
	transactionRepository adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepository adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepository: transactionRepository,
	}
}

// Execute lists ledger entries matching the filter, newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	pagination := input.Pagination
	if pagination.Limit <= 0 {
		pagination.Limit = defaultPageSize
	}
	if pagination.Limit > maxPageSize {
		pagination.Limit = maxPageSize
	}
	if pagination.Offset < 0 {
		pagination.Offset = 0
	}

	result, err := uc.transactionRepository.FindByFilter(ctx, input.Filter, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsOutput{Result: result}, nil
}
