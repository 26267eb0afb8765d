package repositories

import (
	"context"

	"github.com/google/uuid"

	"btc-custody.backend/internal/domain/entities"
)

// TransactionRepository defines transaction record operations
type TransactionRepository interface {
	Create(ctx context.Context, txn *entities.Transaction) error
	GetByID(ctx context.Context, txnID uuid.UUID) (*entities.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*entities.Transaction, error)
	List(ctx context.Context) ([]*entities.Transaction, error)
	UpdateStatus(ctx context.Context, txnID uuid.UUID, status entities.TxnStatus) error
}
