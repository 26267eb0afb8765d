package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"btc-custody.backend/internal/domain/entities"
)

// AddressRepository defines btc address data operations
type AddressRepository interface {
	Create(ctx context.Context, address *entities.BtcAddress) error
	GetByAddress(ctx context.Context, address string) (*entities.BtcAddress, error)
	GetDetails(ctx context.Context, address string) (*entities.AddressDetails, error)
	CountGeneratedByWallet(ctx context.Context, walletID uuid.UUID) (int64, error)
	UpdateBalance(ctx context.Context, address string, confirmed, unconfirmed decimal.Decimal) error
}
