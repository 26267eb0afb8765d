package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"btc-custody.backend/internal/domain/entities"
)

// WalletRepository defines wallet data operations
type WalletRepository interface {
	Create(ctx context.Context, wallet *entities.Wallet) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	GetByID(ctx context.Context, walletID uuid.UUID) (*entities.Wallet, error)
	UpdateBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal) error
	SetWalletAddress(ctx context.Context, walletID uuid.UUID, address string) error
	SetEncryptedMnemonic(ctx context.Context, walletID uuid.UUID, envelope string) error
	ClearEncryptedMnemonic(ctx context.Context, walletID uuid.UUID) error
}
