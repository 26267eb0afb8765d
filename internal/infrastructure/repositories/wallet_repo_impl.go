package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"btc-custody.backend/internal/domain/entities"
	domainerrors "btc-custody.backend/internal/domain/errors"
	"btc-custody.backend/internal/domain/repositories"
	"btc-custody.backend/internal/infrastructure/models"
	"btc-custody.backend/pkg/utils"
)

// walletRepo implements repositories.WalletRepository
type walletRepo struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) repositories.WalletRepository {
	return &walletRepo{db: db}
}

// Create creates a new wallet
func (r *walletRepo) Create(ctx context.Context, wallet *entities.Wallet) error {
	if wallet.WalletID == uuid.Nil {
		wallet.WalletID = utils.GenerateUUIDv7()
	}

	m := &models.Wallet{
		ID:           wallet.WalletID,
		UserID:       wallet.UserID,
		WalletType:   wallet.WalletType,
		Balance:      wallet.Balance,
		Currency:     wallet.Currency,
		WalletStatus: string(wallet.WalletStatus),
	}
	if wallet.WalletAddress != "" {
		m.WalletAddress = &wallet.WalletAddress
	}
	if wallet.EncryptedMnemonic.Valid {
		m.EncryptedMnemonic = &wallet.EncryptedMnemonic.String
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	wallet.CreatedAt = m.CreatedAt
	wallet.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByUserID gets the wallet owned by a user
func (r *walletRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	var m models.Wallet
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByID gets a wallet by ID
func (r *walletRepo) GetByID(ctx context.Context, walletID uuid.UUID) (*entities.Wallet, error) {
	var m models.Wallet
	if err := GetDB(ctx, r.db).WithContext(ctx).First(&m, "id = ?", walletID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// UpdateBalance sets the cached wallet balance
func (r *walletRepo) UpdateBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Update("balance", balance)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetWalletAddress stores the wallet's primary receive address
func (r *walletRepo) SetWalletAddress(ctx context.Context, walletID uuid.UUID, address string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Update("wallet_address", address)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetEncryptedMnemonic stores the sealed mnemonic envelope on the wallet
func (r *walletRepo) SetEncryptedMnemonic(ctx context.Context, walletID uuid.UUID, envelope string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Update("encrypted_mnemonic", envelope)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ClearEncryptedMnemonic wipes the sealed mnemonic after a reveal
func (r *walletRepo) ClearEncryptedMnemonic(ctx context.Context, walletID uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Update("encrypted_mnemonic", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// toEntity converts GORM model to Domain Entity
func (r *walletRepo) toEntity(m *models.Wallet) *entities.Wallet {
	e := &entities.Wallet{
		WalletID:     m.ID,
		UserID:       m.UserID,
		WalletType:   m.WalletType,
		Balance:      m.Balance,
		Currency:     m.Currency,
		WalletStatus: entities.WalletStatus(m.WalletStatus),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.WalletAddress != nil {
		e.WalletAddress = *m.WalletAddress
	}
	if m.EncryptedMnemonic != nil {
		e.EncryptedMnemonic = null.StringFrom(*m.EncryptedMnemonic)
	}
	return e
}
