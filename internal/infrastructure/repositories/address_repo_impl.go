package repositories

import (
	"context"
	"errors"
	"time"

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

// addressRepo implements repositories.AddressRepository
type addressRepo struct {
	db *gorm.DB
}

// NewAddressRepository creates a new address repository
func NewAddressRepository(db *gorm.DB) repositories.AddressRepository {
	return &addressRepo{db: db}
}

// Create creates a new address row
func (r *addressRepo) Create(ctx context.Context, address *entities.BtcAddress) error {
	if address.AddressID == uuid.Nil {
		address.AddressID = utils.GenerateUUIDv7()
	}

	m := &models.BtcAddress{
		ID:                 address.AddressID,
		WalletID:           address.WalletID,
		Address:            address.Address,
		AddressType:        string(address.AddressType),
		ConfirmedBalance:   address.ConfirmedBalance,
		UnconfirmedBalance: address.UnconfirmedBalance,
		IsUsed:             address.IsUsed,
		IsChange:           address.IsChange,
		IsImported:         address.IsImported,
		WatchOnly:          address.WatchOnly,
		IsActive:           address.IsActive,
		TransactionCount:   address.TransactionCount,
		Status:             string(address.Status),
	}
	m.PublicKey = nullToPtr(address.PublicKey)
	m.PrivateKey = nullToPtr(address.PrivateKey)
	m.DerivationPath = nullToPtr(address.DerivationPath)
	m.Label = nullToPtr(address.Label)
	m.Metadata = nullToPtr(address.Metadata)

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	address.CreatedAt = m.CreatedAt
	address.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByAddress gets an address row by its encoded address string
func (r *addressRepo) GetByAddress(ctx context.Context, address string) (*entities.BtcAddress, error) {
	var m models.BtcAddress
	if err := GetDB(ctx, r.db).WithContext(ctx).Preload("Wallet").Where("address = ?", address).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetDetails gets the flattened address + wallet view
func (r *addressRepo) GetDetails(ctx context.Context, address string) (*entities.AddressDetails, error) {
	var m models.BtcAddress
	if err := GetDB(ctx, r.db).WithContext(ctx).Preload("Wallet").Where("address = ?", address).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	e := r.toEntity(&m)
	return &entities.AddressDetails{
		AddressID:      e.AddressID,
		Address:        e.Address,
		AddressType:    e.AddressType,
		Balance:        e.TotalBalance(),
		Label:          e.Label,
		DerivationPath: e.DerivationPath,
		IsUsed:         e.IsUsed,
		IsChange:       e.IsChange,
		CreatedAt:      e.CreatedAt,
		WalletInfo: entities.WalletInfo{
			WalletID:     m.Wallet.ID,
			WalletStatus: entities.WalletStatus(m.Wallet.WalletStatus),
		},
	}, nil
}

// CountGeneratedByWallet counts derived (non-imported) addresses on a wallet.
// Used to pick the next derivation index.
func (r *addressRepo) CountGeneratedByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.BtcAddress{}).
		Where("wallet_id = ? AND is_imported = ?", walletID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateBalance stores the latest resolved balances for an address
func (r *addressRepo) UpdateBalance(ctx context.Context, address string, confirmed, unconfirmed decimal.Decimal) error {
	now := time.Now()
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.BtcAddress{}).
		Where("address = ?", address).
		Updates(map[string]interface{}{
			"confirmed_balance":   confirmed,
			"unconfirmed_balance": unconfirmed,
			"last_balance_update": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// toEntity converts GORM model to Domain Entity
func (r *addressRepo) toEntity(m *models.BtcAddress) *entities.BtcAddress {
	e := &entities.BtcAddress{
		AddressID:          m.ID,
		UserID:             m.Wallet.UserID,
		WalletID:           m.WalletID,
		Address:            m.Address,
		AddressType:        entities.AddressType(m.AddressType),
		ConfirmedBalance:   m.ConfirmedBalance,
		UnconfirmedBalance: m.UnconfirmedBalance,
		IsUsed:             m.IsUsed,
		IsChange:           m.IsChange,
		IsImported:         m.IsImported,
		WatchOnly:          m.WatchOnly,
		IsActive:           m.IsActive,
		TransactionCount:   m.TransactionCount,
		Status:             entities.AddressStatus(m.Status),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	e.PublicKey = ptrToNull(m.PublicKey)
	e.PrivateKey = ptrToNull(m.PrivateKey)
	e.DerivationPath = ptrToNull(m.DerivationPath)
	e.Label = ptrToNull(m.Label)
	e.Metadata = ptrToNull(m.Metadata)
	if m.LastUsedAt != nil {
		e.LastUsedAt = null.TimeFrom(*m.LastUsedAt)
	}
	if m.LastBalanceUpdate != nil {
		e.LastBalanceUpdate = null.TimeFrom(*m.LastBalanceUpdate)
	}
	return e
}

func nullToPtr(s null.String) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func ptrToNull(s *string) null.String {
	if s == nil {
		return null.String{}
	}
	return null.StringFrom(*s)
}
