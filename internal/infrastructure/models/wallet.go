package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Wallet struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	WalletType        string          `gorm:"type:varchar(50);not null;default:'customer'"`
	Balance           decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	Currency          string          `gorm:"type:varchar(10);not null;default:'BTC'"`
	WalletAddress     *string         `gorm:"type:varchar(255)"`
	WalletStatus      string          `gorm:"type:varchar(50);not null;default:'isActive'"`
	EncryptedMnemonic *string         `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}
