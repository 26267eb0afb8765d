package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BtcAddress struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	WalletID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Address            string          `gorm:"type:varchar(62);not null;uniqueIndex"`
	AddressType        string          `gorm:"type:varchar(20);not null"`
	PublicKey          *string         `gorm:"type:varchar(130)"`
	PrivateKey         *string         `gorm:"type:text"` // encrypted, never plaintext
	DerivationPath     *string         `gorm:"type:varchar(100)"`
	Label              *string         `gorm:"type:varchar(50)"`
	ConfirmedBalance   decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	UnconfirmedBalance decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	IsUsed             bool            `gorm:"not null;default:false"`
	IsChange           bool            `gorm:"not null;default:false"`
	IsImported         bool            `gorm:"not null;default:false"`
	WatchOnly          bool            `gorm:"not null;default:false"`
	IsActive           bool            `gorm:"not null;default:true"`
	LastUsedAt         *time.Time      `gorm:"type:timestamp"`
	LastBalanceUpdate  *time.Time      `gorm:"type:timestamp"`
	TransactionCount   int             `gorm:"not null;default:0"`
	Metadata           *string         `gorm:"type:jsonb"`
	Status             string          `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`

	// Relations
	Wallet Wallet `gorm:"foreignKey:WalletID;references:ID"`
}

func (BtcAddress) TableName() string {
	return "btc_addresses"
}
