package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	WalletID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	TxnAmount   decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Currency    string          `gorm:"type:varchar(10);not null;default:'BTC'"`
	TxnStatus   string          `gorm:"type:varchar(20);not null;default:'pending'"`
	TxnType     string          `gorm:"type:varchar(20);not null"`
	Reference   string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	ToAddress   *string         `gorm:"type:varchar(62)"`
	FromAddress *string         `gorm:"type:varchar(62)"`
	ConfirmedAt *time.Time      `gorm:"type:timestamp"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
