package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// WalletStatus represents wallet status
type WalletStatus string

const (
	WalletStatusActive   WalletStatus = "isActive"
	WalletStatusInactive WalletStatus = "isInactive"
)

// Wallet represents one custodial record per user per currency family.
// A user has at most one BTC wallet; it is created lazily by the first
// generate/import operation.
type Wallet struct {
	WalletID          uuid.UUID       `json:"wallet_id"`
	UserID            uuid.UUID       `json:"user_id"`
	WalletType        string          `json:"wallet_type"`
	Balance           decimal.Decimal `json:"balance"`
	Currency          string          `json:"currency"`
	WalletAddress     string          `json:"wallet_address"`
	WalletStatus      WalletStatus    `json:"wallet_status"`
	EncryptedMnemonic null.String     `json:"-"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProviderWalletInput represents input for creating a custody-provider wallet
type ProviderWalletInput struct {
	Coin string `json:"coin" binding:"required,oneof=trx bnb"`
}
