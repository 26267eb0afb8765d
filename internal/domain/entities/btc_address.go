package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// AddressType represents the encoding family of a bitcoin address
type AddressType string

const (
	AddressTypeLegacy       AddressType = "legacy"
	AddressTypeSegwit       AddressType = "segwit"
	AddressTypeNativeSegwit AddressType = "native_segwit"
	AddressTypeUnknown      AddressType = "unknown"
)

// AddressStatus represents the lifecycle status of an address
type AddressStatus string

const (
	AddressStatusActive      AddressStatus = "active"
	AddressStatusInactive    AddressStatus = "inactive"
	AddressStatusCompromised AddressStatus = "compromised"
	AddressStatusArchived    AddressStatus = "archived"
)

// BtcAddress represents one derived or imported address owned by a wallet
type BtcAddress struct {
	AddressID          uuid.UUID       `json:"address_id"`
	UserID             uuid.UUID       `json:"user_id"`
	WalletID           uuid.UUID       `json:"wallet_id"`
	Address            string          `json:"address"`
	AddressType        AddressType     `json:"address_type"`
	PublicKey          null.String     `json:"public_key,omitempty"`
	PrivateKey         null.String     `json:"-"`
	DerivationPath     null.String     `json:"derivation_path,omitempty"`
	Label              null.String     `json:"label,omitempty"`
	ConfirmedBalance   decimal.Decimal `json:"confirmed_balance"`
	UnconfirmedBalance decimal.Decimal `json:"unconfirmed_balance"`
	IsUsed             bool            `json:"is_used"`
	IsChange           bool            `json:"is_change"`
	IsImported         bool            `json:"is_imported"`
	WatchOnly          bool            `json:"watch_only"`
	IsActive           bool            `json:"is_active"`
	LastUsedAt         null.Time       `json:"last_used_at,omitempty"`
	LastBalanceUpdate  null.Time       `json:"last_balance_update,omitempty"`
	TransactionCount   int             `json:"transaction_count"`
	Metadata           null.String     `json:"metadata,omitempty"`
	Status             AddressStatus   `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TotalBalance is the derived confirmed + unconfirmed balance.
func (a *BtcAddress) TotalBalance() decimal.Decimal {
	return a.ConfirmedBalance.Add(a.UnconfirmedBalance)
}

// GenerateAddressInput represents input for generating one address
type GenerateAddressInput struct {
	UserID          string `json:"user_id" binding:"required,uuid"`
	AddressType     string `json:"address_type" binding:"omitempty,oneof=legacy segwit native_segwit"`
	Label           string `json:"label" binding:"omitempty,min=1,max=50"`
	DerivationPath  string `json:"derivation_path" binding:"omitempty"`
	ReuseWalletSeed bool   `json:"reuse_wallet_seed"`
}

// GenerateMultipleInput represents input for batch generation
type GenerateMultipleInput struct {
	UserID      string `json:"user_id" binding:"required,uuid"`
	Count       int    `json:"count" binding:"required,min=1,max=10"`
	AddressType string `json:"address_type" binding:"omitempty,oneof=legacy segwit native_segwit"`
	StartIndex  int    `json:"start_index" binding:"omitempty,min=0,max=1000000"`
}

// ValidateAddressInput represents input for address validation
type ValidateAddressInput struct {
	Address string `json:"address" binding:"required,min=26,max=62"`
}

// ImportAddressInput represents input for importing an external address
type ImportAddressInput struct {
	UserID     string `json:"user_id" binding:"required,uuid"`
	Address    string `json:"address" binding:"required,min=26,max=62"`
	PrivateKey string `json:"private_key" binding:"omitempty"`
	Label      string `json:"label" binding:"omitempty,min=1,max=50"`
	WatchOnly  bool   `json:"watch_only"`
}

// RevealMnemonicInput represents input for the one-time mnemonic reveal
type RevealMnemonicInput struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// GeneratedAddress is the view returned for a freshly generated address
type GeneratedAddress struct {
	AddressID      uuid.UUID   `json:"address_id"`
	Address        string      `json:"address"`
	AddressType    AddressType `json:"address_type"`
	PublicKey      string      `json:"public_key"`
	DerivationPath string      `json:"derivation_path"`
	Label          string      `json:"label"`
	QRCode         string      `json:"qr_code"`
}

// BatchAddress is one entry of a batch-generation result
type BatchAddress struct {
	AddressID      uuid.UUID   `json:"address_id"`
	Address        string      `json:"address"`
	AddressType    AddressType `json:"address_type"`
	DerivationPath string      `json:"derivation_path"`
	Index          int         `json:"index"`
}

// BatchResult is the view returned for batch generation. The mnemonic is
// sealed onto the wallet row, never returned in plaintext here.
type BatchResult struct {
	Addresses      []BatchAddress `json:"addresses"`
	Count          int            `json:"count"`
	MnemonicStored bool           `json:"mnemonic_stored"`
}

// AddressValidation is the view returned by validate
type AddressValidation struct {
	Address     string      `json:"address"`
	IsValid     bool        `json:"is_valid"`
	AddressType AddressType `json:"address_type"`
	Network     string      `json:"network"`
}

// WalletInfo is the wallet slice of the details view
type WalletInfo struct {
	WalletID     uuid.UUID    `json:"wallet_id"`
	WalletStatus WalletStatus `json:"wallet_status"`
}

// AddressDetails is the flattened address+wallet view
type AddressDetails struct {
	AddressID      uuid.UUID       `json:"address_id"`
	Address        string          `json:"address"`
	AddressType    AddressType     `json:"address_type"`
	Balance        decimal.Decimal `json:"balance"`
	Label          null.String     `json:"label,omitempty"`
	DerivationPath null.String     `json:"derivation_path,omitempty"`
	IsUsed         bool            `json:"is_used"`
	IsChange       bool            `json:"is_change"`
	CreatedAt      time.Time       `json:"created_at"`
	WalletInfo     WalletInfo      `json:"wallet_info"`
}

// ImportedAddress is the view returned by import
type ImportedAddress struct {
	AddressID   uuid.UUID   `json:"address_id"`
	Address     string      `json:"address"`
	AddressType AddressType `json:"address_type"`
	Label       string      `json:"label"`
	WatchOnly   bool        `json:"watch_only"`
	Imported    bool        `json:"imported"`
}

// BalanceResult is the view returned by balance resolution
type BalanceResult struct {
	Address            string          `json:"address"`
	Balance            decimal.Decimal `json:"balance"`
	ConfirmedBalance   decimal.Decimal `json:"confirmed_balance"`
	UnconfirmedBalance decimal.Decimal `json:"unconfirmed_balance"`
	Source             string          `json:"source"`
	Note               string          `json:"note,omitempty"`
}
