package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// TxnStatus represents transaction status
type TxnStatus string

const (
	TxnStatusPending   TxnStatus = "pending"
	TxnStatusCompleted TxnStatus = "completed"
	TxnStatusFailed    TxnStatus = "failed"
)

// TxnType represents transaction direction
type TxnType string

const (
	TxnTypeSend    TxnType = "send"
	TxnTypeReceive TxnType = "receive"
)

// Transaction is a local record of a custody transaction. This service only
// tracks records, it never builds or broadcasts chain transactions.
type Transaction struct {
	TxnID       uuid.UUID       `json:"txn_id"`
	WalletID    uuid.UUID       `json:"wallet_id"`
	TxnAmount   decimal.Decimal `json:"txn_amount"`
	Currency    string          `json:"currency"`
	TxnStatus   TxnStatus       `json:"txn_status"`
	TxnType     TxnType         `json:"txn_type"`
	Reference   string          `json:"reference"`
	ToAddress   null.String     `json:"to_address,omitempty"`
	FromAddress null.String     `json:"from_address,omitempty"`
	ConfirmedAt null.Time       `json:"confirmed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateTransactionInput represents input for recording a transaction
type CreateTransactionInput struct {
	WalletID    string `json:"wallet_id" binding:"required,uuid"`
	TxnAmount   string `json:"txn_amount" binding:"required"`
	Currency    string `json:"currency" binding:"omitempty,min=1,max=10"`
	TxnType     string `json:"txn_type" binding:"required,oneof=send receive"`
	Reference   string `json:"reference" binding:"required"`
	ToAddress   string `json:"to_address" binding:"omitempty"`
	FromAddress string `json:"from_address" binding:"omitempty"`
}

// UpdateTxnStatusInput represents input for a status transition
type UpdateTxnStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending completed failed"`
}
