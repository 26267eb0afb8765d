package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"btc-custody.backend/internal/domain/entities"
	domainerrors "btc-custody.backend/internal/domain/errors"
	"btc-custody.backend/internal/domain/repositories"
	"btc-custody.backend/internal/infrastructure/models"
	"btc-custody.backend/pkg/utils"
)

// transactionRepo implements repositories.TransactionRepository
type transactionRepo struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) repositories.TransactionRepository {
	return &transactionRepo{db: db}
}

// Create records a new transaction
func (r *transactionRepo) Create(ctx context.Context, txn *entities.Transaction) error {
	if txn.TxnID == uuid.Nil {
		txn.TxnID = utils.GenerateUUIDv7()
	}

	m := &models.Transaction{
		ID:        txn.TxnID,
		WalletID:  txn.WalletID,
		TxnAmount: txn.TxnAmount,
		Currency:  txn.Currency,
		TxnStatus: string(txn.TxnStatus),
		TxnType:   string(txn.TxnType),
		Reference: txn.Reference,
	}
	m.ToAddress = nullToPtr(txn.ToAddress)
	m.FromAddress = nullToPtr(txn.FromAddress)
	if txn.ConfirmedAt.Valid {
		t := txn.ConfirmedAt.Time
		m.ConfirmedAt = &t
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	txn.CreatedAt = m.CreatedAt
	txn.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a transaction by ID
func (r *transactionRepo) GetByID(ctx context.Context, txnID uuid.UUID) (*entities.Transaction, error) {
	var m models.Transaction
	if err := GetDB(ctx, r.db).WithContext(ctx).First(&m, "id = ?", txnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByReference gets a transaction by its external reference
func (r *transactionRepo) GetByReference(ctx context.Context, reference string) (*entities.Transaction, error) {
	var m models.Transaction
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("reference = ?", reference).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List returns all transactions, newest first
func (r *transactionRepo) List(ctx context.Context) ([]*entities.Transaction, error) {
	var ms []models.Transaction
	if err := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	var txns []*entities.Transaction
	for _, m := range ms {
		model := m
		txns = append(txns, r.toEntity(&model))
	}
	return txns, nil
}

// UpdateStatus transitions a transaction to a new status
func (r *transactionRepo) UpdateStatus(ctx context.Context, txnID uuid.UUID, status entities.TxnStatus) error {
	updates := map[string]interface{}{
		"txn_status": string(status),
	}
	if status == entities.TxnStatusCompleted {
		updates["confirmed_at"] = gorm.Expr("CURRENT_TIMESTAMP")
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ?", txnID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// toEntity converts GORM model to Domain Entity
func (r *transactionRepo) toEntity(m *models.Transaction) *entities.Transaction {
	e := &entities.Transaction{
		TxnID:     m.ID,
		WalletID:  m.WalletID,
		TxnAmount: m.TxnAmount,
		Currency:  m.Currency,
		TxnStatus: entities.TxnStatus(m.TxnStatus),
		TxnType:   entities.TxnType(m.TxnType),
		Reference: m.Reference,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	e.ToAddress = ptrToNull(m.ToAddress)
	e.FromAddress = ptrToNull(m.FromAddress)
	if m.ConfirmedAt != nil {
		e.ConfirmedAt = null.TimeFrom(*m.ConfirmedAt)
	}
	return e
}
