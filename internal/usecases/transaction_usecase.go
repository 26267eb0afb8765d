package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"btc-custody.backend/internal/domain/entities"
	domainerrors "btc-custody.backend/internal/domain/errors"
	"btc-custody.backend/internal/domain/repositories"
)

// TransactionUsecase keeps local transaction records. It never builds,
// signs or broadcasts anything on chain.
type TransactionUsecase struct {
	transactionRepo repositories.TransactionRepository
	walletRepo      repositories.WalletRepository
}

// NewTransactionUsecase creates a new transaction usecase
func NewTransactionUsecase(
	transactionRepo repositories.TransactionRepository,
	walletRepo repositories.WalletRepository,
) *TransactionUsecase {
	return &TransactionUsecase{
		transactionRepo: transactionRepo,
		walletRepo:      walletRepo,
	}
}

// Create records a new transaction against an existing wallet
func (u *TransactionUsecase) Create(ctx context.Context, input *entities.CreateTransactionInput) (*entities.Transaction, error) {
	walletID, err := uuid.Parse(input.WalletID)
	if err != nil {
		return nil, domainerrors.BadRequest("Invalid wallet id")
	}

	amount, err := decimal.NewFromString(input.TxnAmount)
	if err != nil || amount.IsNegative() {
		return nil, domainerrors.BadRequest("Amount must be a non-negative decimal")
	}

	if _, err := u.walletRepo.GetByID(ctx, walletID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Wallet not found")
		}
		return nil, err
	}

	if _, err := u.transactionRepo.GetByReference(ctx, input.Reference); err == nil {
		return nil, domainerrors.Conflict("Transaction reference already exists")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "BTC"
	}

	txn := &entities.Transaction{
		WalletID:  walletID,
		TxnAmount: amount,
		Currency:  currency,
		TxnStatus: entities.TxnStatusPending,
		TxnType:   entities.TxnType(input.TxnType),
		Reference: input.Reference,
	}
	if input.ToAddress != "" {
		txn.ToAddress.SetValid(input.ToAddress)
	}
	if input.FromAddress != "" {
		txn.FromAddress.SetValid(input.FromAddress)
	}

	if err := u.transactionRepo.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// GetByID fetches one transaction record
func (u *TransactionUsecase) GetByID(ctx context.Context, id string) (*entities.Transaction, error) {
	txnID, err := uuid.Parse(id)
	if err != nil {
		return nil, domainerrors.BadRequest("Invalid transaction id")
	}

	txn, err := u.transactionRepo.GetByID(ctx, txnID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Transaction not found")
		}
		return nil, err
	}
	return txn, nil
}

// List returns all transaction records
func (u *TransactionUsecase) List(ctx context.Context) ([]*entities.Transaction, error) {
	return u.transactionRepo.List(ctx)
}

// UpdateStatus transitions a transaction's status
func (u *TransactionUsecase) UpdateStatus(ctx context.Context, id string, input *entities.UpdateTxnStatusInput) (*entities.Transaction, error) {
	txnID, err := uuid.Parse(id)
	if err != nil {
		return nil, domainerrors.BadRequest("Invalid transaction id")
	}

	status := entities.TxnStatus(input.Status)
	if err := u.transactionRepo.UpdateStatus(ctx, txnID, status); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Transaction not found")
		}
		return nil, err
	}

	return u.transactionRepo.GetByID(ctx, txnID)
}
