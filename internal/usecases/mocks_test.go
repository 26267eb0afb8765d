package usecases_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"btc-custody.backend/internal/domain/entities"
	"btc-custody.backend/internal/infrastructure/bitnob"
)

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	args := m.Called(ctx, wallet)
	if wallet.WalletID == uuid.Nil {
		wallet.WalletID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByID(ctx context.Context, walletID uuid.UUID) (*entities.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) UpdateBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal) error {
	args := m.Called(ctx, walletID, balance)
	return args.Error(0)
}

func (m *MockWalletRepository) SetWalletAddress(ctx context.Context, walletID uuid.UUID, address string) error {
	args := m.Called(ctx, walletID, address)
	return args.Error(0)
}

func (m *MockWalletRepository) SetEncryptedMnemonic(ctx context.Context, walletID uuid.UUID, envelope string) error {
	args := m.Called(ctx, walletID, envelope)
	return args.Error(0)
}

func (m *MockWalletRepository) ClearEncryptedMnemonic(ctx context.Context, walletID uuid.UUID) error {
	args := m.Called(ctx, walletID)
	return args.Error(0)
}

// Mock AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) Create(ctx context.Context, address *entities.BtcAddress) error {
	args := m.Called(ctx, address)
	if address.AddressID == uuid.Nil {
		address.AddressID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockAddressRepository) GetByAddress(ctx context.Context, address string) (*entities.BtcAddress, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BtcAddress), args.Error(1)
}

func (m *MockAddressRepository) GetDetails(ctx context.Context, address string) (*entities.AddressDetails, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AddressDetails), args.Error(1)
}

func (m *MockAddressRepository) CountGeneratedByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	args := m.Called(ctx, walletID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAddressRepository) UpdateBalance(ctx context.Context, address string, confirmed, unconfirmed decimal.Decimal) error {
	args := m.Called(ctx, address, confirmed, unconfirmed)
	return args.Error(0)
}

// Mock TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *entities.Transaction) error {
	args := m.Called(ctx, txn)
	if txn.TxnID == uuid.Nil {
		txn.TxnID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, txnID uuid.UUID) (*entities.Transaction, error) {
	args := m.Called(ctx, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByReference(ctx context.Context, reference string) (*entities.Transaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) List(ctx context.Context) ([]*entities.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, txnID uuid.UUID, status entities.TxnStatus) error {
	args := m.Called(ctx, txnID, status)
	return args.Error(0)
}

// Mock provider balance source
type MockProviderBalancer struct {
	mock.Mock
}

func (m *MockProviderBalancer) GetAddressBalance(ctx context.Context, address string) (*bitnob.AddressBalance, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bitnob.AddressBalance), args.Error(1)
}

// Mock explorer balance source
type MockExplorerBalancer struct {
	mock.Mock
}

func (m *MockExplorerBalancer) GetAddressBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// Mock provider gateway
type MockProviderGateway struct {
	mock.Mock
}

func (m *MockProviderGateway) CreateWallet(ctx context.Context, coin string) (json.RawMessage, error) {
	args := m.Called(ctx, coin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockProviderGateway) ListWallets(ctx context.Context) (json.RawMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockProviderGateway) GetWalletByCoin(ctx context.Context, coin string) (json.RawMessage, error) {
	args := m.Called(ctx, coin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// Mock rate gateway
type MockRateGateway struct {
	mock.Mock
}

func (m *MockRateGateway) GetRate(ctx context.Context, currency string) (json.RawMessage, error) {
	args := m.Called(ctx, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockRateGateway) GetRates(ctx context.Context) (map[string]bitnob.Rate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bitnob.Rate), args.Error(1)
}

// Mock rate cache
type MockRateCache struct {
	mock.Mock
}

func (m *MockRateCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRateCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}
