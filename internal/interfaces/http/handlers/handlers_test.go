package handlers_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"btc-custody.backend/internal/domain/entities"
	domainerrors "btc-custody.backend/internal/domain/errors"
	"btc-custody.backend/internal/infrastructure/bitcoin"
	"btc-custody.backend/internal/infrastructure/bitnob"
	"btc-custody.backend/pkg/crypto"
)

const testSealerKey = "000102030405060708090a0b0c0d0e0f000102030405060708090a0b0c0d0e0f"

// In-memory repository stubs backing full usecases, so handler tests
// exercise the real binding, derivation and error-mapping paths.

type memWalletRepo struct {
	mu      sync.Mutex
	wallets map[uuid.UUID]*entities.Wallet
}

func newMemWalletRepo() *memWalletRepo {
	return &memWalletRepo{wallets: map[uuid.UUID]*entities.Wallet{}}
}

func (r *memWalletRepo) Create(_ context.Context, w *entities.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w.WalletID == uuid.Nil {
		w.WalletID = uuid.New()
	}
	cp := *w
	r.wallets[w.WalletID] = &cp
	return nil
}

func (r *memWalletRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.wallets {
		if w.UserID == userID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (r *memWalletRepo) GetByID(_ context.Context, walletID uuid.UUID) (*entities.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *memWalletRepo) UpdateBalance(_ context.Context, walletID uuid.UUID, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	w.Balance = balance
	return nil
}

func (r *memWalletRepo) SetWalletAddress(_ context.Context, walletID uuid.UUID, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	w.WalletAddress = address
	return nil
}

func (r *memWalletRepo) SetEncryptedMnemonic(_ context.Context, walletID uuid.UUID, envelope string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	w.EncryptedMnemonic.SetValid(envelope)
	return nil
}

func (r *memWalletRepo) ClearEncryptedMnemonic(_ context.Context, walletID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	w.EncryptedMnemonic.Valid = false
	w.EncryptedMnemonic.String = ""
	return nil
}

type memAddressRepo struct {
	mu        sync.Mutex
	addresses map[string]*entities.BtcAddress
}

func newMemAddressRepo() *memAddressRepo {
	return &memAddressRepo{addresses: map[string]*entities.BtcAddress{}}
}

func (r *memAddressRepo) Create(_ context.Context, a *entities.BtcAddress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.AddressID == uuid.Nil {
		a.AddressID = uuid.New()
	}
	cp := *a
	r.addresses[a.Address] = &cp
	return nil
}

func (r *memAddressRepo) GetByAddress(_ context.Context, address string) (*entities.BtcAddress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.addresses[address]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memAddressRepo) GetDetails(_ context.Context, address string) (*entities.AddressDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.addresses[address]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return &entities.AddressDetails{
		AddressID:      a.AddressID,
		Address:        a.Address,
		AddressType:    a.AddressType,
		Balance:        a.TotalBalance(),
		Label:          a.Label,
		DerivationPath: a.DerivationPath,
		IsUsed:         a.IsUsed,
		IsChange:       a.IsChange,
		CreatedAt:      a.CreatedAt,
		WalletInfo:     entities.WalletInfo{WalletID: a.WalletID, WalletStatus: entities.WalletStatusActive},
	}, nil
}

func (r *memAddressRepo) CountGeneratedByWallet(_ context.Context, walletID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.addresses {
		if a.WalletID == walletID && !a.IsImported {
			n++
		}
	}
	return n, nil
}

func (r *memAddressRepo) UpdateBalance(_ context.Context, address string, confirmed, unconfirmed decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.addresses[address]
	if !ok {
		return domainerrors.ErrNotFound
	}
	a.ConfirmedBalance = confirmed
	a.UnconfirmedBalance = unconfirmed
	return nil
}

type passUow struct{}

func (passUow) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memTxnRepo struct {
	mu   sync.Mutex
	txns map[uuid.UUID]*entities.Transaction
}

func newMemTxnRepo() *memTxnRepo {
	return &memTxnRepo{txns: map[uuid.UUID]*entities.Transaction{}}
}

func (r *memTxnRepo) Create(_ context.Context, t *entities.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.TxnID == uuid.Nil {
		t.TxnID = uuid.New()
	}
	cp := *t
	r.txns[t.TxnID] = &cp
	return nil
}

func (r *memTxnRepo) GetByID(_ context.Context, txnID uuid.UUID) (*entities.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txns[txnID]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTxnRepo) GetByReference(_ context.Context, reference string) (*entities.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.txns {
		if t.Reference == reference {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (r *memTxnRepo) List(_ context.Context) ([]*entities.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.Transaction, 0, len(r.txns))
	for _, t := range r.txns {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memTxnRepo) UpdateStatus(_ context.Context, txnID uuid.UUID, status entities.TxnStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txns[txnID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	t.TxnStatus = status
	return nil
}

// Function-backed gateway stubs

type stubProviderBalancer struct {
	fn func(ctx context.Context, address string) (*bitnob.AddressBalance, error)
}

func (s stubProviderBalancer) GetAddressBalance(ctx context.Context, address string) (*bitnob.AddressBalance, error) {
	return s.fn(ctx, address)
}

type stubExplorerBalancer struct {
	fn func(ctx context.Context, address string) (decimal.Decimal, error)
}

func (s stubExplorerBalancer) GetAddressBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	return s.fn(ctx, address)
}

type stubProviderGateway struct {
	createFn func(ctx context.Context, coin string) (json.RawMessage, error)
	listFn   func(ctx context.Context) (json.RawMessage, error)
	getFn    func(ctx context.Context, coin string) (json.RawMessage, error)
}

func (s stubProviderGateway) CreateWallet(ctx context.Context, coin string) (json.RawMessage, error) {
	return s.createFn(ctx, coin)
}

func (s stubProviderGateway) ListWallets(ctx context.Context) (json.RawMessage, error) {
	return s.listFn(ctx)
}

func (s stubProviderGateway) GetWalletByCoin(ctx context.Context, coin string) (json.RawMessage, error) {
	return s.getFn(ctx, coin)
}

type stubRateGateway struct {
	rateFn  func(ctx context.Context, currency string) (json.RawMessage, error)
	ratesFn func(ctx context.Context) (map[string]bitnob.Rate, error)
}

func (s stubRateGateway) GetRate(ctx context.Context, currency string) (json.RawMessage, error) {
	return s.rateFn(ctx, currency)
}

func (s stubRateGateway) GetRates(ctx context.Context) (map[string]bitnob.Rate, error) {
	return s.ratesFn(ctx)
}

type memRateCache struct {
	mu    sync.Mutex
	store map[string]string
}

func newMemRateCache() *memRateCache {
	return &memRateCache{store: map[string]string{}}
}

func (c *memRateCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store[key], nil
}

func (c *memRateCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
	return nil
}

func testSealer(t *testing.T) *crypto.MnemonicSealer {
	t.Helper()
	sealer, err := crypto.NewMnemonicSealer(testSealerKey)
	require.NoError(t, err)
	return sealer
}

func testKeychain(t *testing.T) *bitcoin.Keychain {
	t.Helper()
	kc, err := bitcoin.NewKeychain(bitcoin.NetworkTestnet)
	require.NoError(t, err)
	return kc
}

func testEncoder(t *testing.T) *bitcoin.Encoder {
	t.Helper()
	enc, err := bitcoin.NewEncoder(bitcoin.NetworkTestnet)
	require.NoError(t, err)
	return enc
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}
