package bitnob

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "btc-custody.backend/internal/domain/errors"
)

func TestClient_GetAddressBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/addresses/tb1qtest/balance", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"balance":"0.005","confirmed_balance":"0.004","unconfirmed_balance":"0.001"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	got, err := c.GetAddressBalance(context.Background(), "tb1qtest")
	require.NoError(t, err)
	assert.Equal(t, "0.005", got.Balance.String())
	assert.Equal(t, "0.004", got.ConfirmedBalance.String())
	assert.Equal(t, "0.001", got.UnconfirmedBalance.String())
}

func TestClient_CreateWallet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wallets/create-new-crypto-wallet", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "trx", body["coin"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"status":true,"data":{"coin":"trx","address":"TTestAddr"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	raw, err := c.CreateWallet(context.Background(), "trx")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "TTestAddr")
}

func TestClient_CreateWallet_RejectsUnsupportedCoinBeforeHTTP(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	_, err := c.CreateWallet(context.Background(), "doge")
	require.ErrorIs(t, err, domainerrors.ErrUnsupportedCoin)
	assert.False(t, called, "no provider call for an unsupported coin")

	_, err = c.GetWalletByCoin(context.Background(), "eth")
	require.ErrorIs(t, err, domainerrors.ErrUnsupportedCoin)
	assert.False(t, called)
}

func TestClient_GetRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallets/payout/rates", r.URL.Path)
		w.Write([]byte(`{"data":{"USD":{"buyRate":"1","sellRate":"1"},"NGN":{"buyRate":"1650.5","sellRate":"1640"}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	rates, err := c.GetRates(context.Background())
	require.NoError(t, err)
	require.Contains(t, rates, "NGN")
	assert.Equal(t, "1650.5", rates["NGN"].BuyRate.String())
	assert.Equal(t, "1640", rates["NGN"].SellRate.String())
}

func TestClient_GetRate_UppercasesCurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallets/payout/rate/NGN", r.URL.Path)
		w.Write([]byte(`{"data":{"payoutRate":"1640"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	raw, err := c.GetRate(context.Background(), "ngn")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "payoutRate")
}

func TestClient_Non2xxReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid api key"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-key")
	_, err := c.ListWallets(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid api key", apiErr.Message)
}

func TestClient_UnreachableProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before use

	c := NewClient(srv.URL, "test-key")
	_, err := c.ListWallets(context.Background())
	require.ErrorIs(t, err, domainerrors.ErrProviderUnavailable)
}
