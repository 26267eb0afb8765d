package bitnob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainerrors "btc-custody.backend/internal/domain/errors"
	"btc-custody.backend/pkg/metrics"
)

const requestTimeout = 10 * time.Second

// APIError is a non-2xx provider response. The upstream message is carried
// so callers can log it, raw bodies never reach API clients.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bitnob: status %d: %s", e.StatusCode, e.Message)
}

// AddressBalance is the provider's balance view of an address
type AddressBalance struct {
	Balance            decimal.Decimal `json:"balance"`
	ConfirmedBalance   decimal.Decimal `json:"confirmed_balance"`
	UnconfirmedBalance decimal.Decimal `json:"unconfirmed_balance"`
}

// Rate is one currency's buy/sell quote against USD
type Rate struct {
	BuyRate  decimal.Decimal `json:"buyRate"`
	SellRate decimal.Decimal `json:"sellRate"`
}

// Client is a provider gateway holding one configured http.Client.
// All configuration is fixed at construction.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a provider client for the given base URL and key
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// ValidCoin reports whether the provider supports the coin
func ValidCoin(coin string) bool {
	return coin == "trx" || coin == "bnb"
}

// GetAddressBalance fetches the provider's balance for a bitcoin address
func (c *Client) GetAddressBalance(ctx context.Context, address string) (*AddressBalance, error) {
	var out AddressBalance
	if err := c.do(ctx, http.MethodGet, "/addresses/"+address+"/balance", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateWallet creates a custody wallet for a supported coin
func (c *Client) CreateWallet(ctx context.Context, coin string) (json.RawMessage, error) {
	if !ValidCoin(coin) {
		return nil, fmt.Errorf("%w: %q", domainerrors.ErrUnsupportedCoin, coin)
	}
	var out json.RawMessage
	body := map[string]string{"coin": coin}
	if err := c.do(ctx, http.MethodPost, "/wallets/create-new-crypto-wallet", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListWallets lists all custody wallets
func (c *Client) ListWallets(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/wallets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetWalletByCoin fetches the custody wallet for a supported coin
func (c *Client) GetWalletByCoin(ctx context.Context, coin string) (json.RawMessage, error) {
	if !ValidCoin(coin) {
		return nil, fmt.Errorf("%w: %q", domainerrors.ErrUnsupportedCoin, coin)
	}
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/wallets/crypto-wallet/"+coin, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRate fetches the payout rate for one currency
func (c *Client) GetRate(ctx context.Context, currency string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/wallets/payout/rate/"+strings.ToUpper(currency), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRates fetches all payout rates keyed by currency code
func (c *Client) GetRates(ctx context.Context) (map[string]Rate, error) {
	var out struct {
		Data map[string]Rate `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/wallets/payout/rates", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("bitnob: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("bitnob: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues(path).Inc()
		return fmt.Errorf("%w: %v", domainerrors.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues(path).Inc()
		return fmt.Errorf("%w: read response: %v", domainerrors.ErrProviderUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ProviderErrorsTotal.WithLabelValues(path).Inc()
		return &APIError{StatusCode: resp.StatusCode, Message: extractMessage(raw)}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("bitnob: decode response: %w", err)
		}
	}
	return nil
}

func extractMessage(raw []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return "provider request failed"
}
