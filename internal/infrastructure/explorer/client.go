package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainerrors "btc-custody.backend/internal/domain/errors"
	"btc-custody.backend/pkg/metrics"
)

const requestTimeout = 10 * time.Second

// AddressInfo is the slice of the explorer's rawaddr response we use.
// Balances come back in satoshis.
type AddressInfo struct {
	Address       string `json:"address"`
	FinalBalance  int64  `json:"final_balance"`
	TotalReceived int64  `json:"total_received"`
	TxCount       int    `json:"n_tx"`
}

// Client queries a blockchain.info compatible explorer
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an explorer client for the given base URL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// GetAddressBalance fetches and converts the final balance to BTC
func (c *Client) GetAddressBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	info, err := c.GetAddressInfo(ctx, address)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(info.FinalBalance).Shift(-8), nil
}

// GetAddressInfo fetches raw address info from the explorer
func (c *Client) GetAddressInfo(ctx context.Context, address string) (*AddressInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rawaddr/"+address, nil)
	if err != nil {
		return nil, fmt.Errorf("explorer: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("/rawaddr").Inc()
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderErrorsTotal.WithLabelValues("/rawaddr").Inc()
		return nil, fmt.Errorf("%w: explorer status %d", domainerrors.ErrProviderUnavailable, resp.StatusCode)
	}

	var info AddressInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("explorer: decode response: %w", err)
	}
	return &info, nil
}
