package usecases

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"btc-custody.backend/internal/domain/entities"
	domainerrors "btc-custody.backend/internal/domain/errors"
	"btc-custody.backend/internal/infrastructure/bitnob"
	"btc-custody.backend/pkg/logger"
)

const (
	ratesCacheKey = "bitnob:payout_rates"
	ratesCacheTTL = 60 * time.Second
)

// RateGateway is the provider slice the currency usecase needs
type RateGateway interface {
	GetRate(ctx context.Context, currency string) (json.RawMessage, error)
	GetRates(ctx context.Context) (map[string]bitnob.Rate, error)
}

// RateCache caches the provider's rates response
type RateCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CurrencyUsecase serves payout rates and cross-currency conversion
type CurrencyUsecase struct {
	provider RateGateway
	cache    RateCache
}

// NewCurrencyUsecase creates a new currency usecase
func NewCurrencyUsecase(provider RateGateway, cache RateCache) *CurrencyUsecase {
	return &CurrencyUsecase{provider: provider, cache: cache}
}

// GetRate fetches the payout rate for one currency
func (u *CurrencyUsecase) GetRate(ctx context.Context, currency string) (json.RawMessage, error) {
	return u.provider.GetRate(ctx, currency)
}

// Convert converts amount between two currencies via their USD quotes:
// amount / from.sellRate * to.buyRate, decimal arithmetic throughout.
func (u *CurrencyUsecase) Convert(ctx context.Context, input *entities.ConvertCurrencyInput) (*entities.ConversionResult, error) {
	amount, err := decimal.NewFromString(input.Amount)
	if err != nil || amount.IsNegative() {
		return nil, domainerrors.BadRequest("Amount must be a non-negative decimal")
	}

	from := strings.ToUpper(input.From)
	to := strings.ToUpper(input.To)

	rates, err := u.rates(ctx)
	if err != nil {
		return nil, err
	}

	fromRate, fromOK := rates[from]
	toRate, toOK := rates[to]
	if !fromOK || !toOK {
		return nil, domainerrors.NewAppError(400, domainerrors.CodeBadRequest,
			"One or both currencies are not supported", domainerrors.ErrUnsupportedCurrency)
	}
	if fromRate.SellRate.IsZero() {
		return nil, domainerrors.NewAppError(400, domainerrors.CodeBadRequest,
			"One or both currencies are not supported", domainerrors.ErrUnsupportedCurrency)
	}

	amountInUSD := amount.Div(fromRate.SellRate)
	converted := amountInUSD.Mul(toRate.BuyRate)

	return &entities.ConversionResult{
		Amount:          amount,
		From:            from,
		To:              to,
		FromRate:        fromRate.SellRate,
		ToRate:          toRate.BuyRate,
		ConvertedAmount: converted,
		Rate:            toRate.BuyRate.Div(fromRate.SellRate),
	}, nil
}

// rates returns the provider's rate table, cached for a minute
func (u *CurrencyUsecase) rates(ctx context.Context) (map[string]bitnob.Rate, error) {
	if u.cache != nil {
		if cached, err := u.cache.Get(ctx, ratesCacheKey); err == nil && cached != "" {
			var rates map[string]bitnob.Rate
			if err := json.Unmarshal([]byte(cached), &rates); err == nil {
				return rates, nil
			}
		}
	}

	rates, err := u.provider.GetRates(ctx)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if payload, err := json.Marshal(rates); err == nil {
			if err := u.cache.Set(ctx, ratesCacheKey, string(payload), ratesCacheTTL); err != nil {
				logger.Warn(ctx, "failed to cache payout rates", zap.Error(err))
			}
		}
	}
	return rates, nil
}
