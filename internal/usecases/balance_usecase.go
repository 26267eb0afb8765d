package usecases

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"btc-custody.backend/internal/domain/entities"
	domainerrors "btc-custody.backend/internal/domain/errors"
	"btc-custody.backend/internal/domain/repositories"
	"btc-custody.backend/internal/infrastructure/bitcoin"
	"btc-custody.backend/internal/infrastructure/bitnob"
	"btc-custody.backend/pkg/logger"
	"btc-custody.backend/pkg/metrics"
)

// Balance source tags returned to clients
const (
	SourceBitnob   = "bitnob"
	SourceExplorer = "blockchain.info"
	SourceDatabase = "database"
)

const databaseFallbackNote = "Balance from database - API services unavailable"

// ProviderBalancer is the provider slice the balance resolver needs
type ProviderBalancer interface {
	GetAddressBalance(ctx context.Context, address string) (*bitnob.AddressBalance, error)
}

// ExplorerBalancer is the explorer slice the balance resolver needs
type ExplorerBalancer interface {
	GetAddressBalance(ctx context.Context, address string) (decimal.Decimal, error)
}

// BalanceUsecase resolves address balances through tiered sources:
// provider first, public explorer second, stored value last.
type BalanceUsecase struct {
	provider    ProviderBalancer
	explorer    ExplorerBalancer
	validator   *bitcoin.Validator
	addressRepo repositories.AddressRepository
}

// NewBalanceUsecase creates a new balance usecase
func NewBalanceUsecase(
	provider ProviderBalancer,
	explorer ExplorerBalancer,
	validator *bitcoin.Validator,
	addressRepo repositories.AddressRepository,
) *BalanceUsecase {
	return &BalanceUsecase{
		provider:    provider,
		explorer:    explorer,
		validator:   validator,
		addressRepo: addressRepo,
	}
}

// GetBalance resolves the balance for an address. Network tier failures are
// logged and swallowed; only the final storage fallback failing is a hard
// error. A network success persists the fresh balances on the address row.
func (u *BalanceUsecase) GetBalance(ctx context.Context, address string) (*entities.BalanceResult, error) {
	validation := u.validator.Validate(address)
	if !validation.IsValid {
		return nil, domainerrors.BadRequest("Invalid Bitcoin address format")
	}

	if providerBalance, err := u.provider.GetAddressBalance(ctx, address); err == nil {
		u.persist(ctx, address, providerBalance.ConfirmedBalance, providerBalance.UnconfirmedBalance)
		metrics.BalanceSourceTotal.WithLabelValues(SourceBitnob).Inc()
		return &entities.BalanceResult{
			Address:            address,
			Balance:            providerBalance.ConfirmedBalance.Add(providerBalance.UnconfirmedBalance),
			ConfirmedBalance:   providerBalance.ConfirmedBalance,
			UnconfirmedBalance: providerBalance.UnconfirmedBalance,
			Source:             SourceBitnob,
		}, nil
	} else {
		logger.Warn(ctx, "provider balance lookup failed", zap.String("address", address), zap.Error(err))
	}

	if explorerBalance, err := u.explorer.GetAddressBalance(ctx, address); err == nil {
		u.persist(ctx, address, explorerBalance, decimal.Zero)
		metrics.BalanceSourceTotal.WithLabelValues(SourceExplorer).Inc()
		return &entities.BalanceResult{
			Address:            address,
			Balance:            explorerBalance,
			ConfirmedBalance:   explorerBalance,
			UnconfirmedBalance: decimal.Zero,
			Source:             SourceExplorer,
		}, nil
	} else {
		logger.Warn(ctx, "explorer balance lookup failed", zap.String("address", address), zap.Error(err))
	}

	stored, err := u.addressRepo.GetByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Address not found")
		}
		return nil, err
	}

	metrics.BalanceSourceTotal.WithLabelValues(SourceDatabase).Inc()
	return &entities.BalanceResult{
		Address:            address,
		Balance:            stored.TotalBalance(),
		ConfirmedBalance:   stored.ConfirmedBalance,
		UnconfirmedBalance: stored.UnconfirmedBalance,
		Source:             SourceDatabase,
		Note:               databaseFallbackNote,
	}, nil
}

// persist writes fresh balances back. Unknown addresses are fine, callers
// may query addresses this service never stored.
func (u *BalanceUsecase) persist(ctx context.Context, address string, confirmed, unconfirmed decimal.Decimal) {
	if err := u.addressRepo.UpdateBalance(ctx, address, confirmed, unconfirmed); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		logger.Warn(ctx, "failed to persist resolved balance", zap.String("address", address), zap.Error(err))
	}
}
