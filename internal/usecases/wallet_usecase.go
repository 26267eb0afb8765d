package usecases

import (
	"context"
	"encoding/json"

	domainerrors "btc-custody.backend/internal/domain/errors"
	"btc-custody.backend/internal/infrastructure/bitnob"
)

// ProviderGateway is the custody-provider slice the wallet usecase needs
type ProviderGateway interface {
	CreateWallet(ctx context.Context, coin string) (json.RawMessage, error)
	ListWallets(ctx context.Context) (json.RawMessage, error)
	GetWalletByCoin(ctx context.Context, coin string) (json.RawMessage, error)
}

// WalletUsecase proxies provider-side wallet management for the supported
// alt coins. BTC custody itself is local, these wallets live at the provider.
type WalletUsecase struct {
	provider ProviderGateway
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(provider ProviderGateway) *WalletUsecase {
	return &WalletUsecase{provider: provider}
}

// CreateProviderWallet creates a provider wallet for the coin. Unsupported
// coins are rejected before any provider call.
func (u *WalletUsecase) CreateProviderWallet(ctx context.Context, coin string) (json.RawMessage, error) {
	if !bitnob.ValidCoin(coin) {
		return nil, domainerrors.BadRequest(`Invalid coin type. Must be either "trx" or "bnb"`)
	}
	return u.provider.CreateWallet(ctx, coin)
}

// ListProviderWallets lists all provider wallets
func (u *WalletUsecase) ListProviderWallets(ctx context.Context) (json.RawMessage, error) {
	return u.provider.ListWallets(ctx)
}

// GetProviderWallet fetches the provider wallet for the coin
func (u *WalletUsecase) GetProviderWallet(ctx context.Context, coin string) (json.RawMessage, error) {
	if !bitnob.ValidCoin(coin) {
		return nil, domainerrors.BadRequest(`Invalid coin type. Must be either "trx" or "bnb"`)
	}
	return u.provider.GetWalletByCoin(ctx, coin)
}
