package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"btc-custody.backend/internal/interfaces/http/response"
	"btc-custody.backend/internal/usecases"
)

// WalletHandler handles provider wallet endpoints
type WalletHandler struct {
	walletUsecase *usecases.WalletUsecase
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase *usecases.WalletUsecase) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

type createWalletInput struct {
	Coin string `json:"coin" binding:"required"`
}

// Create creates a provider wallet for a coin
// POST /api/v1/wallets
func (h *WalletHandler) Create(c *gin.Context) {
	var input createWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.walletUsecase.CreateProviderWallet(c.Request.Context(), input.Coin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// List lists all provider wallets
// GET /api/v1/wallets
func (h *WalletHandler) List(c *gin.Context) {
	result, err := h.walletUsecase.ListProviderWallets(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetByCoin fetches the provider wallet for a coin
// GET /api/v1/wallets/:coin
func (h *WalletHandler) GetByCoin(c *gin.Context) {
	result, err := h.walletUsecase.GetProviderWallet(c.Request.Context(), c.Param("coin"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
