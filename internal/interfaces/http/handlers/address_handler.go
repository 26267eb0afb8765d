package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"btc-custody.backend/internal/domain/entities"
	"btc-custody.backend/internal/interfaces/http/response"
	"btc-custody.backend/internal/usecases"
)

// AddressHandler handles the address lifecycle endpoints
type AddressHandler struct {
	addressUsecase *usecases.AddressUsecase
	balanceUsecase *usecases.BalanceUsecase
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(addressUsecase *usecases.AddressUsecase, balanceUsecase *usecases.BalanceUsecase) *AddressHandler {
	return &AddressHandler{
		addressUsecase: addressUsecase,
		balanceUsecase: balanceUsecase,
	}
}

// Generate derives one new address
// POST /api/v1/address/generate
func (h *AddressHandler) Generate(c *gin.Context) {
	var input entities.GenerateAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.addressUsecase.Generate(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// GenerateMultiple derives a batch of addresses from one seed
// POST /api/v1/address/generate-multiple
func (h *AddressHandler) GenerateMultiple(c *gin.Context) {
	var input entities.GenerateMultipleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.addressUsecase.GenerateMultiple(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Validate classifies an address. Always 200, validity is in the body.
// POST /api/v1/address/validate
func (h *AddressHandler) Validate(c *gin.Context) {
	var input entities.ValidateAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	result := h.addressUsecase.Validate(c.Request.Context(), &input)
	response.Success(c, http.StatusOK, result)
}

// Import registers an externally generated address
// POST /api/v1/address/import
func (h *AddressHandler) Import(c *gin.Context) {
	var input entities.ImportAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.addressUsecase.Import(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// GetDetails returns the stored address + wallet view
// GET /api/v1/address/details/:address
func (h *AddressHandler) GetDetails(c *gin.Context) {
	result, err := h.addressUsecase.GetDetails(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetBalance resolves the address balance through the tiered sources
// GET /api/v1/address/balance/:address
func (h *AddressHandler) GetBalance(c *gin.Context) {
	result, err := h.balanceUsecase.GetBalance(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// RevealMnemonic returns the sealed mnemonic once and wipes it
// POST /api/v1/address/mnemonic/reveal
func (h *AddressHandler) RevealMnemonic(c *gin.Context) {
	var input entities.RevealMnemonicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	mnemonic, err := h.addressUsecase.RevealMnemonic(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, gin.H{"mnemonic": mnemonic},
		"Store this mnemonic safely. It has been wiped and cannot be retrieved again.")
}
