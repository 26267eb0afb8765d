package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"btc-custody.backend/internal/domain/entities"
	"btc-custody.backend/internal/interfaces/http/response"
	"btc-custody.backend/internal/usecases"
)

// CurrencyHandler handles rate and conversion endpoints
type CurrencyHandler struct {
	currencyUsecase *usecases.CurrencyUsecase
}

// NewCurrencyHandler creates a new currency handler
func NewCurrencyHandler(currencyUsecase *usecases.CurrencyUsecase) *CurrencyHandler {
	return &CurrencyHandler{currencyUsecase: currencyUsecase}
}

// GetRate fetches the payout rate for one currency
// GET /api/v1/currency/rate/:currency
func (h *CurrencyHandler) GetRate(c *gin.Context) {
	result, err := h.currencyUsecase.GetRate(c.Request.Context(), c.Param("currency"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Convert converts an amount between two currencies
// POST /api/v1/currency/convert
func (h *CurrencyHandler) Convert(c *gin.Context) {
	var input entities.ConvertCurrencyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.currencyUsecase.Convert(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
