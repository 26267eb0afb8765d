package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"btc-custody.backend/internal/domain/entities"
	"btc-custody.backend/internal/interfaces/http/response"
	"btc-custody.backend/internal/usecases"
)

// TransactionHandler handles transaction record endpoints
type TransactionHandler struct {
	transactionUsecase *usecases.TransactionUsecase
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionUsecase *usecases.TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{transactionUsecase: transactionUsecase}
}

// Create records a new transaction
// POST /api/v1/transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var input entities.CreateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.transactionUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// List returns all transaction records
// GET /api/v1/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	result, err := h.transactionUsecase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetByID fetches one transaction record
// GET /api/v1/transactions/:id
func (h *TransactionHandler) GetByID(c *gin.Context) {
	result, err := h.transactionUsecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// UpdateStatus transitions a transaction's status
// PATCH /api/v1/transactions/:id/status
func (h *TransactionHandler) UpdateStatus(c *gin.Context) {
	var input entities.UpdateTxnStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.transactionUsecase.UpdateStatus(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
