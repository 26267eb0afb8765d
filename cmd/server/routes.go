package main

import (
	"github.com/gin-gonic/gin"

	"btc-custody.backend/internal/interfaces/http/handlers"
	"btc-custody.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	addressHandler     *handlers.AddressHandler
	walletHandler      *handlers.WalletHandler
	currencyHandler    *handlers.CurrencyHandler
	transactionHandler *handlers.TransactionHandler
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// BTC address lifecycle
		address := v1.Group("/address")
		{
			// Generation mints key material, retries must not derive twice
			address.POST("/generate", middleware.IdempotencyMiddleware(), d.addressHandler.Generate)
			address.POST("/generate-multiple", middleware.IdempotencyMiddleware(), d.addressHandler.GenerateMultiple)
			address.POST("/validate", d.addressHandler.Validate)
			address.POST("/import", d.addressHandler.Import)
			address.GET("/details/:address", d.addressHandler.GetDetails)
			address.GET("/balance/:address", d.addressHandler.GetBalance)
			address.POST("/mnemonic/reveal", d.addressHandler.RevealMnemonic)
		}

		// Provider-side wallets
		wallets := v1.Group("/wallets")
		{
			wallets.POST("", d.walletHandler.Create)
			wallets.GET("", d.walletHandler.List)
			wallets.GET("/:coin", d.walletHandler.GetByCoin)
		}

		// Rates and conversion
		currency := v1.Group("/currency")
		{
			currency.GET("/rate/:currency", d.currencyHandler.GetRate)
			currency.POST("/convert", d.currencyHandler.Convert)
		}

		// Local transaction records
		transactions := v1.Group("/transactions")
		{
			transactions.POST("", d.transactionHandler.Create)
			transactions.GET("", d.transactionHandler.List)
			transactions.GET("/:id", d.transactionHandler.GetByID)
			transactions.PATCH("/:id/status", d.transactionHandler.UpdateStatus)
		}
	}
}
