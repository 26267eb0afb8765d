package entities

import (
	"github.com/shopspring/decimal"
)

// ConvertCurrencyInput represents input for a cross-currency conversion
type ConvertCurrencyInput struct {
	Amount string `json:"amount" binding:"required"`
	From   string `json:"from" binding:"required,min=3,max=10"`
	To     string `json:"to" binding:"required,min=3,max=10"`
}

// ConversionResult is the view returned by a conversion. All rates quote
// against USD, so the cross rate goes through it.
type ConversionResult struct {
	Amount          decimal.Decimal `json:"amount"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	FromRate        decimal.Decimal `json:"from_rate"`
	ToRate          decimal.Decimal `json:"to_rate"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
	Rate            decimal.Decimal `json:"rate"`
}
