package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/minibank-io/minibank/internal/domain"
)

type ConvertRequest struct {
	Amount       string `json:"amount"`
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
}

func (r ConvertRequest) Validate() error {
	var errs []string

	amount := strings.TrimSpace(r.Amount)
	if amount == "" {
		errs = append(errs, "amount is required")
	} else {
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			errs = append(errs, "amount must be numeric")
		} else if parsed.IsNegative() {
			errs = append(errs, "amount cannot be negative")
		}
	}

	if msg := validateCurrencyCode("fromCurrency", r.FromCurrency); msg != "" {
		errs = append(errs, msg)
	}
	if msg := validateCurrencyCode("toCurrency", r.ToCurrency); msg != "" {
		errs = append(errs, msg)
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func validateCurrencyCode(name, raw string) string {
	ccy := strings.ToUpper(strings.TrimSpace(raw))
	if ccy == "" {
		return name + " is required"
	}
	if !domain.IsSupportedCurrency(ccy) {
		return name + " must be one of EUR, USD, RUB"
	}
	return ""
}

type ConvertResponse struct {
	Amount          string `json:"amount"`
	FromCurrency    string `json:"fromCurrency"`
	ToCurrency      string `json:"toCurrency"`
	ConvertedAmount string `json:"convertedAmount"`
}
