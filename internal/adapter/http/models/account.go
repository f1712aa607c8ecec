package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/minibank-io/minibank/internal/domain"
)

type CreateAccountRequest struct {
	UserID        string `json:"userId"`
	Currency      string `json:"currency"`
	InitialAmount string `json:"initialAmount,omitempty"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, "userId is required")
	}

	ccy := strings.ToUpper(strings.TrimSpace(r.Currency))
	if ccy == "" {
		errs = append(errs, "currency is required")
	} else if !domain.IsSupportedCurrency(ccy) {
		errs = append(errs, "currency must be one of EUR, USD, RUB")
	}

	if raw := strings.TrimSpace(r.InitialAmount); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			errs = append(errs, "initialAmount must be numeric")
		} else if amount.IsNegative() {
			errs = append(errs, "initialAmount cannot be negative")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type CloseAccountRequest struct {
	AccountID string `json:"accountId"`
}

func (r CloseAccountRequest) Validate() error {
	if strings.TrimSpace(r.AccountID) == "" {
		return errors.New("accountId is required")
	}
	return nil
}

type AccountResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
	IsOpen   bool   `json:"isOpen"`
	OpenedAt string `json:"openedAt"`
	ClosedAt string `json:"closedAt,omitempty"`
}

type CloseAccountResponse struct {
	AccountID string `json:"accountId"`
	ClosedAt  string `json:"closedAt"`
}
