package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	Amount        string `json:"amount"`
	FromAccountID string `json:"fromAccountId"`
	ToAccountID   string `json:"toAccountId"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	amount := strings.TrimSpace(r.Amount)
	if amount == "" {
		errs = append(errs, "amount is required")
	} else {
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			errs = append(errs, "amount must be numeric")
		} else if parsed.LessThanOrEqual(decimal.Zero) {
			errs = append(errs, "amount must be greater than zero")
		}
	}

	if strings.TrimSpace(r.FromAccountID) == "" {
		errs = append(errs, "fromAccountId is required")
	}
	if strings.TrimSpace(r.ToAccountID) == "" {
		errs = append(errs, "toAccountId is required")
	}
	if strings.TrimSpace(r.FromAccountID) != "" &&
		strings.TrimSpace(r.FromAccountID) == strings.TrimSpace(r.ToAccountID) {
		errs = append(errs, "fromAccountId and toAccountId cannot be the same")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type TransferResponse struct {
	ID            string `json:"id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	FromAccountID string `json:"fromAccountId"`
	ToAccountID   string `json:"toAccountId"`
	CreatedAt     string `json:"createdAt"`
}

type CommissionRequest struct {
	Amount        string `json:"amount"`
	FromAccountID string `json:"fromAccountId"`
	ToAccountID   string `json:"toAccountId"`
}

func (r CommissionRequest) Validate() error {
	return TransferRequest(r).Validate()
}

type CommissionResponse struct {
	Amount        string `json:"amount"`
	Commission    string `json:"commission"`
	FromAccountID string `json:"fromAccountId"`
	ToAccountID   string `json:"toAccountId"`
}
