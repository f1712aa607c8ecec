package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is the immutable record of a money movement. Amount is the
// pre-commission sum debited from the source account, denominated in the
// source account's currency at execution time.
type Transfer struct {
	ID            string
	Amount        decimal.Decimal
	Currency      Currency
	FromAccountID string
	ToAccountID   string
	CreatedAt     time.Time
}
