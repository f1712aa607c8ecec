package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds a balance in a single currency on behalf of a user.
// Currency never changes after creation; a closed account is terminal.
type Account struct {
	ID       string
	UserID   string
	Balance  decimal.Decimal
	Currency Currency
	IsOpen   bool
	OpenedAt time.Time
	ClosedAt *time.Time
}
