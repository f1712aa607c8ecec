package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type AccountRepository interface {
	Create(ctx context.Context, account Account) (Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
	// GetByIDForUpdate loads the account and, inside a unit of work, takes a
	// row lock on it so concurrent balance mutations serialize.
	GetByIDForUpdate(ctx context.Context, id string) (Account, error)
	ListByUserID(ctx context.Context, userID string) ([]Account, error)
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error
	Close(ctx context.Context, id string, closedAt time.Time) error
	HasAccountsForUser(ctx context.Context, userID string) (bool, error)
}
