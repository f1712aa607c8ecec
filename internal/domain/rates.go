package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider supplies how many rubles one unit of a currency is worth.
// RUB is 1 by definition. Implementations own any caching or staleness
// policy; failures surface as ErrRateUnavailable.
type RateProvider interface {
	RubleRate(ctx context.Context, currency Currency) (decimal.Decimal, error)
}
