package rates

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/minibank-io/minibank/internal/domain"
	"github.com/minibank-io/minibank/internal/logger"
)

// Verify that CachedProvider implements the domain.RateProvider interface
var _ domain.RateProvider = (*CachedProvider)(nil)

// CachedProvider keeps quotes in redis for a TTL so every transfer does not
// hit the upstream feed. The caching policy lives here, in the provider:
// the converter never caches. A redis outage degrades to calling the inner
// provider directly.
type CachedProvider struct {
	inner  domain.RateProvider
	client *redis.Client
	ttl    time.Duration
}

func NewCachedProvider(inner domain.RateProvider, client *redis.Client, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}
}

func (p *CachedProvider) RubleRate(ctx context.Context, currency domain.Currency) (decimal.Decimal, error) {
	if currency == domain.CurrencyRUB {
		return p.inner.RubleRate(ctx, currency)
	}

	key := rateKey(currency)

	cached, err := p.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		rate, parseErr := decimal.NewFromString(cached)
		if parseErr == nil {
			return rate, nil
		}
		logger.Warn("rate cache holds unparsable value", logger.Fields{
			"key":   key,
			"value": cached,
		})
	case err != redis.Nil:
		logger.Warn("rate cache read failed, falling back to provider", logger.Fields{
			"key":   key,
			"error": err.Error(),
		})
	}

	rate, err := p.inner.RubleRate(ctx, currency)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if err := p.client.Set(ctx, key, rate.String(), p.ttl).Err(); err != nil {
		logger.Warn("rate cache write failed", logger.Fields{
			"key":   key,
			"error": err.Error(),
		})
	}

	return rate, nil
}

func rateKey(currency domain.Currency) string {
	return "rates:ruble:" + currency.String()
}
