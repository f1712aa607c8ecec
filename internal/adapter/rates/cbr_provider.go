package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minibank-io/minibank/internal/domain"
)

// Verify that CBRProvider implements the domain.RateProvider interface
var _ domain.RateProvider = (*CBRProvider)(nil)

// CBRProvider fetches ruble exchange rates from the Central Bank daily
// feed. RUB is 1 by definition and never hits the network.
type CBRProvider struct {
	client  *http.Client
	baseURL string
}

func NewCBRProvider(baseURL string) *CBRProvider {
	return &CBRProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

type dailyResponse struct {
	Date   time.Time            `json:"Date"`
	Valute map[string]valueItem `json:"Valute"`
}

type valueItem struct {
	ID      string  `json:"ID"`
	NumCode string  `json:"NumCode"`
	Value   float64 `json:"Value"`
}

func (p *CBRProvider) RubleRate(ctx context.Context, currency domain.Currency) (decimal.Decimal, error) {
	if currency == domain.CurrencyRUB {
		return decimal.NewFromInt(1), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/daily_json.js", nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", domain.ErrRateUnavailable, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", domain.ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("%w: unexpected status %d", domain.ErrRateUnavailable, resp.StatusCode)
	}

	var daily dailyResponse
	if err := json.NewDecoder(resp.Body).Decode(&daily); err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: decode daily feed: %v", domain.ErrRateUnavailable, err)
	}

	item, ok := daily.Valute[currency.String()]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: no quote for %s", domain.ErrRateUnavailable, currency)
	}
	if item.Value <= 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: non-positive quote for %s", domain.ErrRateUnavailable, currency)
	}

	return decimal.NewFromFloat(item.Value), nil
}
