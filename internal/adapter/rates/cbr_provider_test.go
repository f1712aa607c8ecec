package rates_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/minibank-io/minibank/internal/adapter/rates"
	"github.com/minibank-io/minibank/internal/domain"
)

const dailyFeed = `{
  "Date": "2025-03-14T11:30:00+03:00",
  "Valute": {
    "USD": {"ID": "R01235", "NumCode": "840", "Value": 91.2543},
    "EUR": {"ID": "R01239", "NumCode": "978", "Value": 99.7125}
  }
}`

func TestCBRProviderRubleRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/daily_json.js", r.URL.Path)
		w.Header().Set("Content-Type", "application/javascript")
		_, _ = w.Write([]byte(dailyFeed))
	}))
	defer server.Close()

	provider := rates.NewCBRProvider(server.URL)

	rate, err := provider.RubleRate(context.Background(), domain.CurrencyUSD)
	require.NoError(t, err)
	require.True(t, rate.Equal(decimal.RequireFromString("91.2543")), "rate %s", rate)

	rate, err = provider.RubleRate(context.Background(), domain.CurrencyEUR)
	require.NoError(t, err)
	require.True(t, rate.Equal(decimal.RequireFromString("99.7125")), "rate %s", rate)
}

func TestCBRProviderRubleIsUnity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("RUB rate must not hit the feed")
	}))
	defer server.Close()

	provider := rates.NewCBRProvider(server.URL)

	rate, err := provider.RubleRate(context.Background(), domain.CurrencyRUB)
	require.NoError(t, err)
	require.True(t, rate.Equal(decimal.NewFromInt(1)))
}

func TestCBRProviderMissingQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Date": "2025-03-14T11:30:00+03:00", "Valute": {}}`))
	}))
	defer server.Close()

	provider := rates.NewCBRProvider(server.URL)

	_, err := provider.RubleRate(context.Background(), domain.CurrencyUSD)
	require.ErrorIs(t, err, domain.ErrRateUnavailable)
}

func TestCBRProviderUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	provider := rates.NewCBRProvider(server.URL)

	_, err := provider.RubleRate(context.Background(), domain.CurrencyUSD)
	require.ErrorIs(t, err, domain.ErrRateUnavailable)
}

func TestCBRProviderFeedUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	provider := rates.NewCBRProvider(server.URL)

	_, err := provider.RubleRate(context.Background(), domain.CurrencyUSD)
	require.ErrorIs(t, err, domain.ErrRateUnavailable)
}
