package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/minibank-io/minibank/internal/adapter/http/models"
	"github.com/minibank-io/minibank/internal/domain"
	"github.com/minibank-io/minibank/internal/usecase/services"
)

func TestConverterServiceConvertThroughRuble(t *testing.T) {
	rates := &fakeRateProvider{rates: map[domain.Currency]decimal.Decimal{
		domain.CurrencyEUR: decimal.NewFromInt(100),
		domain.CurrencyUSD: decimal.NewFromInt(80),
		domain.CurrencyRUB: decimal.NewFromInt(1),
	}}
	svc := services.NewConverterService(rates)

	converted, err := svc.Convert(context.Background(), decimal.NewFromInt(40), domain.CurrencyEUR, domain.CurrencyUSD)
	require.NoError(t, err)
	// 40 EUR -> 4000 RUB -> 50 USD
	require.True(t, converted.Equal(decimal.NewFromInt(50)), "converted %s", converted)
}

func TestConverterServiceConvertAsksProviderPerCurrency(t *testing.T) {
	rates := &fakeRateProvider{rates: map[domain.Currency]decimal.Decimal{
		domain.CurrencyEUR: decimal.NewFromInt(100),
		domain.CurrencyRUB: decimal.NewFromInt(1),
	}}
	svc := services.NewConverterService(rates)

	_, err := svc.Convert(context.Background(), decimal.NewFromInt(1), domain.CurrencyEUR, domain.CurrencyRUB)
	require.NoError(t, err)
	require.Equal(t, 2, rates.calls)
}

func TestConverterServiceConvertSameCurrencyIsIdentity(t *testing.T) {
	rates := &fakeRateProvider{rates: map[domain.Currency]decimal.Decimal{
		domain.CurrencyUSD: decimal.NewFromFloat(92.5),
	}}
	svc := services.NewConverterService(rates)

	amount := decimal.RequireFromString("123.45")
	converted, err := svc.Convert(context.Background(), amount, domain.CurrencyUSD, domain.CurrencyUSD)
	require.NoError(t, err)
	require.True(t, converted.Equal(amount), "converted %s", converted)
}

func TestConverterServiceConvertDoesNotRound(t *testing.T) {
	rates := &fakeRateProvider{rates: map[domain.Currency]decimal.Decimal{
		domain.CurrencyEUR: decimal.NewFromInt(3),
		domain.CurrencyUSD: decimal.NewFromInt(7),
	}}
	svc := services.NewConverterService(rates)

	converted, err := svc.Convert(context.Background(), decimal.NewFromInt(1), domain.CurrencyEUR, domain.CurrencyUSD)
	require.NoError(t, err)
	require.True(t, converted.GreaterThan(decimal.RequireFromString("0.4285")))
	require.True(t, converted.LessThan(decimal.RequireFromString("0.4286")))
}

func TestConverterServiceConvertRateUnavailable(t *testing.T) {
	rates := &fakeRateProvider{err: domain.ErrRateUnavailable}
	svc := services.NewConverterService(rates)

	_, err := svc.Convert(context.Background(), decimal.NewFromInt(1), domain.CurrencyEUR, domain.CurrencyUSD)
	require.ErrorIs(t, err, domain.ErrRateUnavailable)
}

func TestConverterServiceConvertAmount(t *testing.T) {
	rates := &fakeRateProvider{rates: map[domain.Currency]decimal.Decimal{
		domain.CurrencyEUR: decimal.NewFromInt(100),
		domain.CurrencyRUB: decimal.NewFromInt(1),
	}}
	svc := services.NewConverterService(rates)

	response, err := svc.ConvertAmount(context.Background(), models.ConvertRequest{
		Amount:       "2.50",
		FromCurrency: "EUR",
		ToCurrency:   "RUB",
	})
	require.NoError(t, err)
	require.True(t, response.Success)
	require.NotNil(t, response.Data)
	require.Equal(t, "EUR", response.Data.FromCurrency)
	require.Equal(t, "RUB", response.Data.ToCurrency)
	require.Equal(t, "250", response.Data.ConvertedAmount)
}

func TestConverterServiceConvertAmountValidationError(t *testing.T) {
	svc := services.NewConverterService(&fakeRateProvider{})

	_, err := svc.ConvertAmount(context.Background(), models.ConvertRequest{
		Amount:       "abc",
		FromCurrency: "EUR",
		ToCurrency:   "RUB",
	})
	require.Error(t, err)

	_, err = svc.ConvertAmount(context.Background(), models.ConvertRequest{
		Amount:       "10",
		FromCurrency: "GBP",
		ToCurrency:   "RUB",
	})
	require.Error(t, err)
}
