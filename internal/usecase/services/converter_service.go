package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/minibank-io/minibank/internal/adapter/http/models"
	"github.com/minibank-io/minibank/internal/commons"
	"github.com/minibank-io/minibank/internal/domain"
	"github.com/minibank-io/minibank/internal/logger"
	"github.com/minibank-io/minibank/internal/usecase/service_interfaces"
)

// Verify that ConverterService implements the service_interfaces.ConverterService interface
var _ service_interfaces.ConverterService = (*ConverterService)(nil)

type ConverterService struct {
	rates domain.RateProvider
}

func NewConverterService(rates domain.RateProvider) *ConverterService {
	return &ConverterService{rates: rates}
}

// Convert translates amount from one currency to another through the ruble
// rate: amount * rateOf(from) / rateOf(to). The provider is asked once per
// currency argument and no rounding happens here; callers round if they
// need to.
func (s *ConverterService) Convert(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error) {
	rateFrom, err := s.rates.RubleRate(ctx, from)
	if err != nil {
		return decimal.Decimal{}, err
	}

	rateTo, err := s.rates.RubleRate(ctx, to)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return amount.Mul(rateFrom).Div(rateTo), nil
}

func (s *ConverterService) ConvertAmount(ctx context.Context, req models.ConvertRequest) (commons.Response[models.ConvertResponse], error) {
	logger.Info("converter service convert request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("converter service convert validation failed", err, nil)
		return commons.ErrorResponse[models.ConvertResponse]("validation failed", err.Error()), err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))

	from, err := domain.ParseCurrency(strings.ToUpper(strings.TrimSpace(req.FromCurrency)))
	if err != nil {
		return commons.ErrorResponse[models.ConvertResponse]("validation failed", err.Error()), err
	}
	to, err := domain.ParseCurrency(strings.ToUpper(strings.TrimSpace(req.ToCurrency)))
	if err != nil {
		return commons.ErrorResponse[models.ConvertResponse]("validation failed", err.Error()), err
	}

	converted, err := s.Convert(ctx, amount, from, to)
	if err != nil {
		logger.Error("converter service convert failed", err, logger.Fields{
			"fromCurrency": from.String(),
			"toCurrency":   to.String(),
		})
		if errors.Is(err, domain.ErrRateUnavailable) {
			return commons.ErrorResponse[models.ConvertResponse]("Exchange rate unavailable", "Try again later"), err
		}
		return commons.ErrorResponse[models.ConvertResponse]("failed to convert", "Unable to convert right now"), err
	}

	response := models.ConvertResponse{
		Amount:          amount.String(),
		FromCurrency:    from.String(),
		ToCurrency:      to.String(),
		ConvertedAmount: converted.String(),
	}

	logger.Info("converter service convert success", logger.Fields{
		"fromCurrency":    response.FromCurrency,
		"toCurrency":      response.ToCurrency,
		"convertedAmount": response.ConvertedAmount,
	})

	return commons.SuccessResponse("amount converted successfully", response), nil
}
