package service_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/minibank-io/minibank/internal/adapter/http/models"
	"github.com/minibank-io/minibank/internal/commons"
	"github.com/minibank-io/minibank/internal/domain"
)

type ConverterService interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error)
	ConvertAmount(ctx context.Context, req models.ConvertRequest) (commons.Response[models.ConvertResponse], error)
}
