package service_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/minibank-io/minibank/internal/adapter/http/models"
	"github.com/minibank-io/minibank/internal/commons"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
	CloseAccount(ctx context.Context, accountID string) (commons.Response[models.CloseAccountResponse], error)
	Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
	CalculateCommission(ctx context.Context, amount decimal.Decimal, fromAccountID, toAccountID string) (decimal.Decimal, error)
	GetAccountsByUser(ctx context.Context, userID string) (commons.Response[[]models.AccountResponse], error)
}
