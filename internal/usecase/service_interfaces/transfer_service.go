package service_interfaces

import (
	"context"

	"github.com/minibank-io/minibank/internal/adapter/http/models"
	"github.com/minibank-io/minibank/internal/commons"
)

type TransferService interface {
	GetTransfersByFromAccount(ctx context.Context, accountID string) (commons.Response[[]models.TransferResponse], error)
}
