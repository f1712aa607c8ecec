package services

import (
	"context"
	"strings"

	"github.com/minibank-io/minibank/internal/adapter/http/models"
	"github.com/minibank-io/minibank/internal/commons"
	"github.com/minibank-io/minibank/internal/domain"
	"github.com/minibank-io/minibank/internal/logger"
	"github.com/minibank-io/minibank/internal/usecase/service_interfaces"
)

// Verify that TransferService implements the service_interfaces.TransferService interface
var _ service_interfaces.TransferService = (*TransferService)(nil)

// TransferService reads the append-only transfer log. Writing transfers is
// the account service's job; records never change once written.
type TransferService struct {
	transferRepo domain.TransferRepository
}

func NewTransferService(transferRepo domain.TransferRepository) *TransferService {
	return &TransferService{transferRepo: transferRepo}
}

func (s *TransferService) GetTransfersByFromAccount(ctx context.Context, accountID string) (commons.Response[[]models.TransferResponse], error) {
	logger.Info("transfer service get transfers request", logger.Fields{
		"fromAccountId": accountID,
	})

	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		err := domain.NewValidationError("fromAccountId is required")
		return commons.ErrorResponse[[]models.TransferResponse]("validation failed", err.Error()), err
	}

	transfers, err := s.transferRepo.ListByFromAccount(ctx, accountID)
	if err != nil {
		logger.Error("transfer service get transfers failed", err, logger.Fields{
			"fromAccountId": accountID,
		})
		return commons.ErrorResponse[[]models.TransferResponse]("failed to get transfers", "Unable to fetch transfers right now"), err
	}

	resp := make([]models.TransferResponse, 0, len(transfers))
	for _, transfer := range transfers {
		resp = append(resp, mapTransferToResponse(transfer))
	}

	logger.Info("transfer service get transfers success", logger.Fields{
		"fromAccountId": accountID,
		"count":         len(resp),
	})

	return commons.SuccessResponse("transfers fetched successfully", resp), nil
}
