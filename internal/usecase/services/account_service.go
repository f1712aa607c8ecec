package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/minibank-io/minibank/internal/adapter/http/models"
	"github.com/minibank-io/minibank/internal/commons"
	"github.com/minibank-io/minibank/internal/domain"
	"github.com/minibank-io/minibank/internal/logger"
	"github.com/minibank-io/minibank/internal/usecase/service_interfaces"
)

// Verify that AccountService implements the service_interfaces.AccountService interface
var _ service_interfaces.AccountService = (*AccountService)(nil)

// AccountService owns account lifecycle and the transfer engine: it
// validates, prices and atomically executes money movements between
// accounts. All mutations of one operation go through a single unit of
// work commit.
type AccountService struct {
	accountRepo  domain.AccountRepository
	userRepo     domain.UserRepository
	transferRepo domain.TransferRepository
	converter    service_interfaces.ConverterService
	uow          domain.UnitOfWork
	clock        domain.Clock
}

func NewAccountService(
	accountRepo domain.AccountRepository,
	userRepo domain.UserRepository,
	transferRepo domain.TransferRepository,
	converter service_interfaces.ConverterService,
	uow domain.UnitOfWork,
	clock domain.Clock,
) *AccountService {
	return &AccountService{
		accountRepo:  accountRepo,
		userRepo:     userRepo,
		transferRepo: transferRepo,
		converter:    converter,
		uow:          uow,
		clock:        clock,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	userID := strings.TrimSpace(req.UserID)
	currency, err := domain.ParseCurrency(strings.ToUpper(strings.TrimSpace(req.Currency)))
	if err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	balance := decimal.Zero
	if raw := strings.TrimSpace(req.InitialAmount); raw != "" {
		balance, _ = decimal.NewFromString(raw)
	}

	var created domain.Account
	err = s.uow.Run(ctx, func(txCtx context.Context) error {
		if _, err := s.userRepo.GetByID(txCtx, userID); err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.NewValidationError("user with id %q does not exist", userID)
			}
			return err
		}

		account := domain.Account{
			ID:       uuid.NewString(),
			UserID:   userID,
			Balance:  balance,
			Currency: currency,
			IsOpen:   true,
			OpenedAt: s.clock.Now(),
		}

		var err error
		created, err = s.accountRepo.Create(txCtx, account)
		return err
	})
	if err != nil {
		logger.Error("account service create account failed", err, logger.Fields{
			"userId": userID,
		})
		if domain.IsValidationError(err) {
			return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	response := mapAccountToResponse(created)

	logger.Info("account service create account success", logger.Fields{
		"accountId": response.ID,
		"userId":    response.UserID,
		"currency":  response.Currency,
	})

	return commons.SuccessResponse("account created successfully", response), nil
}

func (s *AccountService) CloseAccount(ctx context.Context, accountID string) (commons.Response[models.CloseAccountResponse], error) {
	logger.Info("account service close account request", logger.Fields{
		"accountId": accountID,
	})

	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		err := domain.NewValidationError("accountId is required")
		return commons.ErrorResponse[models.CloseAccountResponse]("validation failed", err.Error()), err
	}

	var closedAt time.Time
	err := s.uow.Run(ctx, func(txCtx context.Context) error {
		account, err := s.accountRepo.GetByIDForUpdate(txCtx, accountID)
		if err != nil {
			return err
		}

		if !account.IsOpen {
			return domain.NewValidationError("account with id %q is already closed", accountID)
		}
		if !account.Balance.IsZero() {
			return domain.NewValidationError("account balance must be 0 to close, got %s", account.Balance.String())
		}

		closedAt = s.clock.Now()
		return s.accountRepo.Close(txCtx, accountID, closedAt)
	})
	if err != nil {
		logger.Error("account service close account failed", err, logger.Fields{
			"accountId": accountID,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CloseAccountResponse]("Account not found"), err
		}
		if domain.IsValidationError(err) {
			return commons.ErrorResponse[models.CloseAccountResponse]("validation failed", err.Error()), err
		}
		return commons.ErrorResponse[models.CloseAccountResponse]("failed to close account", "Unable to close account right now"), err
	}

	response := models.CloseAccountResponse{
		AccountID: accountID,
		ClosedAt:  closedAt.Format(time.RFC3339),
	}

	logger.Info("account service close account success", logger.Fields{
		"accountId": accountID,
	})

	return commons.SuccessResponse("account closed successfully", response), nil
}

// Transfer moves funds between two accounts. The sender is debited the full
// amount; the receiver is credited the amount net of commission, converted
// into its own currency. The commission itself is credited to no account —
// it is absorbed in the conversion leg. That matches the historical billing
// behavior and is kept until product decides otherwise.
func (s *AccountService) Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("account service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service transfer validation failed", err, nil)
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	fromAccountID := strings.TrimSpace(req.FromAccountID)
	toAccountID := strings.TrimSpace(req.ToAccountID)

	var created domain.Transfer
	err := s.uow.Run(ctx, func(txCtx context.Context) error {
		fromAccount, toAccount, err := s.lockAccountPair(txCtx, fromAccountID, toAccountID)
		if err != nil {
			return err
		}

		if !fromAccount.IsOpen {
			return domain.NewValidationError("account with id %q is closed", fromAccountID)
		}
		if !toAccount.IsOpen {
			return domain.NewValidationError("account with id %q is closed", toAccountID)
		}
		if amount.GreaterThan(fromAccount.Balance) {
			return domain.ErrInsufficientBalance
		}

		commission, err := s.CalculateCommission(txCtx, amount, fromAccountID, toAccountID)
		if err != nil {
			return err
		}

		if err := s.accountRepo.UpdateBalance(txCtx, fromAccountID, fromAccount.Balance.Sub(amount)); err != nil {
			return err
		}

		netAmount := amount.Sub(commission)
		convertedNet, err := s.converter.Convert(txCtx, netAmount, fromAccount.Currency, toAccount.Currency)
		if err != nil {
			return err
		}

		if err := s.accountRepo.UpdateBalance(txCtx, toAccountID, toAccount.Balance.Add(convertedNet)); err != nil {
			return err
		}

		created, err = s.transferRepo.Create(txCtx, domain.Transfer{
			ID:            uuid.NewString(),
			Amount:        amount,
			Currency:      fromAccount.Currency,
			FromAccountID: fromAccountID,
			ToAccountID:   toAccountID,
			CreatedAt:     s.clock.Now(),
		})
		return err
	})
	if err != nil {
		logger.Error("account service transfer failed", err, logger.Fields{
			"fromAccountId": fromAccountID,
			"toAccountId":   toAccountID,
		})
		if ctx.Err() != nil {
			logger.Warn("account service transfer aborted by caller", logger.Fields{
				"fromAccountId": fromAccountID,
				"toAccountId":   toAccountID,
			})
		}

		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			return commons.ErrorResponse[models.TransferResponse]("Account not found"), err
		case errors.Is(err, domain.ErrInsufficientBalance):
			return commons.ErrorResponse[models.TransferResponse]("Insufficient balance", err.Error()), err
		case errors.Is(err, domain.ErrRateUnavailable):
			return commons.ErrorResponse[models.TransferResponse]("Exchange rate unavailable", "Try again later"), err
		case domain.IsValidationError(err):
			return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
		default:
			return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
		}
	}

	response := mapTransferToResponse(created)

	logger.Info("account service transfer success", logger.Fields{
		"transferId":    response.ID,
		"fromAccountId": response.FromAccountID,
		"toAccountId":   response.ToAccountID,
		"amount":        response.Amount,
		"currency":      response.Currency,
	})

	return commons.SuccessResponse("transfer completed successfully", response), nil
}

// CalculateCommission prices a transfer. Transfers between accounts of the
// same owner are free; otherwise the fee is 2% of the amount, with the
// intermediate product amount*2 rounded to the nearest integer (half away
// from zero) before dividing by 100. The rounding order affects settled
// amounts and must not be changed.
func (s *AccountService) CalculateCommission(ctx context.Context, amount decimal.Decimal, fromAccountID, toAccountID string) (decimal.Decimal, error) {
	fromAccount, err := s.accountRepo.GetByID(ctx, fromAccountID)
	if err != nil {
		return decimal.Decimal{}, err
	}

	toAccount, err := s.accountRepo.GetByID(ctx, toAccountID)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if fromAccount.UserID == toAccount.UserID {
		return decimal.Zero, nil
	}

	return amount.Mul(decimal.NewFromInt(2)).Round(0).Div(decimal.NewFromInt(100)), nil
}

func (s *AccountService) GetAccountsByUser(ctx context.Context, userID string) (commons.Response[[]models.AccountResponse], error) {
	logger.Info("account service get accounts by user request", logger.Fields{
		"userId": userID,
	})

	userID = strings.TrimSpace(userID)
	if userID == "" {
		err := domain.NewValidationError("userId is required")
		return commons.ErrorResponse[[]models.AccountResponse]("validation failed", err.Error()), err
	}

	accounts, err := s.accountRepo.ListByUserID(ctx, userID)
	if err != nil {
		logger.Error("account service get accounts by user failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[[]models.AccountResponse]("failed to get accounts", "Unable to fetch accounts right now"), err
	}

	resp := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		resp = append(resp, mapAccountToResponse(account))
	}

	logger.Info("account service get accounts by user success", logger.Fields{
		"userId": userID,
		"count":  len(resp),
	})

	return commons.SuccessResponse("accounts fetched successfully", resp), nil
}

// lockAccountPair loads both accounts with row locks, always locking the
// lower id first so two crossing transfers cannot deadlock. NotFound is
// still reported for the source account first.
func (s *AccountService) lockAccountPair(ctx context.Context, fromAccountID, toAccountID string) (domain.Account, domain.Account, error) {
	firstID, secondID := fromAccountID, toAccountID
	if firstID > secondID {
		firstID, secondID = secondID, firstID
	}

	loaded := make(map[string]domain.Account, 2)
	missing := make(map[string]bool, 2)

	for _, id := range []string{firstID, secondID} {
		account, err := s.accountRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				missing[id] = true
				continue
			}
			return domain.Account{}, domain.Account{}, err
		}
		loaded[id] = account
	}

	if missing[fromAccountID] {
		return domain.Account{}, domain.Account{}, domain.ErrRecordNotFound
	}
	if missing[toAccountID] {
		return domain.Account{}, domain.Account{}, domain.ErrRecordNotFound
	}

	return loaded[fromAccountID], loaded[toAccountID], nil
}

func mapAccountToResponse(account domain.Account) models.AccountResponse {
	response := models.AccountResponse{
		ID:       account.ID,
		UserID:   account.UserID,
		Balance:  account.Balance.String(),
		Currency: account.Currency.String(),
		IsOpen:   account.IsOpen,
		OpenedAt: account.OpenedAt.Format(time.RFC3339),
	}
	if account.ClosedAt != nil {
		response.ClosedAt = account.ClosedAt.Format(time.RFC3339)
	}
	return response
}

func mapTransferToResponse(transfer domain.Transfer) models.TransferResponse {
	return models.TransferResponse{
		ID:            transfer.ID,
		Amount:        transfer.Amount.String(),
		Currency:      transfer.Currency.String(),
		FromAccountID: transfer.FromAccountID,
		ToAccountID:   transfer.ToAccountID,
		CreatedAt:     transfer.CreatedAt.Format(time.RFC3339),
	}
}
