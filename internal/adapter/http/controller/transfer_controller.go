package controller

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minibank-io/minibank/internal/adapter/http/models"
	"github.com/minibank-io/minibank/internal/commons"
	"github.com/minibank-io/minibank/internal/logger"
	"github.com/minibank-io/minibank/internal/usecase/service_interfaces"
)

// TransferController serves transfer execution and commission quoting
// through the account service, and transfer history through the transfer
// service.
type TransferController struct {
	accounts  service_interfaces.AccountService
	transfers service_interfaces.TransferService
}

func NewTransferController(accounts service_interfaces.AccountService, transfers service_interfaces.TransferService) *TransferController {
	return &TransferController{accounts: accounts, transfers: transfers}
}

func (c *TransferController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	transfers := http.HandlerFunc(c.handleTransfers)
	commission := http.HandlerFunc(c.calculateCommission)
	if authMiddleware != nil {
		transfers = authMiddleware(transfers).ServeHTTP
		commission = authMiddleware(commission).ServeHTTP
	}
	mux.Handle("/transfers", http.HandlerFunc(transfers))
	mux.Handle("/transfers/commission", http.HandlerFunc(commission))
}

func (c *TransferController) handleTransfers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.transfer(w, r)
	case http.MethodGet:
		c.getTransfersByFromAccount(w, r)
	default:
		response := commons.ErrorResponse[models.TransferResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
	}
}

func (c *TransferController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.accounts.Transfer(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForError(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransferController) getTransfersByFromAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	accountID := r.URL.Query().Get("fromAccountId")
	if accountID == "" {
		response := commons.ErrorResponse[[]models.TransferResponse]("validation failed", "fromAccountId query parameter is required")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.transfers.GetTransfersByFromAccount(r.Context(), accountID)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForError(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransferController) calculateCommission(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.CommissionResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var req models.CommissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CommissionResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CommissionResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	commission, err := c.accounts.CalculateCommission(r.Context(), amount, strings.TrimSpace(req.FromAccountID), strings.TrimSpace(req.ToAccountID))
	if err != nil {
		logError(r, err, nil)
		message := "failed to calculate commission"
		if statusForError(err) == http.StatusNotFound {
			message = "Account not found"
		}
		response := commons.ErrorResponse[models.CommissionResponse](message)
		status := statusForError(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	response := commons.SuccessResponse("commission calculated successfully", models.CommissionResponse{
		Amount:        amount.String(),
		Commission:    commission.String(),
		FromAccountID: strings.TrimSpace(req.FromAccountID),
		ToAccountID:   strings.TrimSpace(req.ToAccountID),
	})
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
