package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/minibank-io/minibank/internal/adapter/http/models"
	"github.com/minibank-io/minibank/internal/commons"
	"github.com/minibank-io/minibank/internal/logger"
	"github.com/minibank-io/minibank/internal/usecase/service_interfaces"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	accounts := http.HandlerFunc(c.accounts)
	closeAccount := http.HandlerFunc(c.closeAccount)
	if authMiddleware != nil {
		accounts = authMiddleware(accounts).ServeHTTP
		closeAccount = authMiddleware(closeAccount).ServeHTTP
	}
	mux.Handle("/accounts", http.HandlerFunc(accounts))
	mux.Handle("/accounts/close", http.HandlerFunc(closeAccount))
}

func (c *AccountController) accounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.createAccount(w, r)
	case http.MethodGet:
		c.getAccountsByUser(w, r)
	default:
		response := commons.ErrorResponse[models.AccountResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
	}
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.CreateAccount(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForError(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AccountController) getAccountsByUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		response := commons.ErrorResponse[[]models.AccountResponse]("validation failed", "userId query parameter is required")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.GetAccountsByUser(r.Context(), userID)
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

func (c *AccountController) closeAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.CloseAccountResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var req models.CloseAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CloseAccountResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CloseAccountResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.CloseAccount(r.Context(), req.AccountID)
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
