package controller

import (
	"net/http"
	"time"

	"github.com/minibank-io/minibank/internal/adapter/http/models"
	"github.com/minibank-io/minibank/internal/commons"
	"github.com/minibank-io/minibank/internal/logger"
	"github.com/minibank-io/minibank/internal/usecase/service_interfaces"
)

type ConverterController struct {
	service service_interfaces.ConverterService
}

func NewConverterController(service service_interfaces.ConverterService) *ConverterController {
	return &ConverterController{service: service}
}

func (c *ConverterController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	handler := http.HandlerFunc(c.convert)
	if authMiddleware != nil {
		handler = authMiddleware(handler).ServeHTTP
	}
	mux.Handle("/convert", http.HandlerFunc(handler))
}

func (c *ConverterController) convert(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[models.ConvertResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	query := r.URL.Query()
	req := models.ConvertRequest{
		Amount:       query.Get("amount"),
		FromCurrency: query.Get("from"),
		ToCurrency:   query.Get("to"),
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.ConvertResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.ConvertAmount(r.Context(), req)
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
