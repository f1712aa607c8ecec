package controller

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/minibank-io/minibank/internal/adapter/http/models"
	"github.com/minibank-io/minibank/internal/commons"
	"github.com/minibank-io/minibank/internal/logger"
	"github.com/minibank-io/minibank/internal/usecase/service_interfaces"
)

type UserController struct {
	service service_interfaces.UserService
}

func NewUserController(service service_interfaces.UserService) *UserController {
	return &UserController{service: service}
}

func (c *UserController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	collection := http.HandlerFunc(c.users)
	item := http.HandlerFunc(c.userByID)
	if authMiddleware != nil {
		collection = authMiddleware(collection).ServeHTTP
		item = authMiddleware(item).ServeHTTP
	}
	mux.Handle("/users", http.HandlerFunc(collection))
	mux.Handle("/users/", http.HandlerFunc(item))
}

func (c *UserController) users(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.createUser(w, r)
	case http.MethodGet:
		c.getAllUsers(w, r)
	default:
		response := commons.ErrorResponse[models.UserResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
	}
}

func (c *UserController) userByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/users/")
	if id == "" || strings.Contains(id, "/") {
		response := commons.ErrorResponse[models.UserResponse]("validation failed", "user id is required")
		writeJSON(w, http.StatusBadRequest, response)
		return
	}

	switch r.Method {
	case http.MethodGet:
		c.getUser(w, r, id)
	case http.MethodPut:
		c.updateUser(w, r, id)
	case http.MethodDelete:
		c.deleteUser(w, r, id)
	default:
		response := commons.ErrorResponse[models.UserResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
	}
}

func (c *UserController) createUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.UserResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.UserResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.CreateUser(r.Context(), req)
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

func (c *UserController) getAllUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetAllUsers(r.Context())
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

func (c *UserController) getUser(w http.ResponseWriter, r *http.Request, id string) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetUser(r.Context(), id)
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

func (c *UserController) updateUser(w http.ResponseWriter, r *http.Request, id string) {
	start := time.Now()
	logRequest(r, nil)

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.UserResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.UserResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.UpdateUser(r.Context(), id, req)
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

func (c *UserController) deleteUser(w http.ResponseWriter, r *http.Request, id string) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.DeleteUser(r.Context(), id)
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
