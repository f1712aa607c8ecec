package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/minibank-io/minibank/internal/adapter/http/models"
	"github.com/minibank-io/minibank/internal/commons"
	"github.com/minibank-io/minibank/internal/domain"
	"github.com/minibank-io/minibank/internal/logger"
	"github.com/minibank-io/minibank/internal/usecase/service_interfaces"
)

// Verify that UserService implements the service_interfaces.UserService interface
var _ service_interfaces.UserService = (*UserService)(nil)

type UserService struct {
	userRepo    domain.UserRepository
	accountRepo domain.AccountRepository
	uow         domain.UnitOfWork
}

func NewUserService(userRepo domain.UserRepository, accountRepo domain.AccountRepository, uow domain.UnitOfWork) *UserService {
	return &UserService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		uow:         uow,
	}
}

func (s *UserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (commons.Response[models.UserResponse], error) {
	logger.Info("user service create user request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("user service create user validation failed", err, nil)
		return commons.ErrorResponse[models.UserResponse]("validation failed", err.Error()), err
	}

	login := strings.TrimSpace(req.Login)
	email := strings.TrimSpace(req.Email)

	hashed, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(req.Password)), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("user service create user hash password failed", err, nil)
		return commons.ErrorResponse[models.UserResponse]("failed to create user", "Unable to create user right now"), err
	}

	var created domain.User
	err = s.uow.Run(ctx, func(txCtx context.Context) error {
		_, err := s.userRepo.GetByLogin(txCtx, login)
		if err == nil {
			return domain.NewValidationError("user with login %q already exists", login)
		}
		if !errors.Is(err, domain.ErrRecordNotFound) {
			return err
		}

		created, err = s.userRepo.Create(txCtx, domain.User{
			ID:           uuid.NewString(),
			Login:        login,
			Email:        email,
			PasswordHash: string(hashed),
		})
		return err
	})
	if err != nil {
		logger.Error("user service create user failed", err, logger.Fields{
			"login": login,
		})
		if domain.IsValidationError(err) {
			return commons.ErrorResponse[models.UserResponse]("validation failed", err.Error()), err
		}
		return commons.ErrorResponse[models.UserResponse]("failed to create user", "Unable to create user right now"), err
	}

	response := mapUserToResponse(created)

	logger.Info("user service create user success", logger.Fields{
		"userId": response.ID,
		"login":  response.Login,
	})

	return commons.SuccessResponse("user created successfully", response), nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (commons.Response[models.UserResponse], error) {
	logger.Info("user service get user request", logger.Fields{
		"userId": id,
	})

	id = strings.TrimSpace(id)
	if id == "" {
		err := domain.NewValidationError("id is required")
		return commons.ErrorResponse[models.UserResponse]("validation failed", err.Error()), err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("user service get user failed", err, logger.Fields{
			"userId": id,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.UserResponse]("User not found"), err
		}
		return commons.ErrorResponse[models.UserResponse]("failed to get user", "Unable to fetch user right now"), err
	}

	return commons.SuccessResponse("user fetched successfully", mapUserToResponse(user)), nil
}

func (s *UserService) GetAllUsers(ctx context.Context) (commons.Response[[]models.UserResponse], error) {
	logger.Info("user service get all users request", nil)

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		logger.Error("user service get all users failed", err, nil)
		return commons.ErrorResponse[[]models.UserResponse]("failed to get users", "Unable to fetch users right now"), err
	}

	resp := make([]models.UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, mapUserToResponse(user))
	}

	logger.Info("user service get all users success", logger.Fields{
		"count": len(resp),
	})

	return commons.SuccessResponse("users fetched successfully", resp), nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (commons.Response[models.UserResponse], error) {
	logger.Info("user service update user request", logger.Fields{
		"userId":  id,
		"payload": logger.SanitizePayload(req),
	})

	id = strings.TrimSpace(id)
	if id == "" {
		err := domain.NewValidationError("id is required")
		return commons.ErrorResponse[models.UserResponse]("validation failed", err.Error()), err
	}
	if err := req.Validate(); err != nil {
		logger.Error("user service update user validation failed", err, nil)
		return commons.ErrorResponse[models.UserResponse]("validation failed", err.Error()), err
	}

	login := strings.TrimSpace(req.Login)
	email := strings.TrimSpace(req.Email)

	var updated domain.User
	err := s.uow.Run(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if user.Login != login {
			if _, err := s.userRepo.GetByLogin(txCtx, login); err == nil {
				return domain.NewValidationError("user with login %q already exists", login)
			} else if !errors.Is(err, domain.ErrRecordNotFound) {
				return err
			}
		}

		user.Login = login
		user.Email = email
		updated, err = s.userRepo.Update(txCtx, user)
		return err
	})
	if err != nil {
		logger.Error("user service update user failed", err, logger.Fields{
			"userId": id,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.UserResponse]("User not found"), err
		}
		if domain.IsValidationError(err) {
			return commons.ErrorResponse[models.UserResponse]("validation failed", err.Error()), err
		}
		return commons.ErrorResponse[models.UserResponse]("failed to update user", "Unable to update user right now"), err
	}

	logger.Info("user service update user success", logger.Fields{
		"userId": updated.ID,
	})

	return commons.SuccessResponse("user updated successfully", mapUserToResponse(updated)), nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) (commons.Response[struct{}], error) {
	logger.Info("user service delete user request", logger.Fields{
		"userId": id,
	})

	id = strings.TrimSpace(id)
	if id == "" {
		err := domain.NewValidationError("id is required")
		return commons.ErrorResponse[struct{}]("validation failed", err.Error()), err
	}

	err := s.uow.Run(ctx, func(txCtx context.Context) error {
		hasAccounts, err := s.accountRepo.HasAccountsForUser(txCtx, id)
		if err != nil {
			return err
		}
		if hasAccounts {
			return domain.NewValidationError("user with id %q still has accounts", id)
		}

		return s.userRepo.DeleteByID(txCtx, id)
	})
	if err != nil {
		logger.Error("user service delete user failed", err, logger.Fields{
			"userId": id,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[struct{}]("User not found"), err
		}
		if domain.IsValidationError(err) {
			return commons.ErrorResponse[struct{}]("validation failed", err.Error()), err
		}
		return commons.ErrorResponse[struct{}]("failed to delete user", "Unable to delete user right now"), err
	}

	logger.Info("user service delete user success", logger.Fields{
		"userId": id,
	})

	return commons.SuccessResponse("user deleted successfully", struct{}{}), nil
}

func mapUserToResponse(user domain.User) models.UserResponse {
	return models.UserResponse{
		ID:        user.ID,
		Login:     user.Login,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}
