package service_interfaces

import (
	"context"

	"github.com/minibank-io/minibank/internal/adapter/http/models"
	"github.com/minibank-io/minibank/internal/commons"
)

type UserService interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (commons.Response[models.UserResponse], error)
	GetUser(ctx context.Context, id string) (commons.Response[models.UserResponse], error)
	GetAllUsers(ctx context.Context) (commons.Response[[]models.UserResponse], error)
	UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (commons.Response[models.UserResponse], error)
	DeleteUser(ctx context.Context, id string) (commons.Response[struct{}], error)
}
