package domain

import "context"

type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByLogin(ctx context.Context, login string) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user User) (User, error)
	DeleteByID(ctx context.Context, id string) error
}
