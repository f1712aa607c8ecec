package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/minibank-io/minibank/internal/domain"
)

// Verify that UserRepository implements the domain.UserRepository interface
var _ domain.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, login, email, password_hash, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const query = `
INSERT INTO users (id, login, email, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING ` + userColumns

	var created domain.User
	if err := scanUser(conn(ctx, r.db).QueryRowContext(
		ctx,
		query,
		user.ID,
		user.Login,
		user.Email,
		user.PasswordHash,
	), &created); err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

	return r.getOne(ctx, query, id)
}

func (r *UserRepository) GetByLogin(ctx context.Context, login string) (domain.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE login = $1`

	return r.getOne(ctx, query, login)
}

func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
ORDER BY created_at`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	const query = `
UPDATE users
SET login = $2, email = $3, updated_at = NOW()
WHERE id = $1
RETURNING ` + userColumns

	var updated domain.User
	if err := scanUser(conn(ctx, r.db).QueryRowContext(
		ctx,
		query,
		user.ID,
		user.Login,
		user.Email,
	), &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrRecordNotFound
		}
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}

	return updated, nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id string) error {
	const query = `
DELETE FROM users
WHERE id = $1`

	result, err := conn(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query, arg string) (domain.User, error) {
	var user domain.User
	if err := scanUser(conn(ctx, r.db).QueryRowContext(ctx, query, arg), &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrRecordNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

func scanUser(row rowScanner, user *domain.User) error {
	return row.Scan(
		&user.ID,
		&user.Login,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}
