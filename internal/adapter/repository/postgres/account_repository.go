package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minibank-io/minibank/internal/domain"
)

// Verify that AccountRepository implements the domain.AccountRepository interface
var _ domain.AccountRepository = (*AccountRepository)(nil)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, user_id, balance, currency, is_open, opened_at, closed_at`

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (id, user_id, balance, currency, is_open, opened_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + accountColumns

	var created domain.Account
	if err := scanAccount(conn(ctx, r.db).QueryRowContext(
		ctx,
		query,
		account.ID,
		account.UserID,
		account.Balance,
		account.Currency.String(),
		account.IsOpen,
		account.OpenedAt,
	), &created); err != nil {
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	return created, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	const query = `
SELECT ` + accountColumns + `
FROM accounts
WHERE id = $1`

	return r.getOne(ctx, query, id)
}

func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, id string) (domain.Account, error) {
	const query = `
SELECT ` + accountColumns + `
FROM accounts
WHERE id = $1
FOR UPDATE`

	return r.getOne(ctx, query, id)
}

func (r *AccountRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	const query = `
SELECT ` + accountColumns + `
FROM accounts
WHERE user_id = $1
ORDER BY opened_at`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts by user: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := scanAccount(rows, &account); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts by user: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	const query = `
UPDATE accounts
SET balance = $2
WHERE id = $1`

	result, err := conn(ctx, r.db).ExecContext(ctx, query, id, balance)
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (r *AccountRepository) Close(ctx context.Context, id string, closedAt time.Time) error {
	const query = `
UPDATE accounts
SET is_open = FALSE, closed_at = $2
WHERE id = $1 AND is_open`

	result, err := conn(ctx, r.db).ExecContext(ctx, query, id, closedAt)
	if err != nil {
		return fmt.Errorf("close account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("close account: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (r *AccountRepository) HasAccountsForUser(ctx context.Context, userID string) (bool, error) {
	const query = `
SELECT EXISTS (SELECT 1 FROM accounts WHERE user_id = $1)`

	var exists bool
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check accounts for user: %w", err)
	}

	return exists, nil
}

func (r *AccountRepository) getOne(ctx context.Context, query, id string) (domain.Account, error) {
	var account domain.Account
	if err := scanAccount(conn(ctx, r.db).QueryRowContext(ctx, query, id), &account); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}

	return account, nil
}

func scanAccount(row rowScanner, account *domain.Account) error {
	var (
		balance  string
		currency string
		closedAt sql.NullTime
	)

	if err := row.Scan(
		&account.ID,
		&account.UserID,
		&balance,
		&currency,
		&account.IsOpen,
		&account.OpenedAt,
		&closedAt,
	); err != nil {
		return err
	}

	parsedBalance, err := decimal.NewFromString(balance)
	if err != nil {
		return fmt.Errorf("parse balance %q: %w", balance, err)
	}
	account.Balance = parsedBalance

	parsedCurrency, err := domain.ParseCurrency(currency)
	if err != nil {
		return fmt.Errorf("parse currency %q: %w", currency, err)
	}
	account.Currency = parsedCurrency

	account.ClosedAt = nil
	if closedAt.Valid {
		value := closedAt.Time
		account.ClosedAt = &value
	}

	return nil
}
