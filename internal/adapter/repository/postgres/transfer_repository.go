package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/minibank-io/minibank/internal/domain"
)

// Verify that TransferRepository implements the domain.TransferRepository interface
var _ domain.TransferRepository = (*TransferRepository)(nil)

type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

const transferColumns = `id, amount, currency, from_account_id, to_account_id, created_at`

func (r *TransferRepository) Create(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	const query = `
INSERT INTO transfers (id, amount, currency, from_account_id, to_account_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + transferColumns

	var created domain.Transfer
	if err := scanTransfer(conn(ctx, r.db).QueryRowContext(
		ctx,
		query,
		transfer.ID,
		transfer.Amount,
		transfer.Currency.String(),
		transfer.FromAccountID,
		transfer.ToAccountID,
		transfer.CreatedAt,
	), &created); err != nil {
		if isUniqueViolation(err) {
			return domain.Transfer{}, fmt.Errorf("transfer id collision: %w", err)
		}
		return domain.Transfer{}, fmt.Errorf("create transfer: %w", err)
	}

	return created, nil
}

func (r *TransferRepository) ListByFromAccount(ctx context.Context, accountID string) ([]domain.Transfer, error) {
	const query = `
SELECT ` + transferColumns + `
FROM transfers
WHERE from_account_id = $1
ORDER BY created_at DESC`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list transfers by from account: %w", err)
	}
	defer rows.Close()

	var transfers []domain.Transfer
	for rows.Next() {
		var transfer domain.Transfer
		if err := scanTransfer(rows, &transfer); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		transfers = append(transfers, transfer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transfers by from account: %w", err)
	}

	return transfers, nil
}

func scanTransfer(row rowScanner, transfer *domain.Transfer) error {
	var (
		amount   string
		currency string
	)

	if err := row.Scan(
		&transfer.ID,
		&amount,
		&currency,
		&transfer.FromAccountID,
		&transfer.ToAccountID,
		&transfer.CreatedAt,
	); err != nil {
		return err
	}

	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("parse amount %q: %w", amount, err)
	}
	transfer.Amount = parsedAmount

	parsedCurrency, err := domain.ParseCurrency(currency)
	if err != nil {
		return fmt.Errorf("parse currency %q: %w", currency, err)
	}
	transfer.Currency = parsedCurrency

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
