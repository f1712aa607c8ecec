package domain

import "context"

// TransferRepository is the append-only transfer log. Records are never
// updated or deleted once written.
type TransferRepository interface {
	Create(ctx context.Context, transfer Transfer) (Transfer, error)
	ListByFromAccount(ctx context.Context, accountID string) ([]Transfer, error)
}
