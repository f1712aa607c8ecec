package domain

import "context"

// UnitOfWork groups all mutations of one operation into a single atomic
// commit. Run begins a transaction, calls fn with a context carrying it,
// rolls back if fn returns an error and commits otherwise. Either every
// staged mutation becomes durably visible or none does.
type UnitOfWork interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}
