package shared

import "context"

// NameGenerator hands out document names of the form <prefix>-##### from a per-prefix counter
type NameGenerator interface {
	Next(ctx context.Context, prefix string) (string, error)
}

// TransactionManager runs fn inside a single database transaction carried by ctx
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
