package trade

import (
	"context"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ListFilter narrows sales order listings
type ListFilter struct {
	shared.Filter
	Company     string
	Customer    string
	SourceWebSO string
	DocStatus   *DocStatus
}

// SalesOrderRepository defines persistence for sales orders
type SalesOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)
	FindByName(ctx context.Context, name string) (*SalesOrder, error)
	FindAll(ctx context.Context, filter ListFilter) ([]SalesOrder, int64, error)
	// FindChildren returns orders split from parent, ordered by name
	FindChildren(ctx context.Context, parent string) ([]SalesOrder, error)
	// ChildExists reports whether parent already has a child order for company
	ChildExists(ctx context.Context, parent, company string) (bool, error)
	Save(ctx context.Context, order *SalesOrder) error
	SaveWithLock(ctx context.Context, order *SalesOrder) error
}
