package agreement

import (
	"context"
	"time"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListFilter narrows agreement listings
type ListFilter struct {
	shared.Filter
	Customer string
	Supplier string
	Status   Status
}

// Summary is the short form returned by the active-agreement check
type Summary struct {
	Name      string     `json:"name"`
	ValidFrom *time.Time `json:"valid_from"`
	ValidTo   *time.Time `json:"valid_to"`
	Status    Status     `json:"status"`
}

// ItemMatch is an agreement row matched for a customer and item
type ItemMatch struct {
	Agreement     string
	Supplier      string
	ItemCode      string
	PriceListRate decimal.Decimal
	Currency      string
	ValidFrom     *time.Time
	ValidTo       *time.Time
}

// Repository defines persistence for agreements
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Agreement, error)
	FindByName(ctx context.Context, name string) (*Agreement, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Agreement, int64, error)
	// FindNotCancelled returns every draft or submitted agreement
	FindNotCancelled(ctx context.Context) ([]Agreement, error)
	// FindSubmittedFor returns submitted agreements of the pair, excluding the named one
	FindSubmittedFor(ctx context.Context, customer, supplier, exclude string) ([]Summary, error)
	// CountActiveForCustomer counts submitted Active agreements of the customer, excluding the named one
	CountActiveForCustomer(ctx context.Context, customer, exclude string) (int64, error)
	// FindItemMatches returns submitted agreement rows of customer for item, latest valid_from first
	FindItemMatches(ctx context.Context, customer, itemCode string) ([]ItemMatch, error)
	Save(ctx context.Context, a *Agreement) error
	// SaveWithLock saves with an optimistic version check
	SaveWithLock(ctx context.Context, a *Agreement) error
}
