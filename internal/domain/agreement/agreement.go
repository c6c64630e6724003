package agreement

import (
	"fmt"
	"strings"
	"time"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocStatus is the lifecycle state of the document
type DocStatus int

const (
	DocStatusDraft     DocStatus = 0
	DocStatusSubmitted DocStatus = 1
	DocStatusCancelled DocStatus = 2
)

// Status is the business status shown to users, derived from DocStatus and the validity dates
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusActive     Status = "Active"
	StatusExpired    Status = "Expired"
	StatusCancelled  Status = "Cancelled"
)

// NamePrefix is the naming-series prefix of agreements
const NamePrefix = "AGR"

// Item is one row of the agreement: an item and the rate agreed for it
type Item struct {
	ID                  uuid.UUID
	Idx                 int
	ItemCode            string
	ItemName            string
	Currency            string
	StandardSellingRate decimal.Decimal
	PriceListRate       decimal.Decimal
}

// Agreement fixes the prices a customer pays for a supplier's items over a validity window
type Agreement struct {
	shared.BaseAggregateRoot
	Name         string
	Customer     string
	Supplier     string
	ValidFrom    *time.Time
	ValidTo      *time.Time
	DiscountRate decimal.Decimal
	PriceList    string
	DocStatus    DocStatus
	Status       Status
	Items        []Item
}

// NewAgreement creates a draft agreement
func NewAgreement(name, customer, supplier string, validFrom, validTo *time.Time) (*Agreement, error) {
	customer = strings.TrimSpace(customer)
	supplier = strings.TrimSpace(supplier)
	if customer == "" {
		return nil, shared.NewDomainError(ErrCodeCustomerRequired, "Customer is mandatory")
	}
	if supplier == "" {
		return nil, shared.NewDomainError(ErrCodeSupplierRequired, "Supplier is mandatory")
	}
	a := &Agreement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Customer:          customer,
		Supplier:          supplier,
		ValidFrom:         dayPtr(validFrom),
		ValidTo:           dayPtr(validTo),
		DiscountRate:      decimal.Zero,
		DocStatus:         DocStatusDraft,
		Status:            StatusNotStarted,
	}
	return a, nil
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := shared.DateOf(*t)
	return &d
}

// SetItems replaces the item rows, numbering them from 1
func (a *Agreement) SetItems(items []Item) {
	out := make([]Item, len(items))
	for i, it := range items {
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		it.Idx = i + 1
		it.ItemCode = strings.TrimSpace(it.ItemCode)
		it.Currency = strings.ToUpper(strings.TrimSpace(it.Currency))
		out[i] = it
	}
	a.Items = out
}

// UpdateDraft changes header fields of a draft agreement
func (a *Agreement) UpdateDraft(customer, supplier string, validFrom, validTo *time.Time, discount decimal.Decimal) error {
	if a.DocStatus != DocStatusDraft {
		return shared.NewDomainError(ErrCodeNotDraft, "Only draft agreements can be edited")
	}
	if strings.TrimSpace(customer) != "" {
		a.Customer = strings.TrimSpace(customer)
	}
	if strings.TrimSpace(supplier) != "" {
		a.Supplier = strings.TrimSpace(supplier)
	}
	a.ValidFrom = dayPtr(validFrom)
	a.ValidTo = dayPtr(validTo)
	if err := a.SetDiscountRate(discount); err != nil {
		return err
	}
	a.Touch()
	return nil
}

// SetDiscountRate sets the percentage taken off standard rates for rows without their own rate
func (a *Agreement) SetDiscountRate(discount decimal.Decimal) error {
	if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError(ErrCodeInvalidDiscount, "Discount rate must be between 0 and 100")
	}
	a.DiscountRate = discount
	return nil
}

// Validate checks dates and item rows
func (a *Agreement) Validate() error {
	if err := a.validateDates(); err != nil {
		return err
	}
	return a.validateItems()
}

func (a *Agreement) validateDates() error {
	if a.ValidFrom == nil {
		return shared.NewDomainError(ErrCodeDatesRequired, "Valid From date is mandatory")
	}
	if a.ValidTo == nil {
		return shared.NewDomainError(ErrCodeDatesRequired, "Valid To date is mandatory")
	}
	if a.ValidFrom.After(*a.ValidTo) {
		return shared.NewDomainError(ErrCodeInvalidDates, "Valid To date cannot be before Valid From date")
	}
	return nil
}

func (a *Agreement) validateItems() error {
	if len(a.Items) == 0 {
		return shared.NewDomainError(ErrCodeNoItems, "Please add at least one item")
	}
	seen := make(map[string]bool, len(a.Items))
	for _, it := range a.Items {
		if it.ItemCode == "" {
			continue
		}
		if seen[it.ItemCode] {
			return shared.NewDomainError(ErrCodeDuplicateItem, "Duplicate items are not allowed")
		}
		seen[it.ItemCode] = true
	}
	for _, it := range a.Items {
		if it.ItemCode == "" {
			return shared.NewDomainError(ErrCodeItemCodeRequired, fmt.Sprintf("Row %d: Item Code is mandatory", it.Idx))
		}
		if !it.PriceListRate.IsPositive() {
			return shared.NewDomainError(ErrCodeInvalidRate, fmt.Sprintf("Row %d: Please enter a valid price", it.Idx))
		}
	}
	return nil
}

// ComputeStatus derives the status for the given day without changing the agreement
func (a *Agreement) ComputeStatus(today time.Time) Status {
	switch a.DocStatus {
	case DocStatusCancelled:
		return StatusCancelled
	case DocStatusDraft:
		return StatusNotStarted
	}
	if a.ValidFrom == nil || a.ValidTo == nil {
		return a.Status
	}
	today = shared.DateOf(today)
	switch {
	case today.Before(*a.ValidFrom):
		return StatusNotStarted
	case today.After(*a.ValidTo):
		return StatusExpired
	default:
		return StatusActive
	}
}

// RefreshStatus recomputes the status and returns the previous one
func (a *Agreement) RefreshStatus(today time.Time) (previous Status, changed bool) {
	previous = a.Status
	a.Status = a.ComputeStatus(today)
	return previous, previous != a.Status
}

// Validity returns the validity window
func (a *Agreement) Validity() (from, to *time.Time) {
	return a.ValidFrom, a.ValidTo
}

// Submit validates and submits the agreement, then derives its status for today
func (a *Agreement) Submit(today time.Time) error {
	if a.DocStatus != DocStatusDraft {
		return shared.NewDomainError(ErrCodeNotDraft, "Only draft agreements can be submitted")
	}
	if err := a.Validate(); err != nil {
		return err
	}
	a.DocStatus = DocStatusSubmitted
	a.RefreshStatus(today)
	a.Touch()
	a.AddDomainEvent(NewAgreementSubmittedEvent(a))
	return nil
}

// Cancel cancels a submitted agreement
func (a *Agreement) Cancel() error {
	if a.DocStatus != DocStatusSubmitted {
		return shared.NewDomainError(ErrCodeNotSubmitted, "Only submitted agreements can be cancelled")
	}
	a.DocStatus = DocStatusCancelled
	a.Status = StatusCancelled
	a.Touch()
	a.AddDomainEvent(NewAgreementCancelledEvent(a))
	return nil
}

// Expire cancels a submitted agreement whose validity has passed, keeping the Expired status
func (a *Agreement) Expire() error {
	if err := a.Cancel(); err != nil {
		return err
	}
	a.Status = StatusExpired
	return nil
}

// AmendAfterSubmit applies the changes allowed on a submitted agreement.
// Dates, customer and supplier are frozen once submitted.
func (a *Agreement) AmendAfterSubmit(change Amendment) error {
	if a.DocStatus != DocStatusSubmitted {
		return shared.NewDomainError(ErrCodeNotSubmitted, "Agreement is not submitted")
	}
	if change.ValidFrom != nil && !sameDay(change.ValidFrom, a.ValidFrom) ||
		change.ValidTo != nil && !sameDay(change.ValidTo, a.ValidTo) {
		return shared.NewDomainError(ErrCodeFrozenDates,
			"Validity dates cannot be changed after submission. Please cancel and create a new agreement.")
	}
	if change.Customer != nil && *change.Customer != a.Customer ||
		change.Supplier != nil && *change.Supplier != a.Supplier {
		return shared.NewDomainError(ErrCodeFrozenParties, "Customer and Supplier cannot be changed after submission.")
	}
	if change.DiscountRate != nil {
		if err := a.SetDiscountRate(*change.DiscountRate); err != nil {
			return err
		}
	}
	for code, rate := range change.Rates {
		found := false
		for i := range a.Items {
			if a.Items[i].ItemCode == code {
				a.Items[i].PriceListRate = rate
				found = true
			}
		}
		if !found {
			return shared.NewDomainError(ErrCodeUnknownItem, "Item "+code+" is not part of this agreement")
		}
	}
	if err := a.validateItems(); err != nil {
		return err
	}
	a.Touch()
	return nil
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return shared.DateOf(*a).Equal(shared.DateOf(*b))
}

// Amendment lists the fields a caller wants to change on a submitted agreement
type Amendment struct {
	Customer     *string
	Supplier     *string
	ValidFrom    *time.Time
	ValidTo      *time.Time
	DiscountRate *decimal.Decimal
	Rates        map[string]decimal.Decimal
}

// FindItem returns the row for itemCode
func (a *Agreement) FindItem(itemCode string) (*Item, bool) {
	for i := range a.Items {
		if a.Items[i].ItemCode == itemCode {
			return &a.Items[i], true
		}
	}
	return nil, false
}

// IsSubmitted reports whether the agreement is submitted and not cancelled
func (a *Agreement) IsSubmitted() bool {
	return a.DocStatus == DocStatusSubmitted
}
