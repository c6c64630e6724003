package trade

import (
	"strings"
	"time"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocStatus is the lifecycle state of a sales order
type DocStatus int

const (
	DocStatusDraft     DocStatus = 0
	DocStatusSubmitted DocStatus = 1
	DocStatusCancelled DocStatus = 2
)

// String returns the display name of the status
func (s DocStatus) String() string {
	switch s {
	case DocStatusSubmitted:
		return "Submitted"
	case DocStatusCancelled:
		return "Cancelled"
	default:
		return "Draft"
	}
}

// NamePrefix is the naming-series prefix of orders entered directly
const NamePrefix = "SO"

// SalesOrderItem is one order line
type SalesOrderItem struct {
	ID            uuid.UUID
	Idx           int
	ItemCode      string
	ItemName      string
	Description   string
	Qty           decimal.Decimal
	Rate          decimal.Decimal
	PriceListRate decimal.Decimal
	Amount        decimal.Decimal
	// Supplier is the agreement supplier that priced the line
	Supplier string
	// RateLocked marks a rate taken from an agreement; clients must not edit it
	RateLocked bool
}

// SalesOrder is a customer order placed with one company. Orders placed with the
// split company are fanned out into child orders that point back through SourceWebSO.
type SalesOrder struct {
	shared.BaseAggregateRoot
	Name            string
	Company         string
	Customer        string
	TransactionDate time.Time
	DeliveryDate    *time.Time
	Currency        string
	ShippingAddress string
	CustomerAddress string
	DocStatus       DocStatus
	SourceWebSO     string
	Items           []SalesOrderItem
	GrandTotal      decimal.Decimal
}

// NewSalesOrder creates a draft order
func NewSalesOrder(name, company, customer string, transactionDate time.Time) (*SalesOrder, error) {
	if strings.TrimSpace(company) == "" {
		return nil, shared.NewDomainError(ErrCodeCompanyRequired, "Company is mandatory")
	}
	if strings.TrimSpace(customer) == "" {
		return nil, shared.NewDomainError(ErrCodeCustomerRequired, "Customer is mandatory")
	}
	if transactionDate.IsZero() {
		return nil, shared.NewDomainError(ErrCodeDateRequired, "Transaction date is mandatory")
	}
	return &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Company:           strings.TrimSpace(company),
		Customer:          strings.TrimSpace(customer),
		TransactionDate:   shared.DateOf(transactionDate),
		DocStatus:         DocStatusDraft,
		GrandTotal:        decimal.Zero,
	}, nil
}

// SetDeliveryDate sets the expected delivery day
func (o *SalesOrder) SetDeliveryDate(d *time.Time) error {
	if d == nil {
		o.DeliveryDate = nil
		return nil
	}
	day := shared.DateOf(*d)
	if day.Before(o.TransactionDate) {
		return shared.NewDomainError(ErrCodeInvalidDeliveryDate, "Delivery date cannot be before the transaction date")
	}
	o.DeliveryDate = &day
	return nil
}

// SetAddresses sets the shipping and billing address names
func (o *SalesOrder) SetAddresses(shipping, customer string) {
	o.ShippingAddress = strings.TrimSpace(shipping)
	o.CustomerAddress = strings.TrimSpace(customer)
}

// AddItem appends a line and recomputes totals
func (o *SalesOrder) AddItem(item SalesOrderItem) error {
	if o.DocStatus != DocStatusDraft {
		return shared.NewDomainError(ErrCodeNotDraft, "Only draft orders can be edited")
	}
	item.ItemCode = strings.TrimSpace(item.ItemCode)
	if item.ItemCode == "" {
		return shared.NewDomainError(ErrCodeItemRequired, "Item code is mandatory")
	}
	if !item.Qty.IsPositive() {
		return shared.NewDomainError(ErrCodeInvalidQty, "Quantity must be positive")
	}
	if item.Rate.IsNegative() {
		return shared.NewDomainError(ErrCodeInvalidRate, "Rate cannot be negative")
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.Idx = len(o.Items) + 1
	item.Amount = item.Qty.Mul(item.Rate)
	o.Items = append(o.Items, item)
	o.CalculateTotals()
	return nil
}

// ReplaceItems swaps every line of a draft order
func (o *SalesOrder) ReplaceItems(items []SalesOrderItem) error {
	if o.DocStatus != DocStatusDraft {
		return shared.NewDomainError(ErrCodeNotDraft, "Only draft orders can be edited")
	}
	previous := o.Items
	o.Items = nil
	for _, it := range items {
		if err := o.AddItem(it); err != nil {
			o.Items = previous
			o.CalculateTotals()
			return err
		}
	}
	o.Touch()
	return nil
}

// PostingDate is the day used to pick agreement prices
func (o *SalesOrder) PostingDate(today time.Time) time.Time {
	switch {
	case !o.TransactionDate.IsZero():
		return o.TransactionDate
	case o.DeliveryDate != nil:
		return *o.DeliveryDate
	default:
		return shared.DateOf(today)
	}
}

// ApplyAgreementPrice sets the line rate from an agreement and locks it
func (o *SalesOrder) ApplyAgreementPrice(idx int, rate decimal.Decimal, supplier string) {
	line := &o.Items[idx]
	line.Rate = rate
	line.PriceListRate = rate
	line.Supplier = supplier
	line.RateLocked = true
	line.Amount = line.Qty.Mul(rate)
}

// CalculateTotals recomputes line amounts and the grand total
func (o *SalesOrder) CalculateTotals() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		o.Items[i].Amount = o.Items[i].Qty.Mul(o.Items[i].Rate)
		total = total.Add(o.Items[i].Amount)
	}
	o.GrandTotal = total
	return total
}

// Submit submits a draft order with at least one line
func (o *SalesOrder) Submit() error {
	if o.DocStatus != DocStatusDraft {
		return shared.NewDomainError(ErrCodeNotDraft, "Only draft orders can be submitted")
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError(ErrCodeNoItems, "Sales order must have at least one item")
	}
	o.CalculateTotals()
	o.DocStatus = DocStatusSubmitted
	o.Touch()
	o.AddDomainEvent(NewSalesOrderSubmittedEvent(o))
	return nil
}

// Cancel cancels a draft or submitted order
func (o *SalesOrder) Cancel() error {
	if o.DocStatus == DocStatusCancelled {
		return shared.NewDomainError(ErrCodeAlreadyCancelled, "Sales order is already cancelled")
	}
	o.DocStatus = DocStatusCancelled
	o.Touch()
	o.AddDomainEvent(NewSalesOrderCancelledEvent(o))
	return nil
}

// IsChild reports whether the order was produced by splitting another order
func (o *SalesOrder) IsChild() bool {
	return o.SourceWebSO != ""
}

// NewChildOrder clones the header of parent into a draft order for company.
// Delivery falls back to the transaction date.
func NewChildOrder(parent *SalesOrder, name, company string) (*SalesOrder, error) {
	child, err := NewSalesOrder(name, company, parent.Customer, parent.TransactionDate)
	if err != nil {
		return nil, err
	}
	delivery := parent.TransactionDate
	if parent.DeliveryDate != nil {
		delivery = *parent.DeliveryDate
	}
	child.DeliveryDate = &delivery
	child.Currency = parent.Currency
	child.ShippingAddress = parent.ShippingAddress
	child.CustomerAddress = parent.CustomerAddress
	child.SourceWebSO = parent.Name
	return child, nil
}

// CopyLine appends a copy of a parent line to a child order, keeping its rate and supplier
func (o *SalesOrder) CopyLine(line SalesOrderItem) error {
	line.ID = uuid.Nil
	return o.AddItem(line)
}
