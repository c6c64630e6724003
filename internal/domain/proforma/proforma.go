package proforma

import (
	"time"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NamePrefix is the naming-series prefix of proforma invoices
const NamePrefix = "PRO"

// DefaultDueDays is the payment term applied when none is configured
const DefaultDueDays = 30

// DocStatus is the lifecycle state of a proforma
type DocStatus int

const (
	DocStatusDraft     DocStatus = 0
	DocStatusSubmitted DocStatus = 1
)

// Item is one proforma line, tagged with the company that supplies it
type Item struct {
	ID              uuid.UUID
	Idx             int
	ItemCode        string
	ItemName        string
	Qty             decimal.Decimal
	Rate            decimal.Decimal
	Amount          decimal.Decimal
	SupplierCompany string
}

// ProformaInvoice is the pre-invoice one supplying company sends for its share of a split order
type ProformaInvoice struct {
	shared.BaseAggregateRoot
	Name             string
	Customer         string
	SourceSalesOrder string
	ChildSalesOrder  string
	SupplierCompany  string
	InvoiceDate      time.Time
	DueDate          time.Time
	Items            []Item
	GrandTotal       decimal.Decimal
	DocStatus        DocStatus
}

// NewProformaInvoice creates a draft proforma dated today and due dueDays later
func NewProformaInvoice(name, customer, parent, child, company string, today time.Time, dueDays int) (*ProformaInvoice, error) {
	if parent == "" || company == "" {
		return nil, shared.NewDomainError(ErrCodeInvalidSource, "Proforma needs a source order and a supplier company")
	}
	if dueDays <= 0 {
		dueDays = DefaultDueDays
	}
	invoiceDate := shared.DateOf(today)
	return &ProformaInvoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Customer:          customer,
		SourceSalesOrder:  parent,
		ChildSalesOrder:   child,
		SupplierCompany:   company,
		InvoiceDate:       invoiceDate,
		DueDate:           invoiceDate.AddDate(0, 0, dueDays),
		GrandTotal:        decimal.Zero,
	}, nil
}

// AddItem appends a line for the proforma's supplier company
func (p *ProformaInvoice) AddItem(code, name string, qty, rate, amount decimal.Decimal) {
	p.Items = append(p.Items, Item{
		ID:              uuid.New(),
		Idx:             len(p.Items) + 1,
		ItemCode:        code,
		ItemName:        name,
		Qty:             qty,
		Rate:            rate,
		Amount:          amount,
		SupplierCompany: p.SupplierCompany,
	})
}

// CalculateTotals sets the grand total to the sum of line amounts and returns it
func (p *ProformaInvoice) CalculateTotals() decimal.Decimal {
	total := decimal.Zero
	for _, it := range p.Items {
		total = total.Add(it.Amount)
	}
	p.GrandTotal = total
	return total
}

// Submit finalises the proforma
func (p *ProformaInvoice) Submit() error {
	if p.DocStatus != DocStatusDraft {
		return shared.NewDomainError(ErrCodeNotDraft, "Proforma is already submitted")
	}
	p.CalculateTotals()
	p.DocStatus = DocStatusSubmitted
	p.Touch()
	p.AddDomainEvent(NewProformaCreatedEvent(p))
	return nil
}

// AttachmentName is the file name of the rendered proforma stored on the parent order
func AttachmentName(childOrder, ext string) string {
	return "Proforma_" + childOrder + ext
}
