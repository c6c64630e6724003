package proforma

import (
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeProforma is the aggregate type of proforma events
const AggregateTypeProforma = "ProformaInvoice"

// EventTypeProformaCreated is published when a proforma is submitted
const EventTypeProformaCreated = "ProformaCreated"

// ProformaCreatedEvent is published when a proforma is submitted
type ProformaCreatedEvent struct {
	shared.BaseDomainEvent
	Name             string          `json:"name"`
	SourceSalesOrder string          `json:"source_sales_order"`
	SupplierCompany  string          `json:"supplier_company"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
}

// NewProformaCreatedEvent creates a ProformaCreatedEvent
func NewProformaCreatedEvent(p *ProformaInvoice) *ProformaCreatedEvent {
	return &ProformaCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeProformaCreated, AggregateTypeProforma, p.ID),
		Name:             p.Name,
		SourceSalesOrder: p.SourceSalesOrder,
		SupplierCompany:  p.SupplierCompany,
		GrandTotal:       p.GrandTotal,
	}
}
