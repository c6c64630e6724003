package proforma

import (
	"io"
	"time"

	"github.com/culinary/backend/internal/domain/proforma"
	"github.com/shopspring/decimal"
)

// Result statuses returned by the proforma endpoints
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ==================== Result DTOs ====================

// CreateResult is the outcome of generating proformas for an order
type CreateResult struct {
	Status       string   `json:"status"`
	ProformaName []string `json:"proforma_name,omitempty"`
	Message      string   `json:"message,omitempty"`
}

// FixTotalsResult is the outcome of recomputing proforma grand totals
type FixTotalsResult struct {
	Status     string `json:"status"`
	FixedCount int    `json:"fixed_count"`
	Message    string `json:"message,omitempty"`
}

// ==================== Response DTOs ====================

// ItemResponse represents a proforma line in API responses
type ItemResponse struct {
	Idx             int             `json:"idx"`
	ItemCode        string          `json:"item_code"`
	ItemName        string          `json:"item_name"`
	Qty             decimal.Decimal `json:"qty"`
	Rate            decimal.Decimal `json:"rate"`
	Amount          decimal.Decimal `json:"amount"`
	SupplierCompany string          `json:"supplier_company"`
}

// ProformaResponse represents a proforma invoice in API responses
type ProformaResponse struct {
	Name             string          `json:"name"`
	Customer         string          `json:"customer"`
	SourceSalesOrder string          `json:"source_sales_order"`
	ChildSalesOrder  string          `json:"child_sales_order"`
	SupplierCompany  string          `json:"supplier_company"`
	InvoiceDate      string          `json:"invoice_date"`
	DueDate          string          `json:"due_date"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
	DocStatus        int             `json:"docstatus"`
	AttachmentName   string          `json:"attachment_name"`
	Items            []ItemResponse  `json:"items"`
}

// ToProformaResponse converts a proforma to its response DTO
func ToProformaResponse(p *proforma.ProformaInvoice) ProformaResponse {
	items := make([]ItemResponse, len(p.Items))
	for i, it := range p.Items {
		items[i] = ItemResponse{
			Idx:             it.Idx,
			ItemCode:        it.ItemCode,
			ItemName:        it.ItemName,
			Qty:             it.Qty,
			Rate:            it.Rate,
			Amount:          it.Amount,
			SupplierCompany: it.SupplierCompany,
		}
	}
	return ProformaResponse{
		Name:             p.Name,
		Customer:         p.Customer,
		SourceSalesOrder: p.SourceSalesOrder,
		ChildSalesOrder:  p.ChildSalesOrder,
		SupplierCompany:  p.SupplierCompany,
		InvoiceDate:      p.InvoiceDate.Format(time.DateOnly),
		DueDate:          p.DueDate.Format(time.DateOnly),
		GrandTotal:       p.GrandTotal,
		DocStatus:        int(p.DocStatus),
		AttachmentName:   proforma.AttachmentName(p.ChildSalesOrder, documentExt),
		Items:            items,
	}
}

// Document is a stored proforma document opened for reading. Callers close Body.
type Document struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}
