package proforma

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/culinary/backend/internal/domain/partner"
	"github.com/culinary/backend/internal/domain/proforma"
	"github.com/culinary/backend/internal/domain/trade"
)

const (
	documentExt         = ".json"
	documentContentType = "application/json"
	// printDateLayout is dd.MM.yyyy
	printDateLayout = "02.01.2006"
	deliveryUnknown = "TBD"
)

// RenderInput is everything a proforma document shows
type RenderInput struct {
	Proforma *proforma.ProformaInvoice
	Customer *partner.Customer
	Company  *partner.Company
	Parent   *trade.SalesOrder
	Child    *trade.SalesOrder
	Today    time.Time
}

// Renderer turns a proforma into a stored document body
type Renderer interface {
	Render(ctx context.Context, in RenderInput) ([]byte, error)
	Extension() string
	ContentType() string
}

// JSONRenderer renders proformas as JSON snapshots
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type partySnapshot struct {
	Name            string `json:"name"`
	Abbr            string `json:"abbr,omitempty"`
	DefaultCurrency string `json:"default_currency,omitempty"`
}

type documentSnapshot struct {
	Proforma     ProformaResponse `json:"proforma"`
	Customer     partySnapshot    `json:"customer"`
	Company      partySnapshot    `json:"company"`
	ParentSO     string           `json:"parent_so"`
	ChildSO      string           `json:"child_so"`
	TodayStr     string           `json:"today_str"`
	DueDateStr   string           `json:"due_date_str"`
	DeliveryDate string           `json:"delivery_date_str"`
	Currency     string           `json:"currency"`
	GeneratedAt  time.Time        `json:"generated_at"`
}

// Render builds the snapshot. Customer and company fall back to the names on the proforma.
func (r *JSONRenderer) Render(_ context.Context, in RenderInput) ([]byte, error) {
	if in.Proforma == nil || in.Parent == nil {
		return nil, fmt.Errorf("render proforma: proforma and parent order are required")
	}
	doc := documentSnapshot{
		Proforma:     ToProformaResponse(in.Proforma),
		Customer:     partySnapshot{Name: in.Proforma.Customer},
		Company:      partySnapshot{Name: in.Proforma.SupplierCompany},
		ParentSO:     in.Parent.Name,
		ChildSO:      in.Proforma.ChildSalesOrder,
		TodayStr:     in.Today.Format(printDateLayout),
		DueDateStr:   in.Proforma.DueDate.Format(printDateLayout),
		DeliveryDate: deliveryUnknown,
		Currency:     in.Parent.Currency,
		GeneratedAt:  in.Today,
	}
	if in.Customer != nil {
		doc.Customer = partySnapshot{Name: in.Customer.Name, DefaultCurrency: in.Customer.DefaultCurrency}
	}
	if in.Company != nil {
		doc.Company = partySnapshot{Name: in.Company.Name, Abbr: in.Company.Abbr, DefaultCurrency: in.Company.DefaultCurrency}
	}
	if in.Child != nil {
		doc.ChildSO = in.Child.Name
	}
	if in.Parent.DeliveryDate != nil {
		doc.DeliveryDate = in.Parent.DeliveryDate.Format(printDateLayout)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Extension returns the file extension of rendered documents
func (r *JSONRenderer) Extension() string { return documentExt }

// ContentType returns the MIME type of rendered documents
func (r *JSONRenderer) ContentType() string { return documentContentType }

var _ Renderer = (*JSONRenderer)(nil)
