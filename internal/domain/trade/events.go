package trade

import (
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeSalesOrder is the aggregate type of sales order events
const AggregateTypeSalesOrder = "SalesOrder"

// Event types
const (
	EventTypeSalesOrderSubmitted = "SalesOrderSubmitted"
	EventTypeSalesOrderCancelled = "SalesOrderCancelled"
	EventTypeSalesOrderSplit     = "SalesOrderSplit"
)

// SalesOrderSubmittedEvent is published after an order is submitted
type SalesOrderSubmittedEvent struct {
	shared.BaseDomainEvent
	Name        string          `json:"name"`
	Company     string          `json:"company"`
	Customer    string          `json:"customer"`
	SourceWebSO string          `json:"source_web_so,omitempty"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// NewSalesOrderSubmittedEvent creates a SalesOrderSubmittedEvent
func NewSalesOrderSubmittedEvent(o *SalesOrder) *SalesOrderSubmittedEvent {
	return &SalesOrderSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderSubmitted, AggregateTypeSalesOrder, o.ID),
		Name:            o.Name,
		Company:         o.Company,
		Customer:        o.Customer,
		SourceWebSO:     o.SourceWebSO,
		GrandTotal:      o.GrandTotal,
	}
}

// SalesOrderCancelledEvent is published after an order is cancelled
type SalesOrderCancelledEvent struct {
	shared.BaseDomainEvent
	Name    string `json:"name"`
	Company string `json:"company"`
}

// NewSalesOrderCancelledEvent creates a SalesOrderCancelledEvent
func NewSalesOrderCancelledEvent(o *SalesOrder) *SalesOrderCancelledEvent {
	return &SalesOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderCancelled, AggregateTypeSalesOrder, o.ID),
		Name:            o.Name,
		Company:         o.Company,
	}
}

// SalesOrderSplitEvent is published when a split created at least one child order
type SalesOrderSplitEvent struct {
	shared.BaseDomainEvent
	Parent   string   `json:"parent"`
	Children []string `json:"children"`
}

// NewSalesOrderSplitEvent creates a SalesOrderSplitEvent
func NewSalesOrderSplitEvent(parent *SalesOrder, children []string) *SalesOrderSplitEvent {
	return &SalesOrderSplitEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderSplit, AggregateTypeSalesOrder, parent.ID),
		Parent:          parent.Name,
		Children:        children,
	}
}
