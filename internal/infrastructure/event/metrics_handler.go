package event

import (
	"context"

	"github.com/culinary/backend/internal/domain/agreement"
	"github.com/culinary/backend/internal/domain/proforma"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/domain/trade"
	"github.com/culinary/backend/internal/infrastructure/telemetry"
)

// MetricsHandler turns published domain events into business metrics
type MetricsHandler struct {
	metrics *telemetry.BusinessMetrics
}

// NewMetricsHandler creates a MetricsHandler
func NewMetricsHandler(metrics *telemetry.BusinessMetrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// EventTypes returns the event types that feed a metric
func (h *MetricsHandler) EventTypes() []string {
	return []string{
		trade.EventTypeSalesOrderSubmitted,
		trade.EventTypeSalesOrderSplit,
		proforma.EventTypeProformaCreated,
		agreement.EventTypeAgreementSubmitted,
		agreement.EventTypeAgreementCancelled,
		agreement.EventTypeAgreementStatusChanged,
	}
}

// Handle records the event. Unknown events are ignored.
func (h *MetricsHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	switch e := evt.(type) {
	case *trade.SalesOrderSubmittedEvent:
		h.metrics.RecordOrderSubmitted(ctx, e.Company, e.SourceWebSO, e.GrandTotal)
	case *trade.SalesOrderSplitEvent:
		h.metrics.RecordSplit(ctx, len(e.Children))
	case *proforma.ProformaCreatedEvent:
		h.metrics.RecordProformaCreated(ctx, e.SupplierCompany)
	case *agreement.AgreementSubmittedEvent:
		h.metrics.RecordAgreementTransition(ctx, string(e.Status))
	case *agreement.AgreementCancelledEvent:
		h.metrics.RecordAgreementTransition(ctx, string(agreement.StatusCancelled))
	case *agreement.AgreementStatusChangedEvent:
		h.metrics.RecordAgreementTransition(ctx, string(e.NewStatus))
	}
	return nil
}
