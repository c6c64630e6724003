package trade

import (
	"context"
	"fmt"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// OrderSplitHandler splits orders of the split company once they are submitted.
// A failed split is logged and never undoes the parent submission.
type OrderSplitHandler struct {
	splitter *OrderSplitter
	orders   trade.SalesOrderRepository
	logger   *zap.Logger
}

// NewOrderSplitHandler creates a handler for SalesOrderSubmitted events
func NewOrderSplitHandler(splitter *OrderSplitter, orders trade.SalesOrderRepository, logger *zap.Logger) *OrderSplitHandler {
	return &OrderSplitHandler{
		splitter: splitter,
		orders:   orders,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderSplitHandler) EventTypes() []string {
	return []string{trade.EventTypeSalesOrderSubmitted}
}

// Handle splits the submitted order. Child orders and orders of other companies are ignored.
func (h *OrderSplitHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	submitted, ok := event.(*trade.SalesOrderSubmittedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", trade.EventTypeSalesOrderSubmitted),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			trade.EventTypeSalesOrderSubmitted, event.EventType())
	}
	if submitted.SourceWebSO != "" || !h.splitter.Applies(submitted.Company) {
		return nil
	}

	parent, err := h.orders.FindByName(ctx, submitted.Name)
	if err == nil {
		_, err = h.splitter.Split(ctx, parent)
	}
	if err != nil {
		h.logger.Error("Culinary Order Split Error",
			zap.String("sales_order", submitted.Name),
			zap.String("event_id", submitted.EventID().String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

var _ shared.EventHandler = (*OrderSplitHandler)(nil)
