package trade

import (
	"context"
	"strings"

	"github.com/culinary/backend/internal/domain/catalog"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/domain/trade"
	"github.com/culinary/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SalesOrderService handles sales order business operations
type SalesOrderService struct {
	orders         trade.SalesOrderRepository
	items          catalog.ItemRepository
	pricer         *AgreementPricer
	tx             shared.TransactionManager
	names          shared.NameGenerator
	clock          shared.Clock
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	orders trade.SalesOrderRepository,
	items catalog.ItemRepository,
	pricer *AgreementPricer,
	tx shared.TransactionManager,
	names shared.NameGenerator,
	clock shared.Clock,
	logger *zap.Logger,
) *SalesOrderService {
	return &SalesOrderService{
		orders: orders,
		items:  items,
		pricer: pricer,
		tx:     tx,
		names:  names,
		clock:  clock,
		logger: logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SalesOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a draft sales order priced from the customer's agreements
func (s *SalesOrderService) Create(ctx context.Context, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sales_order", "create",
		telemetry.AttrCustomer, req.Customer, telemetry.AttrCompany, req.Company)
	defer span.End()

	txDate := shared.Today(s.clock)
	if req.TransactionDate != "" {
		d, err := parseDay(req.TransactionDate)
		if err != nil {
			return nil, err
		}
		txDate = *d
	}
	delivery, err := parseDay(req.DeliveryDate)
	if err != nil {
		return nil, err
	}

	name, err := s.names.Next(ctx, trade.NamePrefix)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	order, err := trade.NewSalesOrder(name, req.Company, req.Customer, txDate)
	if err != nil {
		return nil, err
	}
	if err := order.SetDeliveryDate(delivery); err != nil {
		return nil, err
	}
	order.SetAddresses(req.ShippingAddress, req.CustomerAddress)
	order.Currency = strings.ToUpper(req.Currency)

	lines, err := s.buildLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	if err := order.ReplaceItems(lines); err != nil {
		return nil, err
	}
	if err := s.pricer.Apply(ctx, order); err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.AttrSalesOrder, order.Name, telemetry.AttrItemCount, len(order.Items))
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// buildLines fills item names and descriptions from the catalogue
func (s *SalesOrderService) buildLines(ctx context.Context, inputs []SalesOrderItemInput) ([]trade.SalesOrderItem, error) {
	codes := make([]string, 0, len(inputs))
	for _, in := range inputs {
		codes = append(codes, strings.TrimSpace(in.ItemCode))
	}
	known, err := s.items.FindByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]catalog.Item, len(known))
	for _, it := range known {
		byCode[it.Code] = it
	}

	lines := make([]trade.SalesOrderItem, len(inputs))
	for i, in := range inputs {
		code := strings.TrimSpace(in.ItemCode)
		line := trade.SalesOrderItem{
			ItemCode:    code,
			ItemName:    in.ItemName,
			Description: in.Description,
			Qty:         in.Qty,
			Rate:        in.Rate,
		}
		if it, ok := byCode[code]; ok {
			if line.ItemName == "" {
				line.ItemName = it.Name
			}
			if line.Description == "" {
				line.Description = it.Description
			}
		}
		lines[i] = line
	}
	return lines, nil
}

// Update changes a draft order and re-prices it
func (s *SalesOrderService) Update(ctx context.Context, name string, req UpdateSalesOrderRequest) (*SalesOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sales_order", "update", telemetry.AttrSalesOrder, name)
	defer span.End()

	order, err := s.orders.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if order.DocStatus != trade.DocStatusDraft {
		return nil, shared.NewDomainError(trade.ErrCodeNotDraft, "Only draft orders can be edited")
	}
	if req.DeliveryDate != nil {
		d, err := parseDay(*req.DeliveryDate)
		if err != nil {
			return nil, err
		}
		if err := order.SetDeliveryDate(d); err != nil {
			return nil, err
		}
	}
	if req.Currency != nil {
		order.Currency = strings.ToUpper(*req.Currency)
	}
	shipping, billing := order.ShippingAddress, order.CustomerAddress
	if req.ShippingAddress != nil {
		shipping = *req.ShippingAddress
	}
	if req.CustomerAddress != nil {
		billing = *req.CustomerAddress
	}
	order.SetAddresses(shipping, billing)
	if req.Items != nil {
		lines, err := s.buildLines(ctx, req.Items)
		if err != nil {
			return nil, err
		}
		if err := order.ReplaceItems(lines); err != nil {
			return nil, err
		}
	}
	if err := s.pricer.Apply(ctx, order); err != nil {
		return nil, err
	}
	order.Touch()

	if err := s.orders.SaveWithLock(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Get retrieves a sales order by name
func (s *SalesOrderService) Get(ctx context.Context, name string) (*SalesOrderResponse, error) {
	order, err := s.orders.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// List retrieves sales orders with filtering and pagination
func (s *SalesOrderService) List(ctx context.Context, q ListSalesOrdersQuery) ([]SalesOrderResponse, int64, error) {
	orders, total, err := s.orders.FindAll(ctx, q.ToFilter())
	if err != nil {
		return nil, 0, err
	}
	out := make([]SalesOrderResponse, len(orders))
	for i := range orders {
		out[i] = ToSalesOrderResponse(&orders[i])
	}
	return out, total, nil
}

// ListChildren returns the orders split from parent
func (s *SalesOrderService) ListChildren(ctx context.Context, parent string) ([]SalesOrderResponse, error) {
	if _, err := s.orders.FindByName(ctx, parent); err != nil {
		return nil, err
	}
	children, err := s.orders.FindChildren(ctx, parent)
	if err != nil {
		return nil, err
	}
	out := make([]SalesOrderResponse, len(children))
	for i := range children {
		out[i] = ToSalesOrderResponse(&children[i])
	}
	return out, nil
}

// Submit re-prices and submits a draft order, then publishes SalesOrderSubmitted.
// Child orders keep the rates copied from their parent.
func (s *SalesOrderService) Submit(ctx context.Context, name string) (*SalesOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sales_order", "submit", telemetry.AttrSalesOrder, name)
	defer span.End()

	var order *trade.SalesOrder
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if order, err = s.orders.FindByName(ctx, name); err != nil {
			return err
		}
		if !order.IsChild() {
			if err := s.pricer.Apply(ctx, order); err != nil {
				return err
			}
		}
		if err := order.Submit(); err != nil {
			return err
		}
		return s.orders.SaveWithLock(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.AttrCompany, order.Company)
	s.publishEvents(ctx, order)
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Cancel cancels a draft or submitted order
func (s *SalesOrderService) Cancel(ctx context.Context, name string) (*SalesOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sales_order", "cancel", telemetry.AttrSalesOrder, name)
	defer span.End()

	order, err := s.orders.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orders.SaveWithLock(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, order)
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// ItemPriceFromAgreement returns the agreement price of one item
func (s *SalesOrderService) ItemPriceFromAgreement(ctx context.Context, q ItemPriceQuery) (*ItemPriceResult, error) {
	return s.pricer.ItemPrice(ctx, q)
}

func (s *SalesOrderService) publishEvents(ctx context.Context, order *trade.SalesOrder) {
	events := order.GetDomainEvents()
	order.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// handler failures surface in the bus log, not here
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish sales order events",
			zap.String("sales_order", order.Name), zap.Error(err))
	}
}
