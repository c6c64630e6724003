package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/culinary/backend/internal/domain/catalog"
	"github.com/culinary/backend/internal/domain/partner"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/domain/trade"
	"github.com/culinary/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// OrderSplitter fans a submitted order of the split company out into one
// child order per fulfilling company: a kitchen for kitchen items and the
// brand company for branded items.
type OrderSplitter struct {
	orders         trade.SalesOrderRepository
	items          catalog.ItemRepository
	companies      partner.CompanyRepository
	addresses      partner.AddressRepository
	brands         partner.BrandRepository
	names          shared.NameGenerator
	tx             shared.TransactionManager
	eventPublisher shared.EventPublisher
	settings       Settings
	logger         *zap.Logger
}

// NewOrderSplitter creates an OrderSplitter
func NewOrderSplitter(
	orders trade.SalesOrderRepository,
	items catalog.ItemRepository,
	companies partner.CompanyRepository,
	addresses partner.AddressRepository,
	brands partner.BrandRepository,
	names shared.NameGenerator,
	tx shared.TransactionManager,
	settings Settings,
	logger *zap.Logger,
) *OrderSplitter {
	return &OrderSplitter{
		orders:    orders,
		items:     items,
		companies: companies,
		addresses: addresses,
		brands:    brands,
		names:     names,
		tx:        tx,
		settings:  settings,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderSplitter) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Applies reports whether orders of company are split
func (s *OrderSplitter) Applies(company string) bool {
	return company != "" && company == s.settings.SplitCompany
}

// lineGroup is a set of parent lines bound for one company
type lineGroup struct {
	company string
	kind    string
	lines   []trade.SalesOrderItem
}

// SplitByName splits the named order
func (s *OrderSplitter) SplitByName(ctx context.Context, name string) (*SplitResponse, error) {
	parent, err := s.orders.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	children, err := s.Split(ctx, parent)
	if err != nil {
		return nil, err
	}
	return &SplitResponse{Parent: parent.Name, Children: children}, nil
}

// Split creates the missing child orders of parent and returns their names.
// Orders of other companies are ignored. Companies that already hold a child
// of parent are skipped, so calling Split again is harmless.
func (s *OrderSplitter) Split(ctx context.Context, parent *trade.SalesOrder) ([]string, error) {
	children := []string{}
	if !s.Applies(parent.Company) {
		return children, nil
	}
	if parent.DocStatus != trade.DocStatusSubmitted {
		return nil, shared.NewDomainError(trade.ErrCodeNotSubmitted, "Only submitted orders can be split")
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "order_splitter", "split",
		telemetry.AttrSalesOrder, parent.Name, telemetry.AttrItemCount, len(parent.Items))
	defer span.End()

	groups, err := s.group(ctx, parent)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var published []shared.DomainEvent
	for _, g := range groups {
		exists, err := s.orders.ChildExists(ctx, parent.Name, g.company)
		if err != nil {
			telemetry.RecordError(span, err)
			return children, err
		}
		if exists {
			s.logger.Debug("Child order already exists",
				zap.String("parent", parent.Name), zap.String("company", g.company))
			continue
		}
		child, err := s.createChild(ctx, parent, g)
		if err != nil {
			s.logger.Error("Company sales order creation failed",
				zap.String("parent", parent.Name),
				zap.String("company", g.company),
				zap.Error(err),
			)
			telemetry.RecordError(span, err)
			return children, err
		}
		children = append(children, child.Name)
		published = append(published, child.GetDomainEvents()...)
		child.ClearDomainEvents()
		s.logger.Info("Order split child created",
			zap.String("parent", parent.Name),
			zap.String("child", child.Name),
			zap.String("company", g.company),
			zap.String("type", g.kind),
		)
	}

	if len(children) > 0 {
		published = append(published, trade.NewSalesOrderSplitEvent(parent, children))
	}
	s.publish(ctx, published)
	telemetry.SetAttributes(span, "split.children", len(children))
	return children, nil
}

// group sorts parent lines into the kitchen group and one group per brand,
// each resolved to its target company. Lines that are neither kitchen nor
// branded, and groups without a target, are dropped.
func (s *OrderSplitter) group(ctx context.Context, parent *trade.SalesOrder) ([]lineGroup, error) {
	codes := make([]string, len(parent.Items))
	for i, line := range parent.Items {
		codes[i] = line.ItemCode
	}
	known, err := s.items.FindByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]catalog.Item, len(known))
	for _, it := range known {
		byCode[it.Code] = it
	}

	var kitchenLines []trade.SalesOrderItem
	var brandOrder []string
	brandLines := make(map[string][]trade.SalesOrderItem)
	for _, line := range parent.Items {
		it, ok := byCode[line.ItemCode]
		if !ok {
			continue
		}
		switch {
		case it.IsKitchenItem:
			kitchenLines = append(kitchenLines, line)
		case it.Brand != "":
			if _, seen := brandLines[it.Brand]; !seen {
				brandOrder = append(brandOrder, it.Brand)
			}
			brandLines[it.Brand] = append(brandLines[it.Brand], line)
		}
	}

	var groups []lineGroup
	if len(kitchenLines) > 0 {
		kitchen, err := s.kitchenFor(ctx, parent)
		if err != nil {
			return nil, err
		}
		if kitchen != "" {
			groups = append(groups, lineGroup{company: kitchen, kind: "kitchen", lines: kitchenLines})
		}
	}
	for _, brand := range brandOrder {
		company, err := s.brandCompany(ctx, brand)
		if err != nil {
			return nil, err
		}
		if company == "" {
			s.logger.Warn("No company for brand, lines not routed",
				zap.String("parent", parent.Name), zap.String("brand", brand))
			continue
		}
		groups = append(groups, lineGroup{company: company, kind: brand, lines: brandLines[brand]})
	}
	return groups, nil
}

// kitchenFor picks the kitchen whose default address shares the shipping
// pincode, else the first kitchen. Without a shipping pincode there is no kitchen.
func (s *OrderSplitter) kitchenFor(ctx context.Context, parent *trade.SalesOrder) (string, error) {
	pincode, err := s.pincodeOf(ctx, parent.ShippingAddress)
	if err != nil {
		return "", err
	}
	if pincode == "" {
		s.logger.Warn("Kitchen routing skipped, shipping address has no pincode",
			zap.String("parent", parent.Name), zap.String("customer", parent.Customer))
		return "", nil
	}

	kitchens, err := s.companies.FindByNamePrefix(ctx, s.settings.KitchenCompanyPrefix)
	if err != nil {
		return "", err
	}
	for _, k := range kitchens {
		kp, err := s.pincodeOf(ctx, k.DefaultAddress)
		if err != nil {
			return "", err
		}
		if kp != "" && kp == pincode {
			return k.Name, nil
		}
	}
	if len(kitchens) > 0 {
		return kitchens[0].Name, nil
	}
	s.logger.Warn("Kitchen not found",
		zap.String("customer", parent.Customer), zap.String("pincode", pincode))
	return "", nil
}

// pincodeOf returns the pincode of the named address, or "" when there is none
func (s *OrderSplitter) pincodeOf(ctx context.Context, address string) (string, error) {
	if address == "" {
		return "", nil
	}
	addr, err := s.addresses.FindByName(ctx, address)
	if errors.Is(err, shared.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return addr.Pincode, nil
}

// brandCompany resolves the company fulfilling a brand: brand defaults, then
// the brand's default company, then a company named like the brand.
func (s *OrderSplitter) brandCompany(ctx context.Context, brandName string) (string, error) {
	b, err := s.brands.FindByName(ctx, brandName)
	switch {
	case err == nil:
		if c := b.ResolveCompany(); c != "" {
			return c, nil
		}
	case !errors.Is(err, shared.ErrNotFound):
		return "", err
	}
	exists, err := s.companies.ExistsByName(ctx, brandName)
	if err != nil {
		return "", err
	}
	if exists {
		return brandName, nil
	}
	return "", nil
}

// createChild stores and submits one child order named from the company prefix
func (s *OrderSplitter) createChild(ctx context.Context, parent *trade.SalesOrder, g lineGroup) (*trade.SalesOrder, error) {
	company, err := s.companies.FindByName(ctx, g.company)
	if err != nil {
		return nil, fmt.Errorf("target company %q: %w", g.company, err)
	}

	var child *trade.SalesOrder
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		name, err := s.names.Next(ctx, trade.CompanyPrefix(company.Abbr, company.Name))
		if err != nil {
			return err
		}
		if child, err = trade.NewChildOrder(parent, name, company.Name); err != nil {
			return err
		}
		for _, line := range g.lines {
			if err := child.CopyLine(line); err != nil {
				return err
			}
		}
		child.CalculateTotals()
		if err := child.Submit(); err != nil {
			return err
		}
		return s.orders.Save(ctx, child)
	})
	if err != nil {
		return nil, err
	}
	return child, nil
}

func (s *OrderSplitter) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish split events", zap.Error(err))
	}
}
