package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/culinary/backend/internal/domain/agreement"
	"github.com/culinary/backend/internal/domain/pricing"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PriceSyncService mirrors agreement rates into the customer's price list.
// Every method uses the transaction carried by ctx, if any.
type PriceSyncService struct {
	priceLists pricing.PriceListRepository
	itemPrices pricing.ItemPriceRepository
	rates      *RateService
	logger     *zap.Logger
}

// NewPriceSyncService creates a PriceSyncService
func NewPriceSyncService(
	priceLists pricing.PriceListRepository,
	itemPrices pricing.ItemPriceRepository,
	rates *RateService,
	logger *zap.Logger,
) *PriceSyncService {
	return &PriceSyncService{
		priceLists: priceLists,
		itemPrices: itemPrices,
		rates:      rates,
		logger:     logger,
	}
}

// EnsurePriceList makes sure the customer's selling price list exists and is
// enabled, then points the agreement at it.
func (s *PriceSyncService) EnsurePriceList(ctx context.Context, a *agreement.Agreement) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "price_sync", "ensure_price_list",
		telemetry.AttrAgreement, a.Name, telemetry.AttrCustomer, a.Customer)
	defer span.End()

	currencies := itemCurrencies(a)
	if len(currencies) == 0 {
		cur, err := s.rates.DefaultCurrency(ctx)
		if err != nil {
			telemetry.RecordError(span, err)
			return err
		}
		currencies = []string{cur}
	}

	for _, cur := range currencies {
		list, err := s.priceLists.FindByName(ctx, a.Customer)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			list, err = pricing.NewSellingPriceList(a.Customer, cur)
			if err != nil {
				return err
			}
			if err := s.priceLists.Save(ctx, list); err != nil {
				telemetry.RecordError(span, err)
				return fmt.Errorf("create price list %q: %w", a.Customer, err)
			}
			s.logger.Info("Price list created",
				zap.String("price_list", list.Name),
				zap.String("currency", cur),
				zap.String("agreement", a.Name),
			)
		case err != nil:
			telemetry.RecordError(span, err)
			return err
		default:
			if list.Enable() {
				if err := s.priceLists.Save(ctx, list); err != nil {
					telemetry.RecordError(span, err)
					return fmt.Errorf("enable price list %q: %w", a.Customer, err)
				}
			}
		}
	}

	a.PriceList = a.Customer
	return nil
}

func itemCurrencies(a *agreement.Agreement) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range a.Items {
		if it.Currency != "" && !seen[it.Currency] {
			seen[it.Currency] = true
			out = append(out, it.Currency)
		}
	}
	return out
}

// SyncItemPrices writes one item price per agreement row into the customer's list.
// Prices of the same item whose validity overlaps the agreement are replaced.
func (s *PriceSyncService) SyncItemPrices(ctx context.Context, a *agreement.Agreement) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "price_sync", "sync_item_prices",
		telemetry.AttrAgreement, a.Name, telemetry.AttrItemCount, len(a.Items))
	defer span.End()

	listName := a.PriceList
	if listName == "" {
		listName = a.Customer
	}
	exists, err := s.priceLists.ExistsByName(ctx, listName)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	defaultCurrency := ""
	window := pricing.DateRange{From: a.ValidFrom, Upto: a.ValidTo}
	synced := 0
	for _, row := range a.Items {
		if row.ItemCode == "" {
			continue
		}
		currency := row.Currency
		if currency == "" {
			if defaultCurrency == "" {
				if defaultCurrency, err = s.rates.DefaultCurrency(ctx); err != nil {
					return err
				}
			}
			currency = defaultCurrency
		}

		if _, err := s.itemPrices.DeleteOverlapping(ctx, listName, row.ItemCode, window); err != nil {
			telemetry.RecordError(span, err)
			return fmt.Errorf("delete overlapping prices of %s: %w", row.ItemCode, err)
		}
		if !exists {
			continue
		}

		standard := row.StandardSellingRate
		if standard.IsZero() {
			if standard, err = s.rates.StandardSellingRate(ctx, row.ItemCode, currency); err != nil {
				return err
			}
		}
		rate := pricing.EffectiveRate(row.PriceListRate, standard, a.DiscountRate)

		key := pricing.ItemPriceKey{
			PriceList: listName,
			ItemCode:  row.ItemCode,
			Currency:  currency,
			ValidFrom: a.ValidFrom,
			ValidUpto: a.ValidTo,
		}
		price, err := s.itemPrices.FindByKey(ctx, key)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			if price, err = pricing.NewItemPrice(key, rate); err != nil {
				return err
			}
		case err != nil:
			telemetry.RecordError(span, err)
			return err
		default:
			price.UpdateRate(rate)
		}
		price.Customer = a.Customer
		price.Agreement = a.Name
		if err := s.itemPrices.Save(ctx, price); err != nil {
			telemetry.RecordError(span, err)
			return fmt.Errorf("save price of %s: %w", row.ItemCode, err)
		}
		synced++
	}

	s.logger.Info("Agreement prices synced",
		zap.String("agreement", a.Name),
		zap.String("price_list", listName),
		zap.Int("synced", synced),
		zap.Bool("price_list_exists", exists),
	)
	return nil
}

// CleanupItemPrices removes the agreement's item prices and returns how many went
func (s *PriceSyncService) CleanupItemPrices(ctx context.Context, a *agreement.Agreement) (int64, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "price_sync", "cleanup_item_prices",
		telemetry.AttrAgreement, a.Name)
	defer span.End()

	listName := a.PriceList
	if listName == "" {
		listName = a.Customer
	}
	window := pricing.DateRange{From: a.ValidFrom, Upto: a.ValidTo}
	var removed int64
	for _, row := range a.Items {
		if row.ItemCode == "" {
			continue
		}
		n, err := s.itemPrices.DeleteOverlapping(ctx, listName, row.ItemCode, window)
		if err != nil {
			telemetry.RecordError(span, err)
			return removed, fmt.Errorf("delete prices of %s: %w", row.ItemCode, err)
		}
		removed += n
	}
	s.logger.Info("Agreement prices removed",
		zap.String("agreement", a.Name),
		zap.String("price_list", listName),
		zap.Int64("removed", removed),
	)
	return removed, nil
}

// SetPriceListEnabled switches the customer's price list on or off. A missing list is ignored.
func (s *PriceSyncService) SetPriceListEnabled(ctx context.Context, customer string, enabled bool) error {
	list, err := s.priceLists.FindByName(ctx, customer)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	var changed bool
	if enabled {
		changed = list.Enable()
	} else {
		changed = list.Disable()
	}
	if !changed {
		return nil
	}
	if err := s.priceLists.Save(ctx, list); err != nil {
		return fmt.Errorf("update price list %q: %w", customer, err)
	}
	s.logger.Info("Price list toggled", zap.String("price_list", customer), zap.Bool("enabled", enabled))
	return nil
}
