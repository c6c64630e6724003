package agreement

import (
	"context"
	"fmt"
	"strings"
	"time"

	pricingapp "github.com/culinary/backend/internal/application/pricing"
	"github.com/culinary/backend/internal/domain/agreement"
	"github.com/culinary/backend/internal/domain/catalog"
	"github.com/culinary/backend/internal/domain/pricing"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service handles agreement lifecycle operations and keeps the customer's
// price list in step with submitted agreements.
type Service struct {
	repo           agreement.Repository
	items          catalog.ItemRepository
	itemPrices     pricing.ItemPriceRepository
	rates          *pricingapp.RateService
	sync           *pricingapp.PriceSyncService
	tx             shared.TransactionManager
	names          shared.NameGenerator
	clock          shared.Clock
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new agreement Service
func NewService(
	repo agreement.Repository,
	items catalog.ItemRepository,
	itemPrices pricing.ItemPriceRepository,
	rates *pricingapp.RateService,
	sync *pricingapp.PriceSyncService,
	tx shared.TransactionManager,
	names shared.NameGenerator,
	clock shared.Clock,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:       repo,
		items:      items,
		itemPrices: itemPrices,
		rates:      rates,
		sync:       sync,
		tx:         tx,
		names:      names,
		clock:      clock,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a draft agreement
func (s *Service) Create(ctx context.Context, req CreateAgreementRequest) (*AgreementResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "agreement", "create", telemetry.AttrCustomer, req.Customer)
	defer span.End()

	from, err := parseDay(req.ValidFrom)
	if err != nil {
		return nil, err
	}
	to, err := parseDay(req.ValidTo)
	if err != nil {
		return nil, err
	}
	name, err := s.names.Next(ctx, agreement.NamePrefix)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	a, err := agreement.NewAgreement(name, req.Customer, req.Supplier, from, to)
	if err != nil {
		return nil, err
	}
	if req.DiscountRate != nil {
		if err := a.SetDiscountRate(*req.DiscountRate); err != nil {
			return nil, err
		}
	}
	rows, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	a.SetItems(rows)
	a.RefreshStatus(shared.Today(s.clock))

	if err := s.repo.Save(ctx, a); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.AttrAgreement, a.Name)
	resp := ToAgreementResponse(a)
	return &resp, nil
}

// buildItems fills item names from the catalogue and standard rates from
// the standard price list when the caller left them blank.
func (s *Service) buildItems(ctx context.Context, reqs []ItemRequest) ([]agreement.Item, error) {
	codes := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if code := strings.TrimSpace(r.ItemCode); code != "" {
			codes = append(codes, code)
		}
	}
	names := make(map[string]string, len(codes))
	if len(codes) > 0 {
		found, err := s.items.FindByCodes(ctx, codes)
		if err != nil {
			return nil, err
		}
		for _, it := range found {
			names[it.Code] = it.Name
		}
	}

	var defaultCurrency string
	rows := make([]agreement.Item, 0, len(reqs))
	for _, r := range reqs {
		row := agreement.Item{
			ItemCode:            strings.TrimSpace(r.ItemCode),
			ItemName:            r.ItemName,
			Currency:            strings.ToUpper(strings.TrimSpace(r.Currency)),
			StandardSellingRate: r.StandardSellingRate,
			PriceListRate:       r.PriceListRate,
		}
		if row.ItemName == "" {
			row.ItemName = names[row.ItemCode]
		}
		if row.Currency == "" {
			if defaultCurrency == "" {
				cur, err := s.rates.DefaultCurrency(ctx)
				if err != nil {
					return nil, err
				}
				defaultCurrency = cur
			}
			row.Currency = defaultCurrency
		}
		if row.StandardSellingRate.IsZero() && row.ItemCode != "" {
			std, err := s.rates.StandardSellingRate(ctx, row.ItemCode, row.Currency)
			if err != nil {
				return nil, err
			}
			row.StandardSellingRate = std
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Update replaces header fields and rows of a draft agreement
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateAgreementRequest) (*AgreementResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "agreement", "update")
	defer span.End()

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from, err := parseDay(req.ValidFrom)
	if err != nil {
		return nil, err
	}
	to, err := parseDay(req.ValidTo)
	if err != nil {
		return nil, err
	}
	discount := a.DiscountRate
	if req.DiscountRate != nil {
		discount = *req.DiscountRate
	}
	if err := a.UpdateDraft(req.Customer, req.Supplier, from, to, discount); err != nil {
		return nil, err
	}
	if req.Items != nil {
		rows, err := s.buildItems(ctx, req.Items)
		if err != nil {
			return nil, err
		}
		a.SetItems(rows)
	}
	if err := s.repo.SaveWithLock(ctx, a); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	resp := ToAgreementResponse(a)
	return &resp, nil
}

// GetByID retrieves an agreement by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*AgreementResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAgreementResponse(a)
	return &resp, nil
}

// GetByName retrieves an agreement by its document name
func (s *Service) GetByName(ctx context.Context, name string) (*AgreementResponse, error) {
	a, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	resp := ToAgreementResponse(a)
	return &resp, nil
}

// List retrieves agreements with filtering and pagination
func (s *Service) List(ctx context.Context, q ListAgreementsQuery) ([]AgreementResponse, int64, error) {
	rows, total, err := s.repo.FindAll(ctx, q.ToFilter())
	if err != nil {
		return nil, 0, err
	}
	out := make([]AgreementResponse, len(rows))
	for i := range rows {
		out[i] = ToAgreementResponse(&rows[i])
	}
	return out, total, nil
}

// Submit submits a draft agreement. Unless replacement is set, submission is
// refused while another submitted agreement exists for the same customer and supplier.
func (s *Service) Submit(ctx context.Context, id uuid.UUID, replacement bool) (*AgreementResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "agreement", "submit")
	defer span.End()

	var a *agreement.Agreement
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if a, err = s.repo.FindByID(ctx, id); err != nil {
			return err
		}
		return s.submit(ctx, a, replacement)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.AttrAgreement, a.Name, telemetry.AttrCustomer, a.Customer)
	s.publishEvents(ctx, a)
	resp := ToAgreementResponse(a)
	return &resp, nil
}

func (s *Service) submit(ctx context.Context, a *agreement.Agreement, replacement bool) error {
	if a.DocStatus != agreement.DocStatusDraft {
		return shared.NewDomainError(agreement.ErrCodeNotDraft, "Only draft agreements can be submitted")
	}
	if err := a.Validate(); err != nil {
		return err
	}
	if !replacement {
		if err := s.checkOverlap(ctx, a); err != nil {
			return err
		}
	}
	if err := a.Submit(shared.Today(s.clock)); err != nil {
		return err
	}
	if a.Status == agreement.StatusActive {
		if err := s.sync.EnsurePriceList(ctx, a); err != nil {
			return err
		}
		if err := s.sync.SyncItemPrices(ctx, a); err != nil {
			return err
		}
	}
	return s.repo.SaveWithLock(ctx, a)
}

func (s *Service) checkOverlap(ctx context.Context, a *agreement.Agreement) error {
	existing, err := s.repo.FindSubmittedFor(ctx, a.Customer, a.Supplier, a.Name)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return nil
	}
	names := make([]string, len(existing))
	for i, e := range existing {
		names[i] = e.Name
	}
	return shared.NewDomainError(agreement.ErrCodeOverlap, fmt.Sprintf(
		"Active agreement exists: %s. Please cancel the existing agreement first.", strings.Join(names, ", ")))
}

// UpdateAfterSubmit changes rates or the discount of a submitted agreement and re-syncs its prices
func (s *Service) UpdateAfterSubmit(ctx context.Context, id uuid.UUID, req UpdateAfterSubmitRequest) (*AgreementResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "agreement", "update_after_submit")
	defer span.End()

	change := agreement.Amendment{
		Customer:     req.Customer,
		Supplier:     req.Supplier,
		DiscountRate: req.DiscountRate,
	}
	if req.ValidFrom != nil {
		d, err := parseDay(*req.ValidFrom)
		if err != nil {
			return nil, err
		}
		change.ValidFrom = d
	}
	if req.ValidTo != nil {
		d, err := parseDay(*req.ValidTo)
		if err != nil {
			return nil, err
		}
		change.ValidTo = d
	}
	if len(req.Items) > 0 {
		change.Rates = make(map[string]decimal.Decimal, len(req.Items))
		for _, it := range req.Items {
			change.Rates[it.ItemCode] = it.PriceListRate
		}
	}

	var a *agreement.Agreement
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if a, err = s.repo.FindByID(ctx, id); err != nil {
			return err
		}
		if err := a.AmendAfterSubmit(change); err != nil {
			return err
		}
		if err := s.sync.SyncItemPrices(ctx, a); err != nil {
			return err
		}
		return s.repo.SaveWithLock(ctx, a)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	resp := ToAgreementResponse(a)
	return &resp, nil
}

// Cancel cancels a submitted agreement, removes its item prices and disables
// the customer's price list when no other active agreement remains.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*AgreementResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "agreement", "cancel")
	defer span.End()

	var a *agreement.Agreement
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if a, err = s.repo.FindByID(ctx, id); err != nil {
			return err
		}
		return s.cancel(ctx, a)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, a)
	resp := ToAgreementResponse(a)
	return &resp, nil
}

func (s *Service) cancel(ctx context.Context, a *agreement.Agreement) error {
	if err := a.Cancel(); err != nil {
		return err
	}
	if err := s.releasePrices(ctx, a); err != nil {
		return err
	}
	return s.repo.SaveWithLock(ctx, a)
}

// releasePrices drops the agreement's item prices and disables the price list
// unless another active agreement of the customer still needs it.
func (s *Service) releasePrices(ctx context.Context, a *agreement.Agreement) error {
	others, err := s.repo.CountActiveForCustomer(ctx, a.Customer, a.Name)
	if err != nil {
		return err
	}
	if others == 0 {
		if err := s.sync.SetPriceListEnabled(ctx, a.Customer, false); err != nil {
			return err
		}
	}
	_, err = s.sync.CleanupItemPrices(ctx, a)
	return err
}

// Replace cancels a submitted agreement and submits a draft in its place
func (s *Service) Replace(ctx context.Context, req ReplaceRequest) (*ReplaceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "agreement", "replace",
		telemetry.AttrAgreement, req.NewAgreement)
	defer span.End()

	var oldAgr, newAgr *agreement.Agreement
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if oldAgr, err = s.repo.FindByName(ctx, req.OldAgreement); err != nil {
			return err
		}
		if newAgr, err = s.repo.FindByName(ctx, req.NewAgreement); err != nil {
			return err
		}
		if !oldAgr.IsSubmitted() {
			return shared.NewDomainError(agreement.ErrCodeNotSubmitted, "Old agreement is not submitted")
		}
		if newAgr.DocStatus != agreement.DocStatusDraft {
			return shared.NewDomainError(agreement.ErrCodeNotDraft, "New agreement must be in draft status")
		}
		if err := s.cancel(ctx, oldAgr); err != nil {
			return err
		}
		return s.submit(ctx, newAgr, true)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, oldAgr)
	s.publishEvents(ctx, newAgr)
	s.logger.Info("Agreement replaced",
		zap.String("old_agreement", oldAgr.Name),
		zap.String("new_agreement", newAgr.Name),
	)
	return &ReplaceResponse{Success: true, Message: "Old agreement cancelled, new agreement submitted"}, nil
}

// CheckActive lists the submitted agreements of customer and supplier,
// excluding the named one.
func (s *Service) CheckActive(ctx context.Context, customer, supplier, exclude string) (*CheckActiveResponse, error) {
	if strings.TrimSpace(customer) == "" || strings.TrimSpace(supplier) == "" {
		return &CheckActiveResponse{Agreements: []agreement.Summary{}}, nil
	}
	existing, err := s.repo.FindSubmittedFor(ctx, customer, supplier, exclude)
	if err != nil {
		return nil, err
	}
	return &CheckActiveResponse{HasActive: len(existing) > 0, Agreements: existing}, nil
}

// LoadCurrentPrices compares each row of a submitted agreement with today's
// standard rate and the rate currently stored in the customer's price list.
// A row that cannot be priced is logged and left out.
func (s *Service) LoadCurrentPrices(ctx context.Context, id uuid.UUID) ([]CurrentPriceRow, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := []CurrentPriceRow{}
	if !a.IsSubmitted() {
		return out, nil
	}
	listName := a.PriceList
	if listName == "" {
		listName = a.Customer
	}
	defaultCurrency, err := s.rates.DefaultCurrency(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range a.Items {
		currency := row.Currency
		if currency == "" {
			currency = defaultCurrency
		}
		std, err := s.rates.StandardSellingRate(ctx, row.ItemCode, currency)
		if err != nil {
			s.logger.Warn("Current standard rate unavailable",
				zap.String("agreement", a.Name), zap.String("item_code", row.ItemCode), zap.Error(err))
			continue
		}
		agr, _, err := s.itemPrices.FindAgreementRate(ctx, listName, row.ItemCode, currency, a.Name)
		if err != nil {
			s.logger.Warn("Current agreement rate unavailable",
				zap.String("agreement", a.Name), zap.String("item_code", row.ItemCode), zap.Error(err))
			continue
		}
		out = append(out, CurrentPriceRow{
			ItemCode:             row.ItemCode,
			ItemName:             row.ItemName,
			Currency:             currency,
			CurrentStandardRate:  std,
			CurrentAgreementRate: agr,
			PriceChange: agreement.NewPriceChangeIndicator(currency,
				row.StandardSellingRate, std, row.PriceListRate, agr),
		})
	}
	return out, nil
}

// UpdateAllStatuses recomputes the status of every non-cancelled agreement.
// Agreements that became active get their prices; expired ones are cancelled
// with their prices removed. One failing agreement does not stop the run.
func (s *Service) UpdateAllStatuses(ctx context.Context) (*StatusRefreshResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "agreement", "update_all_statuses")
	defer span.End()

	all, err := s.repo.FindNotCancelled(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	today := shared.Today(s.clock)
	result := &StatusRefreshResult{Total: len(all)}
	for i := range all {
		a := &all[i]
		var changed, expired bool
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			changed, expired, err = s.refreshOne(ctx, a, today)
			return err
		})
		if err != nil {
			s.logger.Error("Agreement status update failed",
				zap.String("agreement", a.Name), zap.Error(err))
			a.ClearDomainEvents()
			continue
		}
		if changed {
			result.Updated++
		}
		if expired {
			result.Cancelled++
		}
		s.publishEvents(ctx, a)
	}

	telemetry.SetAttributes(span, "agreement.updated", result.Updated, "agreement.cancelled", result.Cancelled)
	s.logger.Info("Agreement statuses refreshed",
		zap.Int("updated", result.Updated),
		zap.Int("total", result.Total),
		zap.Int("cancelled", result.Cancelled),
	)
	return result, nil
}

func (s *Service) refreshOne(ctx context.Context, a *agreement.Agreement, today time.Time) (changed, expired bool, err error) {
	previous, changed := a.RefreshStatus(today)
	if changed {
		a.AddDomainEvent(agreement.NewAgreementStatusChangedEvent(a, previous))
		if a.IsSubmitted() && previous == agreement.StatusNotStarted && a.Status == agreement.StatusActive {
			if err := s.sync.EnsurePriceList(ctx, a); err != nil {
				return false, false, err
			}
			if err := s.sync.SyncItemPrices(ctx, a); err != nil {
				return false, false, err
			}
		}
	}

	if a.IsSubmitted() && a.Status == agreement.StatusExpired {
		if err := a.Expire(); err != nil {
			return false, false, err
		}
		expired = true
	}
	if expired || changed && previous == agreement.StatusActive && a.Status == agreement.StatusExpired {
		if _, err := s.sync.CleanupItemPrices(ctx, a); err != nil {
			return false, false, err
		}
	}

	if !changed && !expired {
		return false, false, nil
	}
	if err := s.repo.SaveWithLock(ctx, a); err != nil {
		return false, false, err
	}
	if a.DocStatus == agreement.DocStatusDraft {
		return changed, expired, nil
	}
	active, err := s.repo.CountActiveForCustomer(ctx, a.Customer, "")
	if err != nil {
		return false, false, err
	}
	if err := s.sync.SetPriceListEnabled(ctx, a.Customer, active > 0); err != nil {
		return false, false, err
	}
	return changed, expired, nil
}

// publishEvents hands the aggregate's pending events to the publisher.
// Delivery is asynchronous, so failures are logged rather than returned.
func (s *Service) publishEvents(ctx context.Context, a *agreement.Agreement) {
	events := a.GetDomainEvents()
	a.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish agreement events",
			zap.String("agreement", a.Name), zap.Error(err))
	}
}
