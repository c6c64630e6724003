package trade

import (
	"context"
	"strings"
	"time"

	pricingapp "github.com/culinary/backend/internal/application/pricing"
	"github.com/culinary/backend/internal/domain/agreement"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AgreementPricer prices order lines from the customer's submitted agreements
type AgreementPricer struct {
	agreements       agreement.Repository
	rates            *pricingapp.RateService
	clock            shared.Clock
	fallbackCurrency string
	logger           *zap.Logger
}

// NewAgreementPricer creates an AgreementPricer
func NewAgreementPricer(
	agreements agreement.Repository,
	rates *pricingapp.RateService,
	clock shared.Clock,
	settings Settings,
	logger *zap.Logger,
) *AgreementPricer {
	return &AgreementPricer{
		agreements:       agreements,
		rates:            rates,
		clock:            clock,
		fallbackCurrency: settings.FallbackCurrency,
		logger:           logger,
	}
}

// Apply checks every line of order against the customer's agreements and
// replaces its rate with the agreement rate in the order currency.
// Orders without a customer are left alone.
func (p *AgreementPricer) Apply(ctx context.Context, order *trade.SalesOrder) error {
	if order.Customer == "" {
		return nil
	}
	date := order.PostingDate(shared.Today(p.clock))
	if order.Currency == "" {
		order.Currency = p.fallbackCurrency
	}

	for i := range order.Items {
		code := order.Items[i].ItemCode
		matches, err := p.agreements.FindItemMatches(ctx, order.Customer, code)
		if err != nil {
			return err
		}
		m, err := agreement.SelectMatch(code, matches, date)
		if err != nil {
			return err
		}
		rate, err := p.convert(ctx, m, order.Currency, date)
		if err != nil {
			return err
		}
		order.ApplyAgreementPrice(i, rate, m.Supplier)
	}
	order.CalculateTotals()
	return nil
}

// ItemPrice returns the agreement rate of one item for customer on date.
// An item no agreement covers on that date yields an empty result.
func (p *AgreementPricer) ItemPrice(ctx context.Context, q ItemPriceQuery) (*ItemPriceResult, error) {
	date := shared.Today(p.clock)
	if q.PostingDate != "" {
		d, err := parseDay(q.PostingDate)
		if err != nil {
			return nil, err
		}
		date = *d
	}
	currency := strings.ToUpper(q.Currency)
	if currency == "" {
		currency = p.fallbackCurrency
	}

	matches, err := p.agreements.FindItemMatches(ctx, q.Customer, q.ItemCode)
	if err != nil {
		return nil, err
	}
	m, err := agreement.SelectMatch(q.ItemCode, matches, date)
	if err != nil {
		p.logger.Debug("No agreement price",
			zap.String("customer", q.Customer),
			zap.String("item_code", q.ItemCode),
			zap.Error(err),
		)
		return &ItemPriceResult{}, nil
	}
	rate, err := p.convert(ctx, m, currency, date)
	if err != nil {
		return nil, err
	}
	return &ItemPriceResult{PriceListRate: &rate, Currency: currency, Supplier: m.Supplier}, nil
}

func (p *AgreementPricer) convert(ctx context.Context, m agreement.ItemMatch, currency string, date time.Time) (decimal.Decimal, error) {
	if m.Currency == "" || strings.EqualFold(m.Currency, currency) {
		return m.PriceListRate, nil
	}
	factor, err := p.rates.ConversionRate(ctx, m.Currency, currency, date)
	if err != nil {
		return decimal.Zero, err
	}
	return m.PriceListRate.Mul(factor), nil
}
