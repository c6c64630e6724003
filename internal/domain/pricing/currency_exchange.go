package pricing

import (
	"strings"
	"time"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CurrencyExchange is the rate to convert one unit of From into To, effective from Date
type CurrencyExchange struct {
	shared.BaseEntity
	FromCurrency string
	ToCurrency   string
	Date         time.Time
	Rate         decimal.Decimal
}

// NewCurrencyExchange creates an exchange rate record
func NewCurrencyExchange(from, to string, date time.Time, rate decimal.Decimal) (*CurrencyExchange, error) {
	from, to = strings.ToUpper(strings.TrimSpace(from)), strings.ToUpper(strings.TrimSpace(to))
	if from == "" || to == "" {
		return nil, shared.NewDomainError("INVALID_EXCHANGE_RATE", "Both currencies are required")
	}
	if from == to {
		return nil, shared.NewDomainError("INVALID_EXCHANGE_RATE", "Currencies must differ")
	}
	if !rate.IsPositive() {
		return nil, shared.NewDomainError("INVALID_EXCHANGE_RATE", "Exchange rate must be positive")
	}
	return &CurrencyExchange{
		BaseEntity:   shared.NewBaseEntity(),
		FromCurrency: from,
		ToCurrency:   to,
		Date:         shared.DateOf(date),
		Rate:         rate,
	}, nil
}
