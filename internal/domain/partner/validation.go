package partner

import (
	"regexp"
	"strings"

	"github.com/culinary/backend/internal/domain/shared"
)

var currencyPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

func validateName(kind, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", strings.ToUpper(kind[:1])+kind[1:]+" name cannot be empty")
	}
	if len(name) > 140 {
		return shared.NewDomainError("INVALID_NAME", strings.ToUpper(kind[:1])+kind[1:]+" name cannot exceed 140 characters")
	}
	return nil
}

// validateCurrency accepts an empty currency (unset) or an ISO-4217 style code
func validateCurrency(currency string) error {
	if currency == "" || currencyPattern.MatchString(currency) {
		return nil
	}
	return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter code")
}
