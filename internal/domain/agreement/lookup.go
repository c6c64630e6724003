package agreement

import (
	"fmt"
	"time"

	"github.com/culinary/backend/internal/domain/shared"
)

// SelectMatch picks the agreement row that prices itemCode on date.
// matches must be ordered by valid_from descending. A row covering date wins;
// otherwise the caller learns whether the only agreements start later or ended earlier.
func SelectMatch(itemCode string, matches []ItemMatch, date time.Time) (ItemMatch, error) {
	date = shared.DateOf(date)
	var future, past *ItemMatch
	for i := range matches {
		m := &matches[i]
		switch {
		case m.ValidFrom != nil && date.Before(*m.ValidFrom):
			if future == nil || m.ValidFrom.Before(*future.ValidFrom) {
				future = m
			}
		case m.ValidTo != nil && date.After(*m.ValidTo):
			if past == nil || m.ValidTo.After(*past.ValidTo) {
				past = m
			}
		default:
			return *m, nil
		}
	}
	switch {
	case future != nil && past == nil:
		return ItemMatch{}, shared.NewDomainError(ErrCodeNotYetValid,
			fmt.Sprintf("Item %s Agreement is not valid yet. Valid from: %s", itemCode, future.ValidFrom.Format(time.DateOnly)))
	case past != nil:
		return ItemMatch{}, shared.NewDomainError(ErrCodeExpired,
			fmt.Sprintf("Item %s Agreement has expired. Valid until: %s", itemCode, past.ValidTo.Format(time.DateOnly)))
	}
	return ItemMatch{}, shared.NewDomainError(ErrCodeItemNotInAgreement,
		fmt.Sprintf("Item %s is not allowed for this Customer per Agreements or no valid price.", itemCode))
}
