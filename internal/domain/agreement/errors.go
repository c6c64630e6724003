package agreement

// Error codes raised by agreement rules
const (
	ErrCodeCustomerRequired = "AGREEMENT_CUSTOMER_REQUIRED"
	ErrCodeSupplierRequired = "AGREEMENT_SUPPLIER_REQUIRED"
	ErrCodeDatesRequired    = "AGREEMENT_DATES_REQUIRED"
	ErrCodeInvalidDates     = "AGREEMENT_INVALID_DATES"
	ErrCodeNoItems          = "AGREEMENT_NO_ITEMS"
	ErrCodeDuplicateItem    = "AGREEMENT_DUPLICATE_ITEM"
	ErrCodeItemCodeRequired = "AGREEMENT_ITEM_CODE_REQUIRED"
	ErrCodeInvalidRate      = "AGREEMENT_INVALID_RATE"
	ErrCodeInvalidDiscount  = "AGREEMENT_INVALID_DISCOUNT"
	ErrCodeNotDraft         = "AGREEMENT_NOT_DRAFT"
	ErrCodeNotSubmitted     = "AGREEMENT_NOT_SUBMITTED"
	ErrCodeOverlap          = "AGREEMENT_OVERLAP"
	ErrCodeFrozenDates      = "AGREEMENT_DATES_FROZEN"
	ErrCodeFrozenParties    = "AGREEMENT_PARTIES_FROZEN"
	ErrCodeUnknownItem      = "AGREEMENT_UNKNOWN_ITEM"
)

// Error codes raised when pricing sales order lines from agreements
const (
	ErrCodeItemNotInAgreement = "ITEM_NOT_IN_AGREEMENT"
	ErrCodeNotYetValid        = "AGREEMENT_NOT_YET_VALID"
	ErrCodeExpired            = "AGREEMENT_EXPIRED"
)
