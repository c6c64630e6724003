package proforma

// Error codes raised by proforma rules
const (
	ErrCodeInvalidSource = "PROFORMA_INVALID_SOURCE"
	ErrCodeNotDraft      = "PROFORMA_NOT_DRAFT"
	ErrCodeNoChildOrders = "NO_CHILD_ORDERS"
)
