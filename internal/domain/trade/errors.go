package trade

// Error codes raised by sales order rules
const (
	ErrCodeCompanyRequired     = "SALES_ORDER_COMPANY_REQUIRED"
	ErrCodeCustomerRequired    = "SALES_ORDER_CUSTOMER_REQUIRED"
	ErrCodeDateRequired        = "SALES_ORDER_DATE_REQUIRED"
	ErrCodeInvalidDeliveryDate = "SALES_ORDER_INVALID_DELIVERY_DATE"
	ErrCodeNotDraft            = "SALES_ORDER_NOT_DRAFT"
	ErrCodeAlreadyCancelled    = "SALES_ORDER_ALREADY_CANCELLED"
	ErrCodeItemRequired        = "SALES_ORDER_ITEM_REQUIRED"
	ErrCodeInvalidQty          = "SALES_ORDER_INVALID_QTY"
	ErrCodeInvalidRate         = "SALES_ORDER_INVALID_RATE"
	ErrCodeNoItems             = "SALES_ORDER_NO_ITEMS"
	ErrCodeNotSubmitted        = "SALES_ORDER_NOT_SUBMITTED"
)
