package agreement

import "github.com/culinary/backend/internal/domain/shared"

// AggregateTypeAgreement is the aggregate type of agreement events
const AggregateTypeAgreement = "Agreement"

// Event types
const (
	EventTypeAgreementSubmitted     = "AgreementSubmitted"
	EventTypeAgreementCancelled     = "AgreementCancelled"
	EventTypeAgreementStatusChanged = "AgreementStatusChanged"
)

// AgreementSubmittedEvent is published when an agreement is submitted
type AgreementSubmittedEvent struct {
	shared.BaseDomainEvent
	Name     string `json:"name"`
	Customer string `json:"customer"`
	Supplier string `json:"supplier"`
	Status   Status `json:"status"`
}

// NewAgreementSubmittedEvent creates an AgreementSubmittedEvent
func NewAgreementSubmittedEvent(a *Agreement) *AgreementSubmittedEvent {
	return &AgreementSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAgreementSubmitted, AggregateTypeAgreement, a.ID),
		Name:            a.Name,
		Customer:        a.Customer,
		Supplier:        a.Supplier,
		Status:          a.Status,
	}
}

// AgreementCancelledEvent is published when an agreement is cancelled, by hand or on expiry
type AgreementCancelledEvent struct {
	shared.BaseDomainEvent
	Name     string `json:"name"`
	Customer string `json:"customer"`
	Supplier string `json:"supplier"`
}

// NewAgreementCancelledEvent creates an AgreementCancelledEvent
func NewAgreementCancelledEvent(a *Agreement) *AgreementCancelledEvent {
	return &AgreementCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAgreementCancelled, AggregateTypeAgreement, a.ID),
		Name:            a.Name,
		Customer:        a.Customer,
		Supplier:        a.Supplier,
	}
}

// AgreementStatusChangedEvent is published by the daily status refresh
type AgreementStatusChangedEvent struct {
	shared.BaseDomainEvent
	Name      string `json:"name"`
	OldStatus Status `json:"old_status"`
	NewStatus Status `json:"new_status"`
}

// NewAgreementStatusChangedEvent creates an AgreementStatusChangedEvent
func NewAgreementStatusChangedEvent(a *Agreement, old Status) *AgreementStatusChangedEvent {
	return &AgreementStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAgreementStatusChanged, AggregateTypeAgreement, a.ID),
		Name:            a.Name,
		OldStatus:       old,
		NewStatus:       a.Status,
	}
}
