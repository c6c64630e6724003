package proforma

import "context"

// Repository defines persistence for proforma invoices
type Repository interface {
	FindByName(ctx context.Context, name string) (*ProformaInvoice, error)
	// FindBySource returns all proformas of a parent order, ordered by name
	FindBySource(ctx context.Context, parent string) ([]ProformaInvoice, error)
	// FindBySourceAndCompany returns shared.ErrNotFound when none exists
	FindBySourceAndCompany(ctx context.Context, parent, company string) (*ProformaInvoice, error)
	Save(ctx context.Context, p *ProformaInvoice) error
}
