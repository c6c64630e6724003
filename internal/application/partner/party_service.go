package partner

import (
	"context"
	"errors"

	"github.com/culinary/backend/internal/domain/partner"
	"github.com/culinary/backend/internal/domain/shared"
)

// PartyService handles customers and suppliers
type PartyService struct {
	customers partner.CustomerRepository
	suppliers partner.SupplierRepository
}

// NewPartyService creates a new PartyService
func NewPartyService(customers partner.CustomerRepository, suppliers partner.SupplierRepository) *PartyService {
	return &PartyService{customers: customers, suppliers: suppliers}
}

// CreateCustomer creates a customer
func (s *PartyService) CreateCustomer(ctx context.Context, req CreatePartyRequest) (*PartyResponse, error) {
	_, err := s.customers.FindByName(ctx, req.Name)
	if err := checkFree(err, "Customer"); err != nil {
		return nil, err
	}
	customer, err := partner.NewCustomer(req.Name, req.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	return &PartyResponse{Name: customer.Name, DefaultCurrency: customer.DefaultCurrency}, nil
}

// GetCustomer retrieves a customer by name
func (s *PartyService) GetCustomer(ctx context.Context, name string) (*PartyResponse, error) {
	customer, err := s.customers.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return &PartyResponse{Name: customer.Name, DefaultCurrency: customer.DefaultCurrency}, nil
}

// ListCustomers retrieves customers with search and pagination
func (s *PartyService) ListCustomers(ctx context.Context, q ListQuery) ([]PartyResponse, int64, error) {
	customers, total, err := s.customers.FindAll(ctx, q.ToFilter())
	if err != nil {
		return nil, 0, err
	}
	out := make([]PartyResponse, len(customers))
	for i, c := range customers {
		out[i] = PartyResponse{Name: c.Name, DefaultCurrency: c.DefaultCurrency}
	}
	return out, total, nil
}

// CreateSupplier creates a supplier
func (s *PartyService) CreateSupplier(ctx context.Context, req CreatePartyRequest) (*PartyResponse, error) {
	_, err := s.suppliers.FindByName(ctx, req.Name)
	if err := checkFree(err, "Supplier"); err != nil {
		return nil, err
	}
	supplier, err := partner.NewSupplier(req.Name, req.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return &PartyResponse{Name: supplier.Name, DefaultCurrency: supplier.DefaultCurrency}, nil
}

// GetSupplier retrieves a supplier by name
func (s *PartyService) GetSupplier(ctx context.Context, name string) (*PartyResponse, error) {
	supplier, err := s.suppliers.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return &PartyResponse{Name: supplier.Name, DefaultCurrency: supplier.DefaultCurrency}, nil
}

// ListSuppliers retrieves suppliers with search and pagination
func (s *PartyService) ListSuppliers(ctx context.Context, q ListQuery) ([]PartyResponse, int64, error) {
	suppliers, total, err := s.suppliers.FindAll(ctx, q.ToFilter())
	if err != nil {
		return nil, 0, err
	}
	out := make([]PartyResponse, len(suppliers))
	for i, c := range suppliers {
		out[i] = PartyResponse{Name: c.Name, DefaultCurrency: c.DefaultCurrency}
	}
	return out, total, nil
}

// checkFree turns the result of a name lookup into ALREADY_EXISTS when the name is taken
func checkFree(lookupErr error, kind string) error {
	switch {
	case lookupErr == nil:
		return shared.NewDomainError("ALREADY_EXISTS", kind+" with this name already exists")
	case errors.Is(lookupErr, shared.ErrNotFound):
		return nil
	default:
		return lookupErr
	}
}
