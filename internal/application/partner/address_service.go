package partner

import (
	"context"

	"github.com/culinary/backend/internal/domain/partner"
)

// AddressService handles addresses
type AddressService struct {
	addresses partner.AddressRepository
}

// NewAddressService creates a new AddressService
func NewAddressService(addresses partner.AddressRepository) *AddressService {
	return &AddressService{addresses: addresses}
}

// Create creates an address
func (s *AddressService) Create(ctx context.Context, req CreateAddressRequest) (*AddressResponse, error) {
	_, err := s.addresses.FindByName(ctx, req.Name)
	if err := checkFree(err, "Address"); err != nil {
		return nil, err
	}
	address, err := partner.NewAddress(req.Name, req.AddressLine1, req.City, req.Pincode, req.Country)
	if err != nil {
		return nil, err
	}
	if err := s.addresses.Save(ctx, address); err != nil {
		return nil, err
	}
	response := ToAddressResponse(address)
	return &response, nil
}

// GetByName retrieves an address by name
func (s *AddressService) GetByName(ctx context.Context, name string) (*AddressResponse, error) {
	address, err := s.addresses.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	response := ToAddressResponse(address)
	return &response, nil
}

// List retrieves addresses with search and pagination
func (s *AddressService) List(ctx context.Context, q ListQuery) ([]AddressResponse, int64, error) {
	addresses, total, err := s.addresses.FindAll(ctx, q.ToFilter())
	if err != nil {
		return nil, 0, err
	}
	out := make([]AddressResponse, len(addresses))
	for i := range addresses {
		out[i] = ToAddressResponse(&addresses[i])
	}
	return out, total, nil
}
