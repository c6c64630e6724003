package partner

import (
	"context"
	"errors"

	"github.com/culinary/backend/internal/domain/partner"
	"github.com/culinary/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CompanyService handles company master data
type CompanyService struct {
	companies partner.CompanyRepository
	addresses partner.AddressRepository
	logger    *zap.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companies partner.CompanyRepository, addresses partner.AddressRepository, logger *zap.Logger) *CompanyService {
	return &CompanyService{companies: companies, addresses: addresses, logger: logger}
}

// Create creates a company. The default address must exist, it drives kitchen routing.
func (s *CompanyService) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	exists, err := s.companies.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Company with this name already exists")
	}

	company, err := partner.NewCompany(req.Name, req.Abbr, req.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	company.IsGroup = req.IsGroup
	if req.DefaultAddress != "" {
		if _, err := s.addresses.FindByName(ctx, req.DefaultAddress); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_ADDRESS", "Address "+req.DefaultAddress+" does not exist")
			}
			return nil, err
		}
		company.SetDefaultAddress(req.DefaultAddress)
	}

	if err := s.companies.Save(ctx, company); err != nil {
		return nil, err
	}
	s.logger.Info("Company created", zap.String("company", company.Name))
	response := ToCompanyResponse(company)
	return &response, nil
}

// GetByName retrieves a company by name
func (s *CompanyService) GetByName(ctx context.Context, name string) (*CompanyResponse, error) {
	company, err := s.companies.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	response := ToCompanyResponse(company)
	return &response, nil
}

// List retrieves companies with search and pagination
func (s *CompanyService) List(ctx context.Context, q ListQuery) ([]CompanyResponse, int64, error) {
	companies, total, err := s.companies.FindAll(ctx, q.ToFilter())
	if err != nil {
		return nil, 0, err
	}
	out := make([]CompanyResponse, len(companies))
	for i := range companies {
		out[i] = ToCompanyResponse(&companies[i])
	}
	return out, total, nil
}
