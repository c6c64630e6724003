package partner

import (
	"context"
	"strings"

	"github.com/culinary/backend/internal/domain/partner"
	"github.com/culinary/backend/internal/domain/shared"
)

// BrandService handles brands and their default companies
type BrandService struct {
	brands    partner.BrandRepository
	companies partner.CompanyRepository
}

// NewBrandService creates a new BrandService
func NewBrandService(brands partner.BrandRepository, companies partner.CompanyRepository) *BrandService {
	return &BrandService{brands: brands, companies: companies}
}

// Create creates a brand. Every referenced company must exist.
func (s *BrandService) Create(ctx context.Context, req CreateBrandRequest) (*BrandResponse, error) {
	_, err := s.brands.FindByName(ctx, req.Name)
	if err := checkFree(err, "Brand"); err != nil {
		return nil, err
	}
	brand, err := partner.NewBrand(req.Name)
	if err != nil {
		return nil, err
	}

	refs := append([]string{req.DefaultCompany}, req.Defaults...)
	for _, company := range refs {
		company = strings.TrimSpace(company)
		if company == "" {
			continue
		}
		exists, err := s.companies.ExistsByName(ctx, company)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError("INVALID_COMPANY", "Company "+company+" does not exist")
		}
	}
	brand.DefaultCompany = strings.TrimSpace(req.DefaultCompany)
	for _, company := range req.Defaults {
		if company = strings.TrimSpace(company); company != "" {
			brand.Defaults = append(brand.Defaults, company)
		}
	}

	if err := s.brands.Save(ctx, brand); err != nil {
		return nil, err
	}
	response := ToBrandResponse(brand)
	return &response, nil
}

// GetByName retrieves a brand by name
func (s *BrandService) GetByName(ctx context.Context, name string) (*BrandResponse, error) {
	brand, err := s.brands.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	response := ToBrandResponse(brand)
	return &response, nil
}

// List retrieves brands with search and pagination
func (s *BrandService) List(ctx context.Context, q ListQuery) ([]BrandResponse, int64, error) {
	brands, total, err := s.brands.FindAll(ctx, q.ToFilter())
	if err != nil {
		return nil, 0, err
	}
	out := make([]BrandResponse, len(brands))
	for i := range brands {
		out[i] = ToBrandResponse(&brands[i])
	}
	return out, total, nil
}
