package services

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/validate"
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) ListProducts() ([]domain.Product, error) {
	return s.Prods.List()
}

func (s *CatalogService) GetProduct(id int64) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) CreateProduct(in validate.ProductInput) (domain.Product, error) {
	if err := in.Validate(false); err != nil {
		return domain.Product{}, err
	}
	var p domain.Product
	applyProductInput(&p, in)
	if err := s.Prods.Create(&p); err != nil {
		return domain.Product{}, err
	}
	// Re-read so the caller sees the server-set timestamps.
	return s.Prods.Get(p.ID)
}

// UpdateProduct applies only the fields present in the request, leaving every
// unspecified field at its stored value.
func (s *CatalogService) UpdateProduct(id int64, in validate.ProductInput) (domain.Product, error) {
	if err := in.Validate(true); err != nil {
		return domain.Product{}, err
	}
	p, err := s.Prods.Get(id)
	if err != nil {
		return domain.Product{}, err
	}
	applyProductInput(&p, in)
	if err := s.Prods.Update(p); err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Get(id)
}

// UpdateProductImage replaces only the image reference.
func (s *CatalogService) UpdateProductImage(id int64, in validate.ProductImageInput) (domain.Product, error) {
	if err := in.Validate(); err != nil {
		return domain.Product{}, err
	}
	p, err := s.Prods.Get(id)
	if err != nil {
		return domain.Product{}, err
	}
	p.Image = sql.NullString{String: *in.Image, Valid: true}
	if err := s.Prods.Update(p); err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Get(id)
}

func (s *CatalogService) DeleteProduct(id int64) error {
	return s.Prods.Delete(id)
}

func applyProductInput(p *domain.Product, in validate.ProductInput) {
	if in.Name != nil {
		p.Name = sql.NullString{String: *in.Name, Valid: true}
	}
	if in.Image != nil {
		p.Image = sql.NullString{String: *in.Image, Valid: true}
	}
	if in.Brand != nil {
		p.Brand = sql.NullString{String: *in.Brand, Valid: true}
	}
	if in.Category != nil {
		p.Category = sql.NullString{String: *in.Category, Valid: true}
	}
	if in.Description != nil {
		p.Description = sql.NullString{String: *in.Description, Valid: true}
	}
	if in.Rating != nil {
		p.Rating = decimal.NullDecimal{Decimal: in.Rating.Round(1), Valid: true}
	}
	if in.NumReviews != nil {
		p.NumReviews = *in.NumReviews
	}
	if in.Price != nil {
		p.Price = decimal.NullDecimal{Decimal: in.Price.Round(2), Valid: true}
	}
	if in.CountInStock != nil {
		p.CountInStock = *in.CountInStock
	}
}
