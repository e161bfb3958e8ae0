package services

import (
	"context"

	"stockroom/internal/catalog"
	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

type CatalogService struct {
	Fields *catalog.Registry
	Prods  *repos.ProductRepo
}

func NewCatalogService(fields *catalog.Registry, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Fields: fields, Prods: prods}
}

func (s *CatalogService) ListCategories() []domain.Category {
	return s.Fields.Categories()
}

func (s *CatalogService) FieldsFor(c domain.Category) []domain.FieldDescriptor {
	return s.Fields.FieldsFor(c)
}

func (s *CatalogService) ListProducts(ctx context.Context, c domain.Category, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Prods.ListByCategory(ctx, c, pageSize, offset)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	return s.Prods.Get(ctx, id)
}
