package service

import (
	"context"
	"errors"
	"fmt"
	"pharmacy-store/internal/dto"
	"pharmacy-store/internal/model"
	"pharmacy-store/internal/repository"

	"gorm.io/gorm"
)

const featuredLimit = 6

type CatalogService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*model.Product, error)
	FeaturedProducts(ctx context.Context) ([]*model.Product, error)
	Categories(ctx context.Context) ([]*model.Category, error)
	ProductsByCategory(ctx context.Context, categoryID uint) ([]*model.Product, error)
	GetProduct(ctx context.Context, productID uint) (*model.Product, error)
	CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (uint, error)
	UpdateProduct(ctx context.Context, productID uint, req *dto.UpdateProductRequest) error
	DeleteProduct(ctx context.Context, productID uint) error
}

type catalogServiceImpl struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) CatalogService {
	return &catalogServiceImpl{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*model.Product, error) {
	return s.productRepo.List(ctx, filter)
}

func (s *catalogServiceImpl) FeaturedProducts(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.ListFeatured(ctx, featuredLimit)
}

func (s *catalogServiceImpl) Categories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *catalogServiceImpl) ProductsByCategory(ctx context.Context, categoryID uint) ([]*model.Product, error) {
	return s.productRepo.ListByCategory(ctx, categoryID)
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductNotFoundError{ProductID: productID}
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	return product, nil
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (uint, error) {
	if req.Name == "" {
		return 0, &ValidationError{Reason: "product name is required"}
	}
	if req.Price.IsNegative() {
		return 0, &ValidationError{Reason: "product price must not be negative"}
	}
	if req.StockQuantity < 0 {
		return 0, &ValidationError{Reason: "stock quantity must not be negative"}
	}

	product := &model.Product{
		Name:                 req.Name,
		Description:          req.Description,
		Price:                req.Price,
		CategoryID:           req.CategoryID,
		StockQuantity:        req.StockQuantity,
		Manufacturer:         req.Manufacturer,
		Dosage:               req.Dosage,
		PrescriptionRequired: req.PrescriptionRequired,
		Featured:             req.Featured,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}

	return product.ID, nil
}

func (s *catalogServiceImpl) UpdateProduct(ctx context.Context, productID uint, req *dto.UpdateProductRequest) error {
	updates := map[string]interface{}{}

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return &ValidationError{Reason: "product price must not be negative"}
		}
		updates["price"] = *req.Price
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return &ValidationError{Reason: "stock quantity must not be negative"}
		}
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.Manufacturer != nil {
		updates["manufacturer"] = *req.Manufacturer
	}
	if req.Dosage != nil {
		updates["dosage"] = *req.Dosage
	}
	if req.PrescriptionRequired != nil {
		updates["prescription_required"] = *req.PrescriptionRequired
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}

	if len(updates) == 0 {
		return &ValidationError{Reason: "no fields to update"}
	}

	if err := s.productRepo.Update(ctx, productID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ProductNotFoundError{ProductID: productID}
		}
		return fmt.Errorf("update product: %w", err)
	}

	return nil
}

func (s *catalogServiceImpl) DeleteProduct(ctx context.Context, productID uint) error {
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	return nil
}
