package services

import (
	"cafeteria/internal/models"
	"cafeteria/internal/repository"
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, name string, price decimal.Decimal, category, image string) (*models.Product, error)
	SearchProducts(ctx context.Context, query, category string) ([]models.Product, error)
	SeedCatalog(ctx context.Context, catalog []models.Product) (int, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, name string, price decimal.Decimal, category, image string) (*models.Product, error) {
	if !models.IsValidCategory(category) {
		return nil, fmt.Errorf("invalid category %q", category)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("price must be positive, got %s", price)
	}

	product := &models.Product{
		Name:     name,
		Price:    price,
		Category: category,
		Image:    image,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// SearchProducts treats an empty query or category as "no filter".
func (s *productService) SearchProducts(ctx context.Context, query, category string) ([]models.Product, error) {
	products, err := s.productRepo.Search(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// SeedCatalog inserts catalog only when no products exist yet and returns
// how many rows were inserted.
func (s *productService) SeedCatalog(ctx context.Context, catalog []models.Product) (int, error) {
	count, err := s.productRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 || len(catalog) == 0 {
		return 0, nil
	}

	rows := make([]models.Product, len(catalog))
	copy(rows, catalog)
	if err := s.productRepo.CreateBatch(ctx, rows); err != nil {
		return 0, fmt.Errorf("failed to seed products: %w", err)
	}
	return len(rows), nil
}
