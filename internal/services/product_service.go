// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fastpurchase/backend/internal/events"
	"github.com/fastpurchase/backend/internal/models"
	"github.com/fastpurchase/backend/internal/utils"
)

type ProductService struct {
	db       *gorm.DB
	producer *events.Producer
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"required,min=10"`
	Price       *float64 `json:"price" validate:"required,gt=0"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required"`
	Images      []string `json:"images,omitempty"`
}

// UpdateProductRequest carries a partial field set: nil means "leave alone",
// so zero values remain expressible (stock 0, empty image list).
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=10"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Category    *string  `json:"category,omitempty"`
	Images      []string `json:"images,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	InStock  *bool
}

// API sort fields mapped onto column names.
var productSortFields = map[string]string{
	"name":      "name",
	"price":     "price",
	"stock":     "stock",
	"createdAt": "created_at",
	"category":  "category",
}

func NewProductService(db *gorm.DB, producer *events.Producer) *ProductService {
	return &ProductService{
		db:       db,
		producer: producer,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, userID uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("Validation failed", utils.GetValidationErrors(err)...)
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
		Category:    req.Category,
		Images:      pq.StringArray(req.Images),
		UserID:      userID,
	}

	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, NewInternalError(err, "An error occurred while creating the product")
	}

	s.publishProductEvent(ctx, "product.created", product)

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Product not found",
				"Product with ID "+id.String()+" does not exist")
		}
		return nil, NewInternalError(err, "An error occurred while retrieving the product")
	}
	return &product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("Validation failed", utils.GetValidationErrors(err)...)
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	// Present fields translate into one parameterized update, absent fields
	// are never touched.
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}

	if len(updates) == 0 {
		return nil, NewValidationError("Validation failed", "At least one field must be provided for update")
	}

	if err := s.db.WithContext(ctx).Model(product).Updates(updates).Error; err != nil {
		return nil, NewInternalError(err, "An error occurred while updating the product")
	}

	if err := s.db.WithContext(ctx).First(product, "id = ?", id).Error; err != nil {
		return nil, NewInternalError(err, "An error occurred while updating the product")
	}

	s.publishProductEvent(ctx, "product.updated", product)

	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(product).Error; err != nil {
		return NewInternalError(err, "An error occurred while deleting the product")
	}

	s.publishProductEvent(ctx, "product.deleted", product)

	return nil
}

func (s *ProductService) SearchProducts(ctx context.Context, params ProductSearchParams) ([]models.Product, int64, error) {
	if params.MinPrice != nil && params.MaxPrice != nil && *params.MinPrice > *params.MaxPrice {
		return nil, 0, NewValidationError("Validation failed", "minPrice must not be greater than maxPrice")
	}

	query := s.db.WithContext(ctx).Model(&models.Product{})

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}

	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}

	if params.InStock != nil {
		if *params.InStock {
			query = query.Where("stock > 0")
		} else {
			query = query.Where("stock = 0")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, NewInternalError(err, "An error occurred while retrieving products")
	}

	query, ok := utils.ApplySort(query, params.PaginationParams, productSortFields)
	if !ok {
		return nil, 0, NewValidationError("Validation failed",
			"sortBy must be one of: name, price, stock, createdAt, category")
	}

	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, NewInternalError(err, "An error occurred while retrieving products")
	}

	return products, total, nil
}

func (s *ProductService) publishProductEvent(ctx context.Context, eventType string, product *models.Product) {
	if s.producer == nil {
		return
	}

	event := map[string]interface{}{
		"type":      eventType,
		"productId": product.ID,
		"name":      product.Name,
		"price":     product.Price,
		"stock":     product.Stock,
	}
	if err := s.producer.Publish(ctx, product.ID.String(), event); err != nil {
		logrus.WithError(err).Warn("Failed to publish product event")
	}
}
