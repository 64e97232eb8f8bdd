// internal/services/product_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fastpurchase/backend/internal/models"
	"github.com/fastpurchase/backend/internal/utils"
)

func createTestProductWithCategory(t *testing.T, db *gorm.DB, owner uuid.UUID, name string, price float64, stock int, category string) *models.Product {
	t.Helper()

	product := createTestProduct(t, db, owner, name, price, stock)
	if err := db.Model(product).Update("category", category).Error; err != nil {
		t.Fatalf("failed to set category: %v", err)
	}
	return product
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func boolPtr(v bool) *bool        { return &v }

func defaultSearchParams() ProductSearchParams {
	return ProductSearchParams{
		PaginationParams: utils.PaginationParams{
			Page:      1,
			PageSize:  10,
			SortBy:    "createdAt",
			SortOrder: "asc",
		},
	}
}

func TestCreateProductSuccess(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	svc := NewProductService(db, nil)

	product, err := svc.CreateProduct(context.Background(), admin.ID, &CreateProductRequest{
		Name:        "Mechanical Keyboard",
		Description: "A keyboard with mechanical switches",
		Price:       floatPtr(129.99),
		Stock:       intPtr(15),
		Category:    "electronics",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, "Mechanical Keyboard", product.Name)
	assert.Equal(t, 129.99, product.Price)
	assert.Equal(t, 15, product.Stock)
	assert.Equal(t, admin.ID, product.UserID)
}

func TestCreateProductValidation(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	svc := NewProductService(db, nil)

	cases := []struct {
		name string
		req  *CreateProductRequest
	}{
		{"missing fields", &CreateProductRequest{}},
		{"short name", &CreateProductRequest{
			Name:        "ab",
			Description: "long enough description",
			Price:       floatPtr(10),
			Stock:       intPtr(1),
			Category:    "misc",
		}},
		{"short description", &CreateProductRequest{
			Name:        "Valid name",
			Description: "too short",
			Price:       floatPtr(10),
			Stock:       intPtr(1),
			Category:    "misc",
		}},
		{"zero price", &CreateProductRequest{
			Name:        "Valid name",
			Description: "long enough description",
			Price:       floatPtr(0),
			Stock:       intPtr(1),
			Category:    "misc",
		}},
		{"negative stock", &CreateProductRequest{
			Name:        "Valid name",
			Description: "long enough description",
			Price:       floatPtr(10),
			Stock:       intPtr(-1),
			Category:    "misc",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), admin.ID, tc.req)
			requireServiceError(t, err, ErrorKindValidation)
		})
	}
}

func TestGetProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db, nil)

	missing := uuid.New()
	_, err := svc.GetProduct(context.Background(), missing)
	svcErr := requireServiceError(t, err, ErrorKindNotFound)
	assert.Contains(t, svcErr.Details, "Product with ID "+missing.String()+" does not exist")
}

func TestUpdateProductPartial(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	product := createTestProduct(t, db, admin.ID, "Monitor", 300, 4)
	svc := NewProductService(db, nil)

	updated, err := svc.UpdateProduct(context.Background(), product.ID, &UpdateProductRequest{
		Price: floatPtr(249.50),
	})
	require.NoError(t, err)
	assert.Equal(t, 249.50, updated.Price)
	assert.Equal(t, "Monitor", updated.Name)
	assert.Equal(t, 4, updated.Stock)
}

func TestUpdateProductStockToZero(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	product := createTestProduct(t, db, admin.ID, "Monitor", 300, 4)
	svc := NewProductService(db, nil)

	updated, err := svc.UpdateProduct(context.Background(), product.ID, &UpdateProductRequest{
		Stock: intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
}

func TestUpdateProductEmptyBody(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	product := createTestProduct(t, db, admin.ID, "Monitor", 300, 4)
	svc := NewProductService(db, nil)

	_, err := svc.UpdateProduct(context.Background(), product.ID, &UpdateProductRequest{})
	svcErr := requireServiceError(t, err, ErrorKindValidation)
	assert.Contains(t, svcErr.Details, "At least one field must be provided for update")
}

func TestUpdateProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db, nil)

	_, err := svc.UpdateProduct(context.Background(), uuid.New(), &UpdateProductRequest{
		Name: strPtr("New name"),
	})
	requireServiceError(t, err, ErrorKindNotFound)
}

func TestDeleteProduct(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	product := createTestProduct(t, db, admin.ID, "Monitor", 300, 4)
	svc := NewProductService(db, nil)

	require.NoError(t, svc.DeleteProduct(context.Background(), product.ID))

	_, err := svc.GetProduct(context.Background(), product.ID)
	requireServiceError(t, err, ErrorKindNotFound)
}

func TestDeleteProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db, nil)

	err := svc.DeleteProduct(context.Background(), uuid.New())
	requireServiceError(t, err, ErrorKindNotFound)
}

func seedCatalog(t *testing.T, db *gorm.DB, owner uuid.UUID) {
	t.Helper()

	createTestProductWithCategory(t, db, owner, "Gaming Laptop", 1500, 3, "electronics")
	createTestProductWithCategory(t, db, owner, "Office Laptop", 800, 0, "electronics")
	createTestProductWithCategory(t, db, owner, "Desk Chair", 200, 10, "furniture")
	createTestProductWithCategory(t, db, owner, "Standing Desk", 450, 5, "furniture")
	createTestProductWithCategory(t, db, owner, "USB Cable", 9.99, 100, "electronics")
}

func TestSearchProductsByName(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	seedCatalog(t, db, admin.ID)
	svc := NewProductService(db, nil)

	params := defaultSearchParams()
	params.Search = "LAPTOP"

	products, total, err := svc.SearchProducts(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.Contains(t, p.Name, "Laptop")
	}
}

func TestSearchProductsByCategory(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	seedCatalog(t, db, admin.ID)
	svc := NewProductService(db, nil)

	params := defaultSearchParams()
	params.Category = "furniture"

	_, total, err := svc.SearchProducts(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestSearchProductsPriceRange(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	seedCatalog(t, db, admin.ID)
	svc := NewProductService(db, nil)

	params := defaultSearchParams()
	params.MinPrice = floatPtr(100)
	params.MaxPrice = floatPtr(500)

	products, total, err := svc.SearchProducts(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, p := range products {
		assert.GreaterOrEqual(t, p.Price, 100.0)
		assert.LessOrEqual(t, p.Price, 500.0)
	}
}

func TestSearchProductsPriceRangeInverted(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db, nil)

	params := defaultSearchParams()
	params.MinPrice = floatPtr(500)
	params.MaxPrice = floatPtr(100)

	_, _, err := svc.SearchProducts(context.Background(), params)
	svcErr := requireServiceError(t, err, ErrorKindValidation)
	assert.Contains(t, svcErr.Details, "minPrice must not be greater than maxPrice")
}

func TestSearchProductsInStock(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	seedCatalog(t, db, admin.ID)
	svc := NewProductService(db, nil)

	params := defaultSearchParams()
	params.InStock = boolPtr(true)

	_, total, err := svc.SearchProducts(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	params.InStock = boolPtr(false)
	products, total, err := svc.SearchProducts(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "Office Laptop", products[0].Name)
}

func TestSearchProductsSortByPrice(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	seedCatalog(t, db, admin.ID)
	svc := NewProductService(db, nil)

	params := defaultSearchParams()
	params.SortBy = "price"
	params.SortOrder = "desc"

	products, _, err := svc.SearchProducts(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, products, 5)
	for i := 1; i < len(products); i++ {
		assert.GreaterOrEqual(t, products[i-1].Price, products[i].Price)
	}
	assert.Equal(t, "Gaming Laptop", products[0].Name)
}

func TestSearchProductsInvalidSortField(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db, nil)

	params := defaultSearchParams()
	params.SortBy = "password_hash"

	_, _, err := svc.SearchProducts(context.Background(), params)
	svcErr := requireServiceError(t, err, ErrorKindValidation)
	assert.Contains(t, svcErr.Details, "sortBy must be one of: name, price, stock, createdAt, category")
}

func TestSearchProductsPagination(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	seedCatalog(t, db, admin.ID)
	svc := NewProductService(db, nil)

	params := defaultSearchParams()
	params.SortBy = "name"
	params.PageSize = 2
	params.Page = 3

	products, total, err := svc.SearchProducts(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	// Page 3 of 5 rows at 2 per page holds the last row.
	require.Len(t, products, 1)
	assert.Equal(t, "USB Cable", products[0].Name)
}
