// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fastpurchase/backend/internal/cache"
	"github.com/fastpurchase/backend/internal/services"
	"github.com/fastpurchase/backend/internal/utils"
)

// productCachePrefix is the key prefix invalidated on every catalog write.
const productCachePrefix = "/products"

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
	cache          *cache.Cache
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService, store *cache.Cache) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
		cache:          store,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	pagination, paramErrs := utils.GetPaginationParams(c)

	params := services.ProductSearchParams{
		PaginationParams: pagination,
		Search:           c.Query("search"),
		Category:         c.Query("category"),
	}

	if raw := c.Query("minPrice"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			paramErrs = append(paramErrs, "minPrice must be a non-negative number")
		} else {
			params.MinPrice = &value
		}
	}

	if raw := c.Query("maxPrice"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			paramErrs = append(paramErrs, "maxPrice must be a non-negative number")
		} else {
			params.MaxPrice = &value
		}
	}

	if raw := c.Query("inStock"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			paramErrs = append(paramErrs, "inStock must be either 'true' or 'false'")
		} else {
			params.InStock = &value
		}
	}

	if len(paramErrs) > 0 {
		utils.BadRequestResponse(c, "Validation failed", paramErrs)
		return
	}

	products, total, err := h.productService.SearchProducts(c.Request.Context(), params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, "Products retrieved successfully", products,
		pagination.Page, pagination.PageSize, total)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "Product not found",
			[]string{"Product with ID " + c.Param("id") + " does not exist"})
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Product retrieved successfully", product)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "", []string{"No user information found"})
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "All fields are required",
			[]string{"Name, description, price, stock, and category are required"})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.cache.InvalidatePrefix(productCachePrefix)

	utils.CreatedResponse(c, "Product created successfully", product)
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "Product not found",
			[]string{"Product with ID " + c.Param("id") + " does not exist"})
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request",
			[]string{"Request body must be a JSON object with product fields"})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.cache.InvalidatePrefix(productCachePrefix)

	utils.SuccessResponse(c, "Product updated successfully", product)
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "Product not found",
			[]string{"Product with ID " + c.Param("id") + " does not exist"})
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	h.cache.InvalidatePrefix(productCachePrefix)

	utils.SuccessResponse(c, "Product deleted successfully", nil)
}

// POST /products/images
func (h *ProductHandler) UploadProductImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request",
			[]string{"Request must be multipart form data with an 'images' field"})
		return
	}

	urls, err := h.storageService.UploadProductImages(form.File["images"])
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Images uploaded successfully", gin.H{
		"urls": urls,
	})
}
