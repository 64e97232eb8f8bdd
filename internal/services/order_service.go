// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fastpurchase/backend/internal/events"
	"github.com/fastpurchase/backend/internal/models"
)

// OrderService owns order placement and order history. Placement is the one
// code path that mutates product stock, and it only ever does so inside a
// single database transaction.
type OrderService struct {
	db       *gorm.DB
	producer *events.Producer
}

type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type OrderItemResult struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	ItemTotal   float64   `json:"itemTotal"`
}

type OrderResult struct {
	OrderID     uuid.UUID          `json:"orderId"`
	UserID      uuid.UUID          `json:"userId"`
	Description string             `json:"description"`
	TotalPrice  float64            `json:"totalPrice"`
	Status      models.OrderStatus `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	Items       []OrderItemResult  `json:"items"`
}

type OrderHistoryItem struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName *string   `json:"productName"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	ItemTotal   float64   `json:"itemTotal"`
}

type OrderHistoryEntry struct {
	OrderID     uuid.UUID          `json:"orderId"`
	Description string             `json:"description"`
	TotalPrice  float64            `json:"totalPrice"`
	Status      models.OrderStatus `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	Items       []OrderHistoryItem `json:"items"`
}

func NewOrderService(db *gorm.DB, producer *events.Producer) *OrderService {
	return &OrderService{
		db:       db,
		producer: producer,
	}
}

// PlaceOrder validates the requested items, then atomically checks and
// decrements stock, computes the total, and persists the order with its line
// items. Items are processed in the caller-supplied order; a repeated product
// id is decremented once per occurrence against the shared counter. Any
// failure rolls back every change from this request.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, items []OrderItemRequest) (*OrderResult, error) {
	if err := validateOrderItems(items); err != nil {
		return nil, err
	}

	var (
		order      models.Order
		lineItems  []OrderItemResult
		totalPrice float64
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lineItems = lineItems[:0]
		totalPrice = 0

		for _, item := range items {
			productID, err := uuid.Parse(item.ProductID)
			if err != nil {
				return NewNotFoundError("Product not found",
					fmt.Sprintf("Product with ID %s does not exist", item.ProductID))
			}

			var product models.Product
			if err := tx.First(&product, "id = ?", productID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return NewNotFoundError("Product not found",
						fmt.Sprintf("Product with ID %s does not exist", item.ProductID))
				}
				return NewInternalError(err, "An error occurred while placing the order")
			}

			if product.Stock < item.Quantity {
				return insufficientStockError(&product, item.Quantity)
			}

			// Conditional decrement: the stock >= n predicate re-checks the
			// counter at update time, so two transactions racing on the same
			// row cannot both take the last units.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return NewInternalError(res.Error, "An error occurred while placing the order")
			}
			if res.RowsAffected == 0 {
				// Lost the race since the read above; report the fresh count.
				tx.First(&product, "id = ?", productID)
				return insufficientStockError(&product, item.Quantity)
			}

			itemTotal := product.Price * float64(item.Quantity)
			totalPrice += itemTotal

			lineItems = append(lineItems, OrderItemResult{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				Price:       product.Price,
				ItemTotal:   itemTotal,
			})
		}

		order = models.Order{
			UserID:      userID,
			Description: fmt.Sprintf("Order with %d item(s)", len(items)),
			TotalPrice:  totalPrice,
			Status:      models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return NewInternalError(err, "An error occurred while placing the order")
		}

		for _, line := range lineItems {
			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return NewInternalError(err, "An error occurred while placing the order")
			}
		}

		return nil
	})
	if err != nil {
		var svcErr *ServiceError
		if errors.As(err, &svcErr) {
			return nil, svcErr
		}
		return nil, NewInternalError(err, "An error occurred while placing the order")
	}

	s.publishOrderPlaced(ctx, &order, lineItems)

	return &OrderResult{
		OrderID:     order.ID,
		UserID:      order.UserID,
		Description: order.Description,
		TotalPrice:  order.TotalPrice,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
		Items:       lineItems,
	}, nil
}

// GetOrderHistory returns every order owned by the account, newest first,
// with line items joined in. Product names resolve through a left join, so a
// deleted product yields a null name while the price snapshot survives.
func (s *OrderService) GetOrderHistory(ctx context.Context, userID uuid.UUID) ([]OrderHistoryEntry, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, NewInternalError(err, "An error occurred while retrieving order history")
	}

	if len(orders) == 0 {
		return []OrderHistoryEntry{}, nil
	}

	orderIDs := make([]uuid.UUID, len(orders))
	for i, order := range orders {
		orderIDs[i] = order.ID
	}

	type itemRow struct {
		OrderID     uuid.UUID
		ProductID   uuid.UUID
		ProductName *string
		Quantity    int
		Price       float64
	}

	var rows []itemRow
	if err := s.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.order_id, order_items.product_id, order_items.quantity, order_items.price, products.name AS product_name").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id IN ?", orderIDs).
		Scan(&rows).Error; err != nil {
		return nil, NewInternalError(err, "An error occurred while retrieving order history")
	}

	itemsByOrder := make(map[uuid.UUID][]OrderHistoryItem, len(orders))
	for _, row := range rows {
		itemsByOrder[row.OrderID] = append(itemsByOrder[row.OrderID], OrderHistoryItem{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			Price:       row.Price,
			ItemTotal:   row.Price * float64(row.Quantity),
		})
	}

	entries := make([]OrderHistoryEntry, len(orders))
	for i, order := range orders {
		items := itemsByOrder[order.ID]
		if items == nil {
			items = []OrderHistoryItem{}
		}
		entries[i] = OrderHistoryEntry{
			OrderID:     order.ID,
			Description: order.Description,
			TotalPrice:  order.TotalPrice,
			Status:      order.Status,
			CreatedAt:   order.CreatedAt,
			UpdatedAt:   order.UpdatedAt,
			Items:       items,
		}
	}

	return entries, nil
}

func validateOrderItems(items []OrderItemRequest) error {
	if len(items) == 0 {
		return NewValidationError("Invalid request",
			"Request body must be an array of products with productId and quantity")
	}

	for _, item := range items {
		if item.ProductID == "" || item.Quantity == 0 {
			return NewValidationError("Invalid product data",
				"Each product must have productId and quantity")
		}
		if item.Quantity < 0 {
			return NewValidationError("Invalid quantity",
				"Quantity must be a positive integer")
		}
	}

	return nil
}

func insufficientStockError(product *models.Product, requested int) *ServiceError {
	return NewConflictError("Insufficient stock",
		fmt.Sprintf("Insufficient stock for product %q. Available: %d, Requested: %d",
			product.Name, product.Stock, requested))
}

func (s *OrderService) publishOrderPlaced(ctx context.Context, order *models.Order, items []OrderItemResult) {
	if s.producer == nil {
		return
	}

	event := map[string]interface{}{
		"type":       "order.placed",
		"orderId":    order.ID,
		"userId":     order.UserID,
		"totalPrice": order.TotalPrice,
		"items":      items,
	}
	if err := s.producer.Publish(ctx, order.ID.String(), event); err != nil {
		logrus.WithError(err).Warn("Failed to publish order event")
	}
}
