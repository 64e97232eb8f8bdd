// internal/tests/order_test.go
package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/fastpurchase/backend/internal/models"
)

type OrderTestSuite struct {
	suite.Suite
	server    *testServer
	ip        string
	user      *models.User
	userToken string
	product   *models.Product
}

func (suite *OrderTestSuite) SetupTest() {
	suite.server = newTestServer(suite.T())
	suite.ip = nextIP()
	suite.user, suite.userToken = suite.server.seedUser(suite.T(), "shopper", models.UserRoleUser)
	suite.product = suite.server.seedProduct(suite.T(), suite.user, "Webcam", 59.99, 5)
}

func (suite *OrderTestSuite) placeOrder(body interface{}, token string) *orderResponse {
	w := suite.server.do(suite.T(), http.MethodPost, "/orders", body, token, suite.ip)
	return &orderResponse{code: w.Code, body: decodeResponse(suite.T(), w)}
}

type orderResponse struct {
	code int
	body map[string]interface{}
}

func (suite *OrderTestSuite) TestPlaceOrderRequiresAuth() {
	response := suite.placeOrder([]map[string]interface{}{
		{"productId": suite.product.ID.String(), "quantity": 1},
	}, "")
	assert.Equal(suite.T(), http.StatusUnauthorized, response.code)
}

func (suite *OrderTestSuite) TestPlaceOrderSuccess() {
	response := suite.placeOrder([]map[string]interface{}{
		{"productId": suite.product.ID.String(), "quantity": 2},
	}, suite.userToken)

	assert.Equal(suite.T(), http.StatusCreated, response.code)
	assert.True(suite.T(), response.body["success"].(bool))
	assert.Equal(suite.T(), "Order placed successfully", response.body["message"])

	object := response.body["object"].(map[string]interface{})
	assert.Equal(suite.T(), 119.98, object["totalPrice"])
	assert.Equal(suite.T(), "pending", object["status"])

	items := object["items"].([]interface{})
	assert.Len(suite.T(), items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(suite.T(), "Webcam", item["productName"])
	assert.Equal(suite.T(), float64(2), item["quantity"])

	var stock int
	err := suite.server.db.Model(&models.Product{}).
		Where("id = ?", suite.product.ID).
		Select("stock").Scan(&stock).Error
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, stock)
}

func (suite *OrderTestSuite) TestPlaceOrderObjectBody() {
	// The endpoint expects an array, not a single object.
	response := suite.placeOrder(map[string]interface{}{
		"productId": suite.product.ID.String(),
		"quantity":  1,
	}, suite.userToken)

	assert.Equal(suite.T(), http.StatusBadRequest, response.code)
	assert.Equal(suite.T(), "Invalid request", response.body["message"])
	assert.Contains(suite.T(), responseErrors(response.body),
		"Request body must be an array of products with productId and quantity")
}

func (suite *OrderTestSuite) TestPlaceOrderNonIntegerQuantity() {
	response := suite.placeOrder([]map[string]interface{}{
		{"productId": suite.product.ID.String(), "quantity": 1.5},
	}, suite.userToken)

	assert.Equal(suite.T(), http.StatusBadRequest, response.code)
	assert.Equal(suite.T(), "Invalid request", response.body["message"])
}

func (suite *OrderTestSuite) TestPlaceOrderZeroQuantity() {
	response := suite.placeOrder([]map[string]interface{}{
		{"productId": suite.product.ID.String(), "quantity": 0},
	}, suite.userToken)

	assert.Equal(suite.T(), http.StatusBadRequest, response.code)
	assert.Contains(suite.T(), responseErrors(response.body),
		"Each product must have productId and quantity")
}

func (suite *OrderTestSuite) TestPlaceOrderUnknownProduct() {
	missing := "0b9fba9c-31be-4a04-8ddd-24764dbbb62c"
	response := suite.placeOrder([]map[string]interface{}{
		{"productId": missing, "quantity": 1},
	}, suite.userToken)

	assert.Equal(suite.T(), http.StatusNotFound, response.code)
	assert.Contains(suite.T(), responseErrors(response.body),
		fmt.Sprintf("Product with ID %s does not exist", missing))
}

func (suite *OrderTestSuite) TestPlaceOrderInsufficientStock() {
	response := suite.placeOrder([]map[string]interface{}{
		{"productId": suite.product.ID.String(), "quantity": 6},
	}, suite.userToken)

	assert.Equal(suite.T(), http.StatusBadRequest, response.code)
	assert.Contains(suite.T(), responseErrors(response.body),
		`Insufficient stock for product "Webcam". Available: 5, Requested: 6`)
}

func (suite *OrderTestSuite) TestOrderHistoryEmpty() {
	w := suite.server.do(suite.T(), http.MethodGet, "/orders", nil, suite.userToken, suite.ip)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := decodeResponse(suite.T(), w)
	assert.Equal(suite.T(), "No orders found", response["message"])

	object := response["object"].(map[string]interface{})
	assert.Equal(suite.T(), float64(0), object["totalOrders"])
}

func (suite *OrderTestSuite) TestOrderHistoryAfterPurchase() {
	placed := suite.placeOrder([]map[string]interface{}{
		{"productId": suite.product.ID.String(), "quantity": 1},
	}, suite.userToken)
	assert.Equal(suite.T(), http.StatusCreated, placed.code)

	w := suite.server.do(suite.T(), http.MethodGet, "/orders", nil, suite.userToken, suite.ip)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := decodeResponse(suite.T(), w)
	assert.Equal(suite.T(), "Order history retrieved successfully", response["message"])

	object := response["object"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1), object["totalOrders"])

	orders := object["orders"].([]interface{})
	order := orders[0].(map[string]interface{})
	assert.Equal(suite.T(), 59.99, order["totalPrice"])

	items := order["items"].([]interface{})
	assert.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), "Webcam", items[0].(map[string]interface{})["productName"])
}

func (suite *OrderTestSuite) TestOrderHistoryIsPerUser() {
	placed := suite.placeOrder([]map[string]interface{}{
		{"productId": suite.product.ID.String(), "quantity": 1},
	}, suite.userToken)
	assert.Equal(suite.T(), http.StatusCreated, placed.code)

	_, otherToken := suite.server.seedUser(suite.T(), "otherbuyer", models.UserRoleUser)
	w := suite.server.do(suite.T(), http.MethodGet, "/orders", nil, otherToken, suite.ip)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	object := decodeResponse(suite.T(), w)["object"].(map[string]interface{})
	assert.Equal(suite.T(), float64(0), object["totalOrders"])
}

func (suite *OrderTestSuite) TestPlaceOrderRawInvalidJSON() {
	w := suite.server.do(suite.T(), http.MethodPost, "/orders", json.RawMessage(`"not an array"`), suite.userToken, suite.ip)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func TestOrderSuite(t *testing.T) {
	suite.Run(t, new(OrderTestSuite))
}
