package api

import (
	"errors"   // Sentinel comparison
	"net/http" // HTTP status codes

	"pc_house/internal/domain"     // Importing domain models
	"pc_house/internal/middleware" // Identity and gate
	"pc_house/internal/store"      // Document store

	"github.com/gin-gonic/gin"         // Gin web framework
	"go.mongodb.org/mongo-driver/bson" // Filters
)

// CreateOrderRequest represents an order placed from the storefront
type CreateOrderRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	PartID   string  `json:"partId" binding:"required"`
	PartName string  `json:"partName" binding:"max=200"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
	Price    float64 `json:"price" binding:"gte=0"`
	Name     string  `json:"name" binding:"max=200"`
	Address  string  `json:"address" binding:"max=500"`
	Phone    string  `json:"phone" binding:"max=50"`
}

// ConfirmPaymentRequest is the body of PATCH /order/:id
type ConfirmPaymentRequest struct {
	TransactionID string  `json:"transactionId" binding:"required"` // Gateway transaction identifier
	Amount        float64 `json:"amount" binding:"required,gt=0"`   // Amount charged
}

// CreateOrderHandler inserts an order; no authentication is required
func CreateOrderHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if !bindJSON(c, &req) {
			return
		}
		// New orders always start unpaid
		order := domain.Order{
			Email:    req.Email,
			PartID:   req.PartID,
			PartName: req.PartName,
			Quantity: req.Quantity,
			Price:    req.Price,
			Name:     req.Name,
			Address:  req.Address,
			Phone:    req.Phone,
		}
		res, err := st.InsertOne(c.Request.Context(), store.Orders, order)
		if err != nil {
			respondStoreError(c, err, "Order")
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

// ListOrdersHandler returns the orders of ?email=, which must be the caller's own email
func ListOrdersHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		claimed, _ := middleware.GetEmail(c)
		// Only the owner may list orders
		if email == "" || email != claimed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		var orders []domain.Order
		if err := st.Find(c.Request.Context(), store.Orders, bson.M{"email": email}, &orders); err != nil {
			respondStoreError(c, err, "Order")
			return
		}
		c.JSON(http.StatusOK, orEmpty(orders))
	}
}

// GetOrderHandler returns a single order to its owner or to an admin
func GetOrderHandler(st store.Store, gate *middleware.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "Order")
		if !ok {
			return
		}
		var order domain.Order
		if err := st.FindOne(c.Request.Context(), store.Orders, store.ByID(id), &order); err != nil {
			respondStoreError(c, err, "Order")
			return
		}
		if !authorizeOrder(c, gate, &order) {
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// DeleteOrderHandler removes an order owned by the caller, or any order for an admin
func DeleteOrderHandler(st store.Store, gate *middleware.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "Order")
		if !ok {
			return
		}
		ctx := c.Request.Context()
		var order domain.Order
		err := st.FindOne(ctx, store.Orders, store.ByID(id), &order)
		// Deleting something absent is acknowledged with a zero count
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusOK, store.DeleteResult{Acknowledged: true})
			return
		}
		if err != nil {
			respondStoreError(c, err, "Order")
			return
		}
		if !authorizeOrder(c, gate, &order) {
			return
		}
		res, err := st.DeleteOne(ctx, store.Orders, store.ByID(id))
		if err != nil {
			respondStoreError(c, err, "Order")
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// ConfirmPaymentHandler records a payment for the caller's order and marks it paid
func ConfirmPaymentHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "Order")
		if !ok {
			return
		}
		var req ConfirmPaymentRequest
		if !bindJSON(c, &req) {
			return
		}
		ctx := c.Request.Context()
		var order domain.Order
		if err := st.FindOne(ctx, store.Orders, store.ByID(id), &order); err != nil {
			respondStoreError(c, err, "Order")
			return
		}
		email, _ := middleware.GetEmail(c)
		if !order.OwnedBy(email) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		if order.Paid {
			c.JSON(http.StatusConflict, gin.H{"error": "Order already paid"})
			return
		}
		res, err := confirmOrderPayment(ctx, st, &order, req, c.GetString(middleware.RequestIDKey))
		if errors.Is(err, errOrderGone) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if errors.Is(err, errOrderPaid) {
			c.JSON(http.StatusConflict, gin.H{"error": "Order already paid"})
			return
		}
		if err != nil {
			respondStoreError(c, err, "Order")
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// authorizeOrder lets the owner through and falls back to the role check.
// It writes the rejection itself and reports whether to continue.
func authorizeOrder(c *gin.Context, gate *middleware.Gate, order *domain.Order) bool {
	email, _ := middleware.GetEmail(c)
	if order.OwnedBy(email) {
		return true
	}
	allowed, err := gate.Allows(c.Request.Context(), email, domain.PermViewAnyOrder)
	if err != nil {
		respondStoreError(c, err, "User")
		return false
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return false
	}
	return true
}
