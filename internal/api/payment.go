package api

import (
	"net/http" // HTTP status codes

	"pc_house/internal/middleware" // Request id
	"pc_house/internal/payment"    // Payment gateway

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// PaymentIntentRequest carries the price to charge in major currency units
type PaymentIntentRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

// PaymentIntentResponse carries the secret the client completes the payment with
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreatePaymentIntentHandler asks the gateway for a payment intent
func CreatePaymentIntentHandler(gw payment.Gateway, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaymentIntentRequest
		if !bindJSON(c, &req) {
			return
		}
		amount, err := payment.ToMinorUnits(req.Price) // Gateway amounts are in cents
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		secret, err := gw.CreateIntent(c.Request.Context(), amount, currency)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"request_id": c.GetString(middleware.RequestIDKey),
				"amount":     amount,
				"currency":   currency,
				"error":      err.Error(),
			}).Error("Payment intent failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway error"})
			return
		}
		c.JSON(http.StatusOK, PaymentIntentResponse{ClientSecret: secret})
	}
}
