package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Payment Model, recorded when an order is confirmed as paid
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OrderID       primitive.ObjectID `bson:"orderId" json:"orderId"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Amount        float64            `bson:"amount" json:"amount"`
}
