package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Order Model
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`                               // Primary key
	Email         string             `bson:"email" json:"email"`                                     // Owner, compared against the token claim
	PartID        string             `bson:"partId" json:"partId"`                                   // Referenced part
	PartName      string             `bson:"partName,omitempty" json:"partName,omitempty"`           // Snapshot of the part name
	Quantity      int                `bson:"quantity" json:"quantity"`                               // Ordered units
	Price         float64            `bson:"price" json:"price"`                                     // Total price
	Name          string             `bson:"name,omitempty" json:"name,omitempty"`                   // Customer name
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`             // Shipping address
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`                 // Contact phone
	Paid          bool               `bson:"paid" json:"paid"`                                       // Set by payment confirmation
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"` // Gateway transaction
}

// OwnedBy reports whether email owns the order
func (o *Order) OwnedBy(email string) bool {
	return email != "" && o.Email == email
}
