package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Part Model
type Part struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name              string             `bson:"name" json:"name"`
	Price             float64            `bson:"price" json:"price"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	Image             string             `bson:"image,omitempty" json:"image,omitempty"`
	AvailableQuantity int                `bson:"availableQuantity,omitempty" json:"availableQuantity,omitempty"`
	MinimumQuantity   int                `bson:"minimumQuantity,omitempty" json:"minimumQuantity,omitempty"`
	Specs             map[string]any     `bson:"specs,omitempty" json:"specs,omitempty"` // Free-form specification sheet
}
