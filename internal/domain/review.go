package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Review Model
type Review struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Author  string             `bson:"author" json:"author"`
	Email   string             `bson:"email" json:"email"`
	Content string             `bson:"content" json:"content"`
	Rating  int                `bson:"rating,omitempty" json:"rating,omitempty"`
}
