package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Profile Model
type Profile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Location  string             `bson:"location,omitempty" json:"location,omitempty"`
	Education string             `bson:"education,omitempty" json:"education,omitempty"`
	LinkedIn  string             `bson:"linkedIn,omitempty" json:"linkedIn,omitempty"`
}
