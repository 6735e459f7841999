package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Department holds the structure for the departments collection in mongo.
// The complaint form only accepts departments from this catalog.
type Department struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Faculty   string             `json:"faculty" bson:"faculty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
