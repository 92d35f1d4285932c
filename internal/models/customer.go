package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CustomerStatusActive  = "active"
	CustomerStatusPending = "pending"
)

// Customer is created either directly by staff or implicitly when a pickup
// is placed for an unknown email; implicit customers start as "pending" and
// become "active" once a pickup of theirs is completed.
type Customer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	FullName    string             `bson:"fullName" json:"fullName"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
