package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PickupStatusPending   = "pending"
	PickupStatusCompleted = "completed"
)

// Pickup defines a persisted pickup order. The order number is generated
// once at creation and never changes afterwards.
type Pickup struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	FullName    string             `bson:"fullName" json:"fullName"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	Date        string             `bson:"date" json:"date"`
	Comment     string             `bson:"comment" json:"comment"`
	OrderNumber string             `bson:"orderNumber" json:"orderNumber"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
