package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotificationTypeOrder   = "order"
	NotificationTypeMessage = "message"
)

// Notification is created as a side effect of pickup and message creation.
// OrderID/MessageID are soft references; deleting the referenced document
// does not touch the notification.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Type      string             `bson:"type" json:"type"`
	OrderID   string             `bson:"orderID,omitempty" json:"orderID,omitempty"`
	MessageID string             `bson:"messageID,omitempty" json:"messageID,omitempty"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
