package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a public contact-form submission; immutable after creation
// except for deletion by the owner.
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName    string             `bson:"fullName" json:"fullName"`
	Email       string             `bson:"email" json:"email"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	Subject     string             `bson:"subject" json:"subject"`
	MessageBody string             `bson:"messageBody" json:"messageBody"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
