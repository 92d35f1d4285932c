package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin mirrors Owner but carries a narrower permission set; admins are
// created and deleted by the owner.
type Admin struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email              string             `bson:"email" json:"email"`
	FullName           string             `bson:"fullName" json:"fullName"`
	Password           string             `bson:"password" json:"-"`
	EmailOTP           string             `bson:"emailOtp,omitempty" json:"-"`
	EmailOTPExpiration *time.Time         `bson:"emailOtpExpiration,omitempty" json:"-"`
	Token              string             `bson:"token,omitempty" json:"token,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
