package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// Owner is the top-level privileged account. There is normally a single
// owner, but nothing enforces that beyond the unique email index.
type Owner struct {
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
