package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/mailer"
	"backend/internal/models"
)

var ownerSpec = actorSpec{
	Collection: "owners",
	Role:       models.RoleOwner,
	Label:      "Owner",
	Welcome:    "Welcome, Boss %s",
}

func GetAllOwners(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		listActors(c, db, ownerSpec)
	}
}

func CreateOwner(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		createActor(c, db, ownerSpec, jwtSecret, tokenTTL)
	}
}

func LoginOwner(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		loginActor(c, db, ownerSpec, jwtSecret, tokenTTL)
	}
}

func DeleteOwner(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleteActor(c, db, ownerSpec)
	}
}

func RequestOwnerPasswordReset(db *mongo.Database, mail *mailer.Mailer, otpTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		issueResetOTP(c, db, ownerSpec, mail, otpTTL, "Initialized Password Reset", true)
	}
}

func ResendOwnerOTP(db *mongo.Database, mail *mailer.Mailer, otpTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		issueResetOTP(c, db, ownerSpec, mail, otpTTL, "OTP Sent", false)
	}
}

func ResetOwnerPassword(db *mongo.Database, mail *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		resetActorPassword(c, db, ownerSpec, mail)
	}
}
