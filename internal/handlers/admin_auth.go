package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/mailer"
	"backend/internal/models"
)

var adminSpec = actorSpec{
	Collection: "admins",
	Role:       models.RoleAdmin,
	Label:      "Admin",
	Welcome:    "Welcome, Admin %s",
}

func GetAllAdmins(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		listActors(c, db, adminSpec)
	}
}

// CreateAdmin is owner-only; the route is guarded by RequireActor with the
// owner role.
func CreateAdmin(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		createActor(c, db, adminSpec, jwtSecret, tokenTTL)
	}
}

func LoginAdmin(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		loginActor(c, db, adminSpec, jwtSecret, tokenTTL)
	}
}

func DeleteAdmin(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleteActor(c, db, adminSpec)
	}
}

func RequestAdminPasswordReset(db *mongo.Database, mail *mailer.Mailer, otpTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		issueResetOTP(c, db, adminSpec, mail, otpTTL, "Initialized Password Reset", true)
	}
}

func ResendAdminOTP(db *mongo.Database, mail *mailer.Mailer, otpTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		issueResetOTP(c, db, adminSpec, mail, otpTTL, "OTP Sent", false)
	}
}

func ResetAdminPassword(db *mongo.Database, mail *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		resetActorPassword(c, db, adminSpec, mail)
	}
}
