package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"backend/internal/mailer"
)

// validateResetOTP checks a submitted code against the stored code and its
// expiry. A nulled or mismatched code is invalid; a matching code with a
// missing or elapsed expiry has expired.
func validateResetOTP(stored string, expiration *time.Time, submitted string, now time.Time) *apiError {
	if stored == "" || stored != strings.TrimSpace(submitted) {
		return badRequest("OTP is Invalid.")
	}
	if expiration == nil || now.After(*expiration) {
		return badRequest("OTP has Expired.")
	}
	return nil
}

// issueResetOTP stores a fresh one-time code with its expiry on the actor
// and mails it. Expired-but-unused codes stay stored until overwritten here
// or nulled by a successful reset; there is no background sweep.
func issueResetOTP(c *gin.Context, db *mongo.Database, spec actorSpec, mail *mailer.Mailer, otpTTL time.Duration, successMessage string, mailFailureFatal bool) {
	var req actorEmailRequest
	_ = c.ShouldBindJSON(&req)

	if apiErr := firstMissing(requiredField{"email", req.Email}); apiErr != nil {
		respondError(c, spec.Collection, apiErr)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	count, err := db.Collection(spec.Collection).CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		respondError(c, spec.Collection, err)
		return
	}
	if count == 0 {
		respondError(c, spec.Collection, notFound(spec.Label+" not found."))
		return
	}

	otp := GenerateOTP()
	expiration := time.Now().Add(otpTTL)

	_, err = db.Collection(spec.Collection).UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{
			"emailOtp":           otp,
			"emailOtpExpiration": expiration,
			"updatedAt":          time.Now(),
		},
	})
	if err != nil {
		respondError(c, spec.Collection, err)
		return
	}

	if err := mail.Send(email, "Password Reset OTP", mailer.OTPEmail{Code: otp}); err != nil {
		log.Printf("[%s] [ERROR] otp mail failed: %v", strings.ToUpper(spec.Role), err)
		if mailFailureFatal {
			respondError(c, spec.Collection, conflict("Error sending mail"))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"statusCode": 200,
		"message":    successMessage,
	})
}

func resetActorPassword(c *gin.Context, db *mongo.Database, spec actorSpec, mail *mailer.Mailer) {
	var req actorResetRequest
	_ = c.ShouldBindJSON(&req)

	if apiErr := firstMissing(
		requiredField{"otp", req.OTP},
		requiredField{"password", req.Password},
	); apiErr != nil {
		respondError(c, spec.Collection, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var account actorAccount
	if err := db.Collection(spec.Collection).FindOne(ctx, bson.M{"emailOtp": strings.TrimSpace(req.OTP)}).Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			respondError(c, spec.Collection, badRequest("OTP is Invalid."))
			return
		}
		respondError(c, spec.Collection, err)
		return
	}

	if apiErr := validateResetOTP(account.EmailOTP, account.EmailOTPExpiration, req.OTP, time.Now()); apiErr != nil {
		respondError(c, spec.Collection, apiErr)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, spec.Collection, err)
		return
	}

	_, err = db.Collection(spec.Collection).UpdateByID(ctx, account.ID, bson.M{
		"$set": bson.M{
			"password":  string(hash),
			"updatedAt": time.Now(),
		},
		"$unset": bson.M{
			"emailOtp":           "",
			"emailOtpExpiration": "",
		},
	})
	if err != nil {
		respondError(c, spec.Collection, err)
		return
	}

	var updated actorAccount
	if err := db.Collection(spec.Collection).FindOne(ctx, bson.M{"_id": account.ID}).Decode(&updated); err != nil {
		respondError(c, spec.Collection, err)
		return
	}

	if err := mail.Send(updated.Email, "Password Reset", mailer.PasswordResetEmail{Name: updated.FullName}); err != nil {
		log.Printf("[%s] [ERROR] password reset mail failed: %v", strings.ToUpper(spec.Role), err)
		respondError(c, spec.Collection, conflict("Error sending mail"))
		return
	}

	log.Printf("[%s] [INFO] password reset: %s", strings.ToUpper(spec.Role), updated.Email)
	c.JSON(http.StatusOK, gin.H{
		"statusCode": 200,
		"message":    "Password Reset Successfully",
		"data":       updated,
	})
}
