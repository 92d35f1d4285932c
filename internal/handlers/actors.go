package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// actorSpec parameterizes the credential flows shared by the two privileged
// roles; owners and admins differ only in collection, role claim and wording.
type actorSpec struct {
	Collection string
	Role       string
	Label      string
	Welcome    string
}

// actorAccount is the persisted shape of an Owner or Admin document as the
// credential flows see it.
type actorAccount struct {
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

type createActorRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

type actorLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type actorEmailRequest struct {
	Email string `json:"email"`
}

type actorResetRequest struct {
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

func listActors(c *gin.Context, db *mongo.Database, spec actorSpec) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.Collection(spec.Collection).Find(ctx, bson.M{})
	if err != nil {
		respondError(c, spec.Collection, err)
		return
	}
	defer cursor.Close(ctx)

	accounts := make([]actorAccount, 0)
	if err := cursor.All(ctx, &accounts); err != nil {
		respondError(c, spec.Collection, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statusCode": 200,
		"data":       accounts,
	})
}

func createActor(c *gin.Context, db *mongo.Database, spec actorSpec, secret string, tokenTTL time.Duration) {
	var req createActorRequest
	_ = c.ShouldBindJSON(&req)

	if apiErr := firstMissing(
		requiredField{"email", req.Email},
		requiredField{"full name", req.FullName},
		requiredField{"password", req.Password},
	); apiErr != nil {
		respondError(c, spec.Collection, apiErr)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	count, err := db.Collection(spec.Collection).CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		respondError(c, spec.Collection, err)
		return
	}
	if count > 0 {
		respondError(c, spec.Collection, conflict(fmt.Sprintf("%s with email, %s already exists.", spec.Label, email)))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, spec.Collection, err)
		return
	}

	now := time.Now()
	account := actorAccount{
		Email:     email,
		FullName:  fullName,
		Password:  string(hash),
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := db.Collection(spec.Collection).InsertOne(ctx, account)
	if err != nil {
		respondError(c, spec.Collection, err)
		return
	}
	id, _ := res.InsertedID.(primitive.ObjectID)

	token, err := issueActorToken(c.Request.Context(), db, spec.Collection, id, email, spec.Role, secret, tokenTTL)
	if err != nil {
		respondError(c, spec.Collection, err)
		return
	}

	var created actorAccount
	if err := db.Collection(spec.Collection).FindOne(ctx, bson.M{"_id": id}).Decode(&created); err != nil {
		respondError(c, spec.Collection, err)
		return
	}

	log.Printf("[%s] [INFO] %s registered: %s", strings.ToUpper(spec.Role), strings.ToLower(spec.Label), email)
	c.JSON(http.StatusOK, gin.H{
		"statusCode": 200,
		"message":    fmt.Sprintf(spec.Welcome, fullName),
		"data":       created,
		"token":      token,
	})
}

func loginActor(c *gin.Context, db *mongo.Database, spec actorSpec, secret string, tokenTTL time.Duration) {
	var req actorLoginRequest
	_ = c.ShouldBindJSON(&req)

	if apiErr := firstMissing(
		requiredField{"email", req.Email},
		requiredField{"password", req.Password},
	); apiErr != nil {
		respondError(c, spec.Collection, apiErr)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var account actorAccount
	if err := db.Collection(spec.Collection).FindOne(ctx, bson.M{"email": email}).Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			respondError(c, spec.Collection, badRequest(spec.Label+" Doesn't Exist."))
			return
		}
		respondError(c, spec.Collection, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		respondError(c, spec.Collection, badRequest("Incorrect Password."))
		return
	}

	token, err := issueActorToken(c.Request.Context(), db, spec.Collection, account.ID, account.Email, spec.Role, secret, tokenTTL)
	if err != nil {
		respondError(c, spec.Collection, err)
		return
	}
	account.Token = token

	log.Printf("[%s] [INFO] login succeeded: %s", strings.ToUpper(spec.Role), email)
	c.JSON(http.StatusOK, gin.H{
		"statusCode": 200,
		"message":    "Login Successful",
		"token":      token,
		"data":       account,
	})
}

func deleteActor(c *gin.Context, db *mongo.Database, spec actorSpec) {
	var req actorEmailRequest
	_ = c.ShouldBindJSON(&req)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		email = strings.ToLower(strings.TrimSpace(c.Query("email")))
	}
	if email == "" {
		respondError(c, spec.Collection, badRequest("No email detected."))
		return
	}

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

	if _, err := db.Collection(spec.Collection).DeleteOne(ctx, bson.M{"email": email}); err != nil {
		respondError(c, spec.Collection, err)
		return
	}

	log.Printf("[%s] [INFO] %s deleted: %s", strings.ToUpper(spec.Role), strings.ToLower(spec.Label), email)
	c.JSON(http.StatusOK, gin.H{
		"statusCode": 200,
		"message":    spec.Label + " deleted successfully",
	})
}
