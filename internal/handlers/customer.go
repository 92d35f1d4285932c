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
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type customerRequest struct {
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

// GetAllCustomers lists customers filtered by status (default "active"),
// optionally narrowed by a case-insensitive search over name, email and
// phone. Two counts are taken on purpose: the idle list view reports the
// status-filtered total, a search reports the search-filtered total.
func GetAllCustomers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, apiErr := parseListQuery(c)
		if apiErr != nil {
			respondError(c, "customers", apiErr)
			return
		}
		if q.Status == "" {
			q.Status = models.CustomerStatusActive
		}

		filter := bson.M{"status": q.Status}
		if or := searchFilter(q.Search, "fullName", "email", "phoneNumber"); or != nil {
			filter["$or"] = or
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		filteredTotal, err := db.Collection("customers").CountDocuments(ctx, filter)
		if err != nil {
			respondError(c, "customers", err)
			return
		}
		bareTotal, err := db.Collection("customers").CountDocuments(ctx, bson.M{"status": q.Status})
		if err != nil {
			respondError(c, "customers", err)
			return
		}

		opts := options.Find().
			SetSkip((q.Page - 1) * q.Limit).
			SetLimit(q.Limit).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("customers").Find(ctx, filter, opts)
		if err != nil {
			respondError(c, "customers", err)
			return
		}
		defer cursor.Close(ctx)

		customers := make([]models.Customer, 0)
		if err := cursor.All(ctx, &customers); err != nil {
			respondError(c, "customers", err)
			return
		}

		c.JSON(http.StatusOK, pageEnvelope(q, customers, filteredTotal, bareTotal))
	}
}

func GetCustomersLength(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("customers").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondError(c, "customers", err)
			return
		}
		if total == 0 {
			respondError(c, "customers", badRequest("No customers found."))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"data":       total,
		})
	}
}

// GetAllCustomersByEmail returns an id+email projection of every customer,
// used by pickers that only need to resolve addresses.
func GetAllCustomersByEmail(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetProjection(bson.M{"_id": 1, "email": 1})
		cursor, err := db.Collection("customers").Find(ctx, bson.M{}, opts)
		if err != nil {
			respondError(c, "customers", err)
			return
		}
		defer cursor.Close(ctx)

		type customerEmail struct {
			ID    primitive.ObjectID `bson:"_id" json:"id"`
			Email string             `bson:"email" json:"email"`
		}
		customers := make([]customerEmail, 0)
		if err := cursor.All(ctx, &customers); err != nil {
			respondError(c, "customers", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"data":       customers,
		})
	}
}

func GetCustomerByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := strings.TrimSpace(c.Query("customerID"))
		if customerID == "" {
			respondError(c, "customers", badRequest("Please provide customer ID."))
			return
		}

		id, err := primitive.ObjectIDFromHex(customerID)
		if err != nil {
			respondError(c, "customers", badRequest("Invalid Customer ID."))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var customer models.Customer
		if err := db.Collection("customers").FindOne(ctx, bson.M{"_id": id}).Decode(&customer); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, "customers", notFound("Customer not found."))
				return
			}
			respondError(c, "customers", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"data":       customer,
			"message":    "Customer found.",
		})
	}
}

func CreateCustomer(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customerRequest
		_ = c.ShouldBindJSON(&req)

		if apiErr := firstMissing(
			requiredField{"email", req.Email},
			requiredField{"full name", req.FullName},
			requiredField{"phone number", req.PhoneNumber},
		); apiErr != nil {
			respondError(c, "customers", apiErr)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		fullName := strings.TrimSpace(req.FullName)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("customers").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			respondError(c, "customers", err)
			return
		}
		if count > 0 {
			respondError(c, "customers", conflict(fmt.Sprintf("Customer with email, %s already exists.", email)))
			return
		}

		now := time.Now()
		customer := models.Customer{
			Email:       email,
			FullName:    fullName,
			PhoneNumber: strings.TrimSpace(req.PhoneNumber),
			Address:     strings.TrimSpace(req.Address),
			Status:      models.CustomerStatusActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		res, err := db.Collection("customers").InsertOne(ctx, customer)
		if err != nil {
			respondError(c, "customers", err)
			return
		}
		customer.ID, _ = res.InsertedID.(primitive.ObjectID)

		log.Println("[CUSTOMER] [INFO] customer created:", email)
		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"message":    fmt.Sprintf("Customer, %s created", fullName),
			"data":       customer,
		})
	}
}

// UpdateCustomer is guarded by RequireActor (owner or admin). Only supplied
// fields are written; the customer is addressed by email.
func UpdateCustomer(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customerRequest
		_ = c.ShouldBindJSON(&req)

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" {
			respondError(c, "customers", badRequest("No email detected."))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("customers").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			respondError(c, "customers", err)
			return
		}
		if count == 0 {
			respondError(c, "customers", notFound("Customer not found."))
			return
		}

		set := bson.M{"updatedAt": time.Now()}
		if fullName := strings.TrimSpace(req.FullName); fullName != "" {
			set["fullName"] = fullName
		}
		if phone := strings.TrimSpace(req.PhoneNumber); phone != "" {
			set["phoneNumber"] = phone
		}
		if address := strings.TrimSpace(req.Address); address != "" {
			set["address"] = address
		}

		if _, err := db.Collection("customers").UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": set}); err != nil {
			respondError(c, "customers", err)
			return
		}

		var updated models.Customer
		if err := db.Collection("customers").FindOne(ctx, bson.M{"email": email}).Decode(&updated); err != nil {
			respondError(c, "customers", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"message":    "Customer updated successfully.",
			"data":       updated,
		})
	}
}

// DeleteCustomer is guarded by RequireActor (owner only).
func DeleteCustomer(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.ToLower(strings.TrimSpace(c.Query("email")))
		if email == "" {
			respondError(c, "customers", badRequest("No email detected."))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("customers").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			respondError(c, "customers", err)
			return
		}
		if count == 0 {
			respondError(c, "customers", notFound("Customer not found."))
			return
		}

		if _, err := db.Collection("customers").DeleteOne(ctx, bson.M{"email": email}); err != nil {
			respondError(c, "customers", err)
			return
		}

		log.Println("[CUSTOMER] [INFO] customer deleted:", email)
		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"message":    "Customer deleted successfully",
		})
	}
}
