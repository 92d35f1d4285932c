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

	"backend/internal/mailer"
	"backend/internal/models"
	"backend/internal/notifier"
)

type pickupRequest struct {
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Date        string `json:"date"`
	Comment     string `json:"comment"`
}

type orderNumberRequest struct {
	OrderNumber string `json:"orderNumber"`
}

func GetAllPickups(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, apiErr := parseListQuery(c)
		if apiErr != nil {
			respondError(c, "pickups", apiErr)
			return
		}

		filter := bson.M{}
		if q.Status != "" {
			filter["status"] = q.Status
		}
		if or := searchFilter(q.Search, "fullName", "email", "phoneNumber", "orderNumber"); or != nil {
			filter["$or"] = or
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		filteredTotal, err := db.Collection("pickups").CountDocuments(ctx, filter)
		if err != nil {
			respondError(c, "pickups", err)
			return
		}
		bareFilter := bson.M{}
		if q.Status != "" {
			bareFilter["status"] = q.Status
		}
		bareTotal, err := db.Collection("pickups").CountDocuments(ctx, bareFilter)
		if err != nil {
			respondError(c, "pickups", err)
			return
		}

		opts := options.Find().
			SetSkip((q.Page - 1) * q.Limit).
			SetLimit(q.Limit).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("pickups").Find(ctx, filter, opts)
		if err != nil {
			respondError(c, "pickups", err)
			return
		}
		defer cursor.Close(ctx)

		pickups := make([]models.Pickup, 0)
		if err := cursor.All(ctx, &pickups); err != nil {
			respondError(c, "pickups", err)
			return
		}

		c.JSON(http.StatusOK, pageEnvelope(q, pickups, filteredTotal, bareTotal))
	}
}

// GetPickupsLength reports the total count plus the five most recent
// pickups for the dashboard tile.
func GetPickupsLength(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("pickups").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondError(c, "pickups", err)
			return
		}
		if total == 0 {
			respondError(c, "pickups", badRequest("No pickups found."))
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(5)
		cursor, err := db.Collection("pickups").Find(ctx, bson.M{}, opts)
		if err != nil {
			respondError(c, "pickups", err)
			return
		}
		defer cursor.Close(ctx)

		pickups := make([]models.Pickup, 0)
		if err := cursor.All(ctx, &pickups); err != nil {
			respondError(c, "pickups", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"length":     total,
			"data":       pickups,
		})
	}
}

func GetPickupByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := strings.TrimSpace(c.Query("orderID"))
		if orderID == "" {
			respondError(c, "pickups", badRequest("Please provide order ID."))
			return
		}

		id, err := primitive.ObjectIDFromHex(orderID)
		if err != nil {
			respondError(c, "pickups", badRequest("Invalid Order ID."))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var pickup models.Pickup
		if err := db.Collection("pickups").FindOne(ctx, bson.M{"_id": id}).Decode(&pickup); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, "pickups", notFound("Pickup not found."))
				return
			}
			respondError(c, "pickups", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"data":       pickup,
			"message":    "Pickup found.",
		})
	}
}

// CreatePickup is the public order intake. An unknown email implicitly
// creates a pending customer; the pickup, the customer and the notification
// are three sequential writes with no transaction, a crash between them
// leaves partial state.
func CreatePickup(db *mongo.Database, mail *mailer.Mailer, feed *notifier.Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req pickupRequest
		_ = c.ShouldBindJSON(&req)

		if apiErr := firstMissing(
			requiredField{"email", req.Email},
			requiredField{"full name", req.FullName},
			requiredField{"phone number", req.PhoneNumber},
			requiredField{"address", req.Address},
			requiredField{"date", req.Date},
			requiredField{"comment", req.Comment},
		); apiErr != nil {
			respondError(c, "pickups", apiErr)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		fullName := strings.TrimSpace(req.FullName)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()

		customerCount, err := db.Collection("customers").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			respondError(c, "pickups", err)
			return
		}
		newCustomer := customerCount == 0
		if newCustomer {
			customer := models.Customer{
				Email:       email,
				FullName:    fullName,
				PhoneNumber: strings.TrimSpace(req.PhoneNumber),
				Address:     strings.TrimSpace(req.Address),
				Status:      models.CustomerStatusPending,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if _, err := db.Collection("customers").InsertOne(ctx, customer); err != nil {
				respondError(c, "pickups", err)
				return
			}
			log.Println("[PICKUP] [INFO] pending customer created:", email)
		}

		orderNumber := GenerateOrderNumber()
		pickup := models.Pickup{
			Email:       email,
			FullName:    fullName,
			PhoneNumber: strings.TrimSpace(req.PhoneNumber),
			Address:     strings.TrimSpace(req.Address),
			Date:        strings.TrimSpace(req.Date),
			Comment:     strings.TrimSpace(req.Comment),
			OrderNumber: orderNumber,
			Status:      models.PickupStatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		res, err := db.Collection("pickups").InsertOne(ctx, pickup)
		if err != nil {
			respondError(c, "pickups", err)
			return
		}
		pickup.ID, _ = res.InsertedID.(primitive.ObjectID)

		notification := models.Notification{
			Title:     "You have received a pick-up order",
			Message:   fmt.Sprintf("%s has requested for a pickup, order number is %s", fullName, orderNumber),
			Type:      models.NotificationTypeOrder,
			OrderID:   pickup.ID.Hex(),
			Read:      false,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := db.Collection("notifications").InsertOne(ctx, notification); err != nil {
			respondError(c, "pickups", err)
			return
		}
		feed.Notify()

		// Confirmation mail is best effort; the order stands either way.
		if err := mail.Send(email, "Pickup Order", mailer.PickupEmail{Name: fullName, OrderNumber: orderNumber}); err != nil {
			log.Println("[PICKUP] [ERROR] confirmation mail failed:", err)
		}

		message := fmt.Sprintf("Pickup order - %s created", orderNumber)
		if newCustomer {
			message = fmt.Sprintf("New Customer - %s created. %s", fullName, message)
		}

		log.Println("[PICKUP] [INFO] pickup created:", orderNumber)
		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"message":    message,
			"data":       pickup,
		})
	}
}

// MarkPickupAsComplete is guarded by RequireActor (owner or admin).
// Completing flips the linked customer to active; completing an already
// completed order simply re-sets the status.
func MarkPickupAsComplete(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderNumberRequest
		_ = c.ShouldBindJSON(&req)

		orderNumber := strings.TrimSpace(req.OrderNumber)
		if orderNumber == "" {
			respondError(c, "pickups", badRequest("Please provide order number."))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("pickups").UpdateOne(ctx, bson.M{"orderNumber": orderNumber}, bson.M{
			"$set": bson.M{
				"status":    models.PickupStatusCompleted,
				"updatedAt": time.Now(),
			},
		})
		if err != nil {
			respondError(c, "pickups", err)
			return
		}
		if res.MatchedCount == 0 {
			respondError(c, "pickups", notFound("Pickup not found."))
			return
		}

		var completed models.Pickup
		if err := db.Collection("pickups").FindOne(ctx, bson.M{"orderNumber": orderNumber}).Decode(&completed); err != nil {
			respondError(c, "pickups", err)
			return
		}

		if _, err := db.Collection("customers").UpdateOne(ctx, bson.M{"email": completed.Email}, bson.M{
			"$set": bson.M{
				"status":    models.CustomerStatusActive,
				"updatedAt": time.Now(),
			},
		}); err != nil {
			respondError(c, "pickups", err)
			return
		}

		log.Println("[PICKUP] [INFO] pickup completed:", orderNumber)
		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"message":    "Order complete.",
			"data":       completed,
		})
	}
}

// DeletePickup is guarded by RequireActor (owner only).
func DeletePickup(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderNumberRequest
		_ = c.ShouldBindJSON(&req)

		orderNumber := strings.TrimSpace(req.OrderNumber)
		if orderNumber == "" {
			respondError(c, "pickups", badRequest("Please provide order number."))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("pickups").CountDocuments(ctx, bson.M{"orderNumber": orderNumber})
		if err != nil {
			respondError(c, "pickups", err)
			return
		}
		if count == 0 {
			respondError(c, "pickups", notFound("Pickup not found."))
			return
		}

		if _, err := db.Collection("pickups").DeleteOne(ctx, bson.M{"orderNumber": orderNumber}); err != nil {
			respondError(c, "pickups", err)
			return
		}

		log.Println("[PICKUP] [INFO] pickup deleted:", orderNumber)
		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"message":    "Pickup deleted successfully",
		})
	}
}
