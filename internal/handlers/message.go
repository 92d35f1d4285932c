package handlers

import (
	"context"
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

type messageRequest struct {
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Subject     string `json:"subject"`
	MessageBody string `json:"messageBody"`
}

type broadcastRequest struct {
	Recipients []string `json:"recipients"`
	Title      string   `json:"title"`
	Message    string   `json:"message"`
}

func GetAllMessages(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, apiErr := parseListQuery(c)
		if apiErr != nil {
			respondError(c, "messages", apiErr)
			return
		}

		filter := bson.M{}
		if or := searchFilter(q.Search, "fullName", "email", "phoneNumber"); or != nil {
			filter["$or"] = or
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		filteredTotal, err := db.Collection("messages").CountDocuments(ctx, filter)
		if err != nil {
			respondError(c, "messages", err)
			return
		}
		bareTotal, err := db.Collection("messages").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondError(c, "messages", err)
			return
		}

		opts := options.Find().
			SetSkip((q.Page - 1) * q.Limit).
			SetLimit(q.Limit).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("messages").Find(ctx, filter, opts)
		if err != nil {
			respondError(c, "messages", err)
			return
		}
		defer cursor.Close(ctx)

		messages := make([]models.Message, 0)
		if err := cursor.All(ctx, &messages); err != nil {
			respondError(c, "messages", err)
			return
		}

		c.JSON(http.StatusOK, pageEnvelope(q, messages, filteredTotal, bareTotal))
	}
}

func GetMessagesLength(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("messages").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondError(c, "messages", err)
			return
		}
		if total == 0 {
			respondError(c, "messages", badRequest("No messages found."))
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(5)
		cursor, err := db.Collection("messages").Find(ctx, bson.M{}, opts)
		if err != nil {
			respondError(c, "messages", err)
			return
		}
		defer cursor.Close(ctx)

		messages := make([]models.Message, 0)
		if err := cursor.All(ctx, &messages); err != nil {
			respondError(c, "messages", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"length":     total,
			"data":       messages,
		})
	}
}

func GetMessageByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		messageID := strings.TrimSpace(c.Query("messageID"))
		if messageID == "" {
			respondError(c, "messages", badRequest("Please provide message ID."))
			return
		}

		id, err := primitive.ObjectIDFromHex(messageID)
		if err != nil {
			respondError(c, "messages", badRequest("Invalid Message ID."))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var message models.Message
		if err := db.Collection("messages").FindOne(ctx, bson.M{"_id": id}).Decode(&message); err != nil {
			if err == mongo.ErrNoDocuments {
				respondError(c, "messages", notFound("Message not found."))
				return
			}
			respondError(c, "messages", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"data":       message,
			"message":    "Message found.",
		})
	}
}

// CreateMessage is the public contact form; every message also creates an
// unread notification.
func CreateMessage(db *mongo.Database, feed *notifier.Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req messageRequest
		_ = c.ShouldBindJSON(&req)

		if apiErr := firstMissing(
			requiredField{"email", req.Email},
			requiredField{"full name", req.FullName},
			requiredField{"phone number", req.PhoneNumber},
			requiredField{"subject", req.Subject},
			requiredField{"message body", req.MessageBody},
		); apiErr != nil {
			respondError(c, "messages", apiErr)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		message := models.Message{
			Email:       strings.ToLower(strings.TrimSpace(req.Email)),
			FullName:    strings.TrimSpace(req.FullName),
			PhoneNumber: strings.TrimSpace(req.PhoneNumber),
			Address:     strings.TrimSpace(req.Address),
			Subject:     strings.TrimSpace(req.Subject),
			MessageBody: req.MessageBody,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		res, err := db.Collection("messages").InsertOne(ctx, message)
		if err != nil {
			respondError(c, "messages", err)
			return
		}
		message.ID, _ = res.InsertedID.(primitive.ObjectID)

		notification := models.Notification{
			Title:     "You have received a new message",
			Message:   message.MessageBody,
			Type:      models.NotificationTypeMessage,
			MessageID: message.ID.Hex(),
			Read:      false,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := db.Collection("notifications").InsertOne(ctx, notification); err != nil {
			respondError(c, "messages", err)
			return
		}
		feed.Notify()

		log.Println("[MESSAGE] [INFO] message received from:", message.Email)
		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"message":    "Message sent.",
			"data":       message,
		})
	}
}

// SendBroadcastMessage is guarded by RequireActor (owner only). Recipients
// are BCC'd on a single mail.
func SendBroadcastMessage(mail *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req broadcastRequest
		_ = c.ShouldBindJSON(&req)

		if apiErr := firstMissing(
			requiredField{"title", req.Title},
			requiredField{"message", req.Message},
		); apiErr != nil {
			respondError(c, "messages", apiErr)
			return
		}
		if req.Recipients == nil {
			respondError(c, "messages", badRequest("Please provide recipients."))
			return
		}
		if len(req.Recipients) == 0 {
			respondError(c, "messages", badRequest("No recipients found."))
			return
		}

		if err := mail.SendBroadcast(req.Recipients, req.Title, mailer.BroadcastEmail{Title: req.Title, Message: req.Message}); err != nil {
			log.Println("[MESSAGE] [ERROR] broadcast mail failed:", err)
			respondError(c, "messages", conflict("Error sending mail"))
			return
		}

		log.Printf("[MESSAGE] [INFO] broadcast sent to %d recipients", len(req.Recipients))
		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"message":    "Broadcast message sent",
		})
	}
}

// DeleteMessage is guarded by RequireActor (owner only).
func DeleteMessage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		messageID := strings.TrimSpace(c.Param("messageID"))
		if messageID == "" {
			respondError(c, "messages", badRequest("Please provide message ID."))
			return
		}

		id, err := primitive.ObjectIDFromHex(messageID)
		if err != nil {
			respondError(c, "messages", badRequest("Invalid Message ID."))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("messages").CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			respondError(c, "messages", err)
			return
		}
		if count == 0 {
			respondError(c, "messages", notFound("Message not found."))
			return
		}

		if _, err := db.Collection("messages").DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			respondError(c, "messages", err)
			return
		}

		log.Println("[MESSAGE] [INFO] message deleted:", messageID)
		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"message":    "Message deleted successfully",
		})
	}
}
