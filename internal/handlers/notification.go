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

	"backend/internal/models"
	"backend/internal/notifier"
)

func GetAllNotifications(feed *notifier.Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		notifications, err := feed.Snapshot(c.Request.Context())
		if err != nil {
			respondError(c, "notifications", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"data":       notifications,
		})
	}
}

// MarkNotificationAsRead flips the read flag; the flag never flips back.
func MarkNotificationAsRead(db *mongo.Database, feed *notifier.Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := strings.TrimSpace(c.Param("id"))
		if rawID == "" {
			respondError(c, "notifications", badRequest("Please provide Notification ID."))
			return
		}

		id, err := primitive.ObjectIDFromHex(rawID)
		if err != nil {
			respondError(c, "notifications", badRequest("Invalid Notification ID."))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("notifications").UpdateByID(ctx, id, bson.M{
			"$set": bson.M{
				"read":      true,
				"updatedAt": time.Now(),
			},
		})
		if err != nil {
			respondError(c, "notifications", err)
			return
		}
		if res.MatchedCount == 0 {
			respondError(c, "notifications", conflict("Notification not found."))
			return
		}

		var notification models.Notification
		if err := db.Collection("notifications").FindOne(ctx, bson.M{"_id": id}).Decode(&notification); err != nil {
			respondError(c, "notifications", err)
			return
		}
		feed.Notify()

		log.Println("[NOTIFICATION] [INFO] marked as read:", rawID)
		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"message":    "Notification read.",
			"data":       notification,
		})
	}
}

// DeleteNotification is guarded by RequireActor (owner only).
func DeleteNotification(db *mongo.Database, feed *notifier.Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := strings.TrimSpace(c.Param("id"))
		if rawID == "" {
			respondError(c, "notifications", badRequest("Please provide Notification ID."))
			return
		}

		id, err := primitive.ObjectIDFromHex(rawID)
		if err != nil {
			respondError(c, "notifications", badRequest("Invalid Notification ID."))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("notifications").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondError(c, "notifications", err)
			return
		}
		if res.DeletedCount == 0 {
			respondError(c, "notifications", conflict("Notification not found."))
			return
		}
		feed.Notify()

		log.Println("[NOTIFICATION] [INFO] deleted:", rawID)
		c.JSON(http.StatusOK, gin.H{
			"statusCode": 200,
			"message":    "Notification deleted.",
		})
	}
}
