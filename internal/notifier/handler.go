package notifier

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const eventMarkAsRead = "markNotificationAsRead"

// FeedHandler upgrades the request, sends the current snapshot to the new
// viewer, then reads mark-as-read events until the connection closes.
func FeedHandler(feed *Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"statusCode": http.StatusBadRequest,
				"message":    "Upgrade failed.",
			})
			return
		}

		if notifications, err := feed.Snapshot(c.Request.Context()); err == nil {
			_ = conn.SetWriteDeadline(time.Now().Add(defaultWriteWait))
			if err := conn.WriteJSON(Event{Event: EventNotifications, Data: notifications}); err != nil {
				_ = conn.Close()
				return
			}
		} else {
			log.Println("[FEED] [ERROR] initial snapshot failed:", err)
		}

		feed.hub.Add(conn)
		defer feed.hub.Remove(conn)

		for {
			var event Event
			if err := conn.ReadJSON(&event); err != nil {
				return
			}
			if event.Event == eventMarkAsRead && event.ID != "" {
				markAsRead(feed, event.ID)
			}
		}
	}
}

func markAsRead(feed *Feed, id string) {
	notificationID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		log.Printf("[FEED] [ERROR] invalid notification id %q", id)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := feed.db.Collection("notifications").UpdateByID(ctx, notificationID, bson.M{
		"$set": bson.M{
			"read":      true,
			"updatedAt": time.Now(),
		},
	})
	if err != nil {
		log.Println("[FEED] [ERROR] mark as read failed:", err)
		return
	}
	if res.MatchedCount == 0 {
		log.Printf("[FEED] [ERROR] notification %s not found", id)
		return
	}

	log.Printf("[FEED] [INFO] notification %s marked as read", id)
	feed.Notify()
}
