package notifier

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

// Event is the wire envelope for every feed payload.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
	ID    string      `json:"id,omitempty"`
}

const EventNotifications = "notifications"

// Feed pushes the full, newest-first notification list to every viewer on
// every change; each push is a self-consistent snapshot, so out-of-order
// delivery is harmless.
type Feed struct {
	db        *mongo.Database
	hub       *Hub
	streaming atomic.Bool
}

func NewFeed(db *mongo.Database, hub *Hub) *Feed {
	return &Feed{db: db, hub: hub}
}

func (f *Feed) Hub() *Hub { return f.hub }

// Snapshot loads all notifications sorted newest-first.
func (f *Feed) Snapshot(ctx context.Context) ([]models.Notification, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := f.db.Collection("notifications").Find(queryCtx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(queryCtx)

	notifications := make([]models.Notification, 0)
	if err := cursor.All(queryCtx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// Publish re-queries the collection and broadcasts the snapshot.
func (f *Feed) Publish(ctx context.Context) {
	notifications, err := f.Snapshot(ctx)
	if err != nil {
		log.Println("[FEED] [ERROR] snapshot failed:", err)
		return
	}
	f.hub.Broadcast(Event{Event: EventNotifications, Data: notifications})
}

// Notify is called by handlers after a notification mutation. When the
// change stream is active it is a no-op, the stream reacts to the write on
// its own; without a replica set the stream never starts and this explicit
// push keeps the feed live.
func (f *Feed) Notify() {
	if f.streaming.Load() {
		return
	}
	go f.Publish(context.Background())
}

// Watch consumes the notifications change stream and broadcasts a fresh
// snapshot for every write. Blocks until the stream dies or ctx ends.
func (f *Feed) Watch(ctx context.Context) {
	stream, err := f.db.Collection("notifications").Watch(ctx, mongo.Pipeline{})
	if err != nil {
		log.Println("[FEED] [ERROR] change stream unavailable:", err)
		return
	}
	defer stream.Close(ctx)

	f.streaming.Store(true)
	defer f.streaming.Store(false)

	log.Println("[FEED] [INFO] change stream started")
	for stream.Next(ctx) {
		f.Publish(ctx)
	}
	if err := stream.Err(); err != nil {
		log.Println("[FEED] [ERROR] change stream closed:", err)
	}
}
