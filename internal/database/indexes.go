package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureCustomerIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureCustomerIndexes: creating email_unique index")
	_, err := db.Collection("customers").Indexes().CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureCustomerIndexes: email index error:", err)
		return err
	}
	return nil
}

func EnsurePickupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	orderNumberIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "orderNumber", Value: 1}},
		Options: options.Index().
			SetName("orderNumber_unique").
			SetUnique(true),
	}

	log.Println("EnsurePickupIndexes: creating orderNumber_unique index")
	_, err := db.Collection("pickups").Indexes().CreateOne(ctx, orderNumberIndex)
	if err != nil {
		log.Println("EnsurePickupIndexes: orderNumber index error:", err)
		return err
	}
	return nil
}

func EnsureActorIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	for _, name := range []string{"owners", "admins"} {
		log.Printf("EnsureActorIndexes: creating email_unique index on %s", name)
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, emailIndex); err != nil {
			log.Printf("EnsureActorIndexes: %s email index error: %v", name, err)
			return err
		}
	}
	return nil
}
