package handlers

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// issueActorToken signs a 7-day HS256 bearer token for the actor and stores
// it on the actor's record, overwriting whatever token was there before.
// Supplanted tokens stay cryptographically valid until their own expiry;
// the stored copy is informational, verification checks signature and
// expiry only.
func issueActorToken(ctx context.Context, db *mongo.Database, collection string, id primitive.ObjectID, email, role, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   id.Hex(),
		"role":  role,
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	updateCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err = db.Collection(collection).UpdateByID(updateCtx, id, bson.M{
		"$set": bson.M{
			"token":     signed,
			"updatedAt": time.Now(),
		},
	})
	if err != nil {
		return "", err
	}

	return signed, nil
}
