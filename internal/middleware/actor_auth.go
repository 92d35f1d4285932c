package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

// Context keys set by RequireActor for downstream handlers.
const (
	CtxActorID    = "actorID"
	CtxActorRole  = "actorRole"
	CtxActorEmail = "actorEmail"
)

// RequireActor authenticates the request's bearer token and resolves its
// subject against the owners/admins collections. The token is accepted from
// the Authorization header, the request body, a path parameter or the query
// string, checked in that precedence order. Authorization is bound to the
// verified token's subject; no separately supplied actor email is trusted.
func RequireActor(db *mongo.Database, secret string, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			log.Println("[AUTH] [ERROR] token not found")
			abortAuth(c, http.StatusUnauthorized, "Token not found.")
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			abortAuth(c, http.StatusUnauthorized, "Token Invalid.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortAuth(c, http.StatusUnauthorized, "Token Invalid.")
			return
		}

		subject, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)

		actorID, err := primitive.ObjectIDFromHex(subject)
		if err != nil {
			log.Println("[AUTH] [ERROR] invalid subject claim")
			abortAuth(c, http.StatusUnauthorized, "Token Invalid.")
			return
		}

		email, found := lookupActor(c.Request.Context(), db, role, actorID)
		if !found {
			log.Println("[AUTH] [ERROR] token subject does not resolve to an actor")
			abortAuth(c, http.StatusUnauthorized, "Not authorized.")
			return
		}

		if len(allowedRoles) > 0 && !roleAllowed(role, allowedRoles) {
			log.Printf("[AUTH] [ERROR] role %q not permitted", role)
			abortAuth(c, http.StatusConflict, "Not authorized.")
			return
		}

		c.Set(CtxActorID, actorID)
		c.Set(CtxActorRole, role)
		c.Set(CtxActorEmail, email)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if raw := strings.TrimSpace(c.GetHeader("Authorization")); raw != "" {
		parts := strings.Split(raw, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return raw
	}

	if token := tokenFromBody(c); token != "" {
		return token
	}

	if token := strings.TrimSpace(c.Param("token")); token != "" {
		return token
	}

	return strings.TrimSpace(c.Query("token"))
}

// tokenFromBody peeks into a JSON body for a "token" field and restores the
// body so handlers can bind it again.
func tokenFromBody(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Token)
}

func lookupActor(ctx context.Context, db *mongo.Database, role string, id primitive.ObjectID) (string, bool) {
	lookupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	switch role {
	case models.RoleOwner:
		var owner models.Owner
		if err := db.Collection("owners").FindOne(lookupCtx, bson.M{"_id": id}).Decode(&owner); err != nil {
			return "", false
		}
		return owner.Email, true
	case models.RoleAdmin:
		var admin models.Admin
		if err := db.Collection("admins").FindOne(lookupCtx, bson.M{"_id": id}).Decode(&admin); err != nil {
			return "", false
		}
		return admin.Email, true
	default:
		return "", false
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

func abortAuth(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"statusCode": status,
		"message":    message,
	})
}
