package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func signedTestToken(t *testing.T, secret string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  primitive.NewObjectID().Hex(),
		"role": models.RoleOwner,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return raw
}

func authTestContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	return c, rec
}

func TestExtractTokenFromBearerHeader(t *testing.T) {
	c, _ := authTestContext(t, "GET", "/", "")
	c.Request.Header.Set("Authorization", "Bearer abc.def.ghi")

	if got := extractToken(c); got != "abc.def.ghi" {
		t.Fatalf("expected bearer token, got %q", got)
	}
}

func TestExtractTokenFromRawHeader(t *testing.T) {
	c, _ := authTestContext(t, "GET", "/", "")
	c.Request.Header.Set("Authorization", "abc.def.ghi")

	if got := extractToken(c); got != "abc.def.ghi" {
		t.Fatalf("expected raw header token, got %q", got)
	}
}

func TestExtractTokenHeaderWinsOverBodyAndQuery(t *testing.T) {
	c, _ := authTestContext(t, "POST", "/?token=from-query", `{"token":"from-body"}`)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set("Authorization", "Bearer from-header")

	if got := extractToken(c); got != "from-header" {
		t.Fatalf("expected header token to win, got %q", got)
	}
}

func TestExtractTokenFromBodyRestoresBody(t *testing.T) {
	c, _ := authTestContext(t, "POST", "/?token=from-query", `{"token":"from-body","email":"a@b.com"}`)
	c.Request.Header.Set("Content-Type", "application/json")

	if got := extractToken(c); got != "from-body" {
		t.Fatalf("expected body token to win over query, got %q", got)
	}

	// The body must be readable again so handlers can bind it.
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("body not restored: %v", err)
	}
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("restored body unparseable: %v", err)
	}
	if payload.Email != "a@b.com" {
		t.Fatalf("restored body lost fields: %q", string(raw))
	}
}

func TestExtractTokenFromPathParam(t *testing.T) {
	c, _ := authTestContext(t, "GET", "/?token=from-query", "")
	c.Params = gin.Params{{Key: "token", Value: "from-param"}}

	if got := extractToken(c); got != "from-param" {
		t.Fatalf("expected path param token to win over query, got %q", got)
	}
}

func TestExtractTokenFromQuery(t *testing.T) {
	c, _ := authTestContext(t, "GET", "/?token=from-query", "")

	if got := extractToken(c); got != "from-query" {
		t.Fatalf("expected query token, got %q", got)
	}
}

func TestRequireActorRejectsMissingToken(t *testing.T) {
	c, rec := authTestContext(t, "GET", "/", "")

	RequireActor(nil, "secret")(c)

	if rec.Code != 401 {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Token not found.") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRequireActorRejectsMalformedToken(t *testing.T) {
	c, rec := authTestContext(t, "GET", "/", "")
	c.Request.Header.Set("Authorization", "Bearer not-a-jwt")

	RequireActor(nil, "secret")(c)

	if rec.Code != 401 {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Token Invalid.") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRequireActorRejectsTokenSignedWithWrongSecret(t *testing.T) {
	c, rec := authTestContext(t, "GET", "/", "")
	// Signed with a different secret than the middleware expects.
	c.Request.Header.Set("Authorization", "Bearer "+signedTestToken(t, "other-secret"))

	RequireActor(nil, "secret")(c)

	if rec.Code != 401 {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Token Invalid.") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
