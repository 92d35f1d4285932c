package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRespondErrorReturnsTypedErrorVerbatim(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	respondError(c, "customers", notFound("Customer not found."))

	if rec.Code != 404 {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["statusCode"].(float64) != 404 || body["message"] != "Customer not found." {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRespondErrorMasksUnexpectedErrorsAndLogsThem(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "error.log.txt")
	SetErrorLogPath(logPath)
	defer SetErrorLogPath("error.log.txt")

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	respondError(c, "pickups", errors.New("connection reset by peer"))

	if rec.Code != 500 {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Internal Server Error") {
		t.Fatalf("expected generic message, got %s", rec.Body.String())
	}

	logged, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("expected error log file to exist: %v", err)
	}
	if !strings.Contains(string(logged), "connection reset by peer") {
		t.Fatalf("expected the cause in the error log, got %q", string(logged))
	}
	if !strings.Contains(string(logged), "[pickups]") {
		t.Fatalf("expected the route tag in the error log, got %q", string(logged))
	}
}

func TestRespondErrorAppendsToExistingLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "error.log.txt")
	SetErrorLogPath(logPath)
	defer SetErrorLogPath("error.log.txt")

	gin.SetMode(gin.TestMode)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		respondError(c, "messages", errors.New("boom"))
	}

	logged, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("expected error log file to exist: %v", err)
	}
	if got := strings.Count(string(logged), "boom"); got != 2 {
		t.Fatalf("expected 2 appended entries, got %d", got)
	}
}
