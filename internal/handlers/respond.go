package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// apiError carries the HTTP status code and message of an expected failure
// (validation, authorization, missing entity). Anything else reaching
// respondError is treated as unexpected, logged durably and masked as a 500.
type apiError struct {
	Code    int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

func newAPIError(code int, message string) *apiError {
	return &apiError{Code: code, Message: message}
}

func badRequest(message string) *apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func notFound(message string) *apiError {
	return newAPIError(http.StatusNotFound, message)
}

func conflict(message string) *apiError {
	return newAPIError(http.StatusConflict, message)
}

var (
	errorLogMu   sync.Mutex
	errorLogPath = "error.log.txt"
)

// SetErrorLogPath overrides the append-only error log destination. Called
// once from main before the router starts serving.
func SetErrorLogPath(path string) {
	errorLogMu.Lock()
	defer errorLogMu.Unlock()
	if path != "" {
		errorLogPath = path
	}
}

func logErrorToFile(route string, err error) {
	errorLogMu.Lock()
	defer errorLogMu.Unlock()

	f, openErr := os.OpenFile(errorLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if openErr != nil {
		log.Printf("[%s] error log open failed: %v", route, openErr)
		return
	}
	defer f.Close()

	fmt.Fprintf(f, "%s [%s] %v\r\n", time.Now().Format(time.RFC1123), route, err)
}

// respondError converts a failure into the API's response envelope. Typed
// apiErrors are returned verbatim; everything else is logged to the error
// log file and masked.
func respondError(c *gin.Context, route string, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		log.Printf("[%s] returning error %d: %s", route, apiErr.Code, apiErr.Message)
		c.AbortWithStatusJSON(apiErr.Code, gin.H{
			"statusCode": apiErr.Code,
			"message":    apiErr.Message,
		})
		return
	}

	log.Printf("[%s] unexpected error: %v", route, err)
	logErrorToFile(route, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"statusCode": http.StatusInternalServerError,
		"message":    "Internal Server Error",
	})
}
