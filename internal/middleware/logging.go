// internal/middleware/logging.go
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/chaintrace/backend/internal/models"
)

// RequestLogger tags every request with a request id and logs method, path,
// status and latency as structured fields.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		logrus.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   duration.Milliseconds(),
			"ip":         c.ClientIP(),
		}).Info("Request processed")
	}
}

// AuditLogMiddleware persists a record of every mutating request. Reads are
// skipped; audit rows are written asynchronously and never block a response.
func AuditLogMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		// Read request body
		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		c.Next()

		caller := ""
		if addr, exists := c.Get("caller_address"); exists {
			if addrStr, ok := addr.(string); ok {
				caller = addrStr
			}
		}

		requestID := ""
		if id, exists := c.Get("request_id"); exists {
			if idStr, ok := id.(string); ok {
				requestID = idStr
			}
		}

		var requestData map[string]interface{}
		if len(requestBody) > 0 {
			json.Unmarshal(requestBody, &requestData)
		}

		auditLog := &models.AuditLog{
			RequestID:     requestID,
			CallerAddress: caller,
			Action:        c.Request.Method + " " + c.Request.URL.Path,
			ResourceType:  extractResourceType(c.Request.URL.Path),
			ResourceID:    extractResourceID(c.Request.URL.Path),
			NewValues:     models.JSONB(requestData),
			IPAddress:     c.ClientIP(),
			UserAgent:     c.Request.UserAgent(),
		}

		// Save audit log asynchronously
		go func() {
			if err := db.Create(auditLog).Error; err != nil {
				logrus.WithError(err).Error("Failed to create audit log")
			}
		}()
	}
}

func extractResourceType(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "v1" {
		return parts[1]
	}
	if len(parts) >= 1 {
		return parts[0]
	}
	return "unknown"
}

func extractResourceID(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for _, part := range parts {
		if _, err := strconv.ParseUint(part, 10, 64); err == nil {
			return part
		}
		if strings.HasPrefix(part, "0x") && len(part) == 42 {
			return part
		}
	}
	return ""
}
