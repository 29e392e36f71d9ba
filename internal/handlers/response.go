package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/services"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// MessageResponse is a bare acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

var statusByCode = map[services.ErrorCode]int{
	services.CodeBadRequest:   http.StatusBadRequest,
	services.CodeUnauthorized: http.StatusUnauthorized,
	services.CodeForbidden:    http.StatusForbidden,
	services.CodeNotFound:     http.StatusNotFound,
	services.CodeConflict:     http.StatusConflict,
	services.CodeRateLimited:  http.StatusTooManyRequests,
	services.CodeInternal:     http.StatusInternalServerError,
}

// respondError writes err as an ErrorResponse. Internal causes are logged and
// never sent to the client.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	code := services.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := "Internal server error"
	if se, ok := services.AsServiceError(err); ok && code != services.CodeInternal {
		message = se.Message
	}
	if status >= http.StatusInternalServerError {
		logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("request failed")
		_ = c.Error(err)
	}

	c.JSON(status, ErrorResponse{
		Error:   strings.ToLower(string(code)),
		Message: message,
		Code:    string(code),
	})
}

// badRequest answers a malformed request before any service is called
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation_error",
		Message: message,
		Code:    string(services.CodeBadRequest),
	})
}

// bindJSON binds the request body or writes a 400
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// uuidParam parses a path parameter as a UUID or writes a 400
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "Invalid "+name+": must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
