package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/circleops/salesops-backend/internal/models"
	"github.com/circleops/salesops-backend/internal/services"
)

func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		code   services.ErrorCode
		status int
	}{
		{services.CodeBadRequest, http.StatusBadRequest},
		{services.CodeUnauthorized, http.StatusUnauthorized},
		{services.CodeForbidden, http.StatusForbidden},
		{services.CodeNotFound, http.StatusNotFound},
		{services.CodeConflict, http.StatusConflict},
		{services.CodeRateLimited, http.StatusTooManyRequests},
		{services.CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			router := setupTestRouter(t, testSession(models.RoleStaff))
			router.GET("/x", func(c *gin.Context) {
				respondError(c, quietLogger(), &services.ServiceError{Code: tt.code, Message: "boom"})
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, string(tt.code), resp.Code)
		})
	}
}

func TestRespondError_HidesInternalDetail(t *testing.T) {
	router := setupTestRouter(t, testSession(models.RoleStaff))
	router.GET("/wrapped", func(c *gin.Context) {
		respondError(c, quietLogger(), &services.ServiceError{
			Code:    services.CodeInternal,
			Message: "failed to load event",
			Err:     errors.New("pq: relation \"events\" does not exist"),
		})
	})
	router.GET("/foreign", func(c *gin.Context) {
		respondError(c, quietLogger(), fmt.Errorf("dial tcp: connection refused"))
	})

	for _, path := range []string{"/wrapped", "/foreign"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "pq:")
		assert.NotContains(t, w.Body.String(), "dial tcp")
		assert.Equal(t, "INTERNAL_SERVER_ERROR", decodeError(t, w).Code)
	}
}

func TestUUIDParam_Invalid(t *testing.T) {
	router := setupTestRouter(t, testSession(models.RoleStaff))
	router.GET("/events/:id", func(c *gin.Context) {
		if _, ok := uuidParam(c, "id"); ok {
			c.Status(http.StatusOK)
		}
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", decodeError(t, w).Code)
}
