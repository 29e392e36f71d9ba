package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/circleops/salesops-backend/internal/authz"
	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
	"github.com/circleops/salesops-backend/pkg/validator"
)

var registerBindings sync.Once

func setupHandlerDB(t *testing.T) (*database.PostgresDB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return &database.PostgresDB{DB: sqlx.NewDb(mockDB, "sqlmock")}, mock
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testSession(role models.Role) authz.Session {
	return authz.Session{EmployeeID: uuid.New(), PersNo: "EMP1001", Role: role, Circle: "KERALA"}
}

// setupTestRouter returns a router whose requests all carry sess
func setupTestRouter(t *testing.T, sess authz.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	registerBindings.Do(func() {
		require.NoError(t, validator.RegisterBindings())
	})
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(authz.WithSession(c.Request.Context(), sess))
		c.Next()
	})
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

