package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circleops/salesops-backend/internal/authz"
	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
)

func setupServiceDB(t *testing.T) (*database.PostgresDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &database.PostgresDB{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func sessionFor(role models.Role) authz.Session {
	return authz.Session{
		EmployeeID: uuid.New(),
		PersNo:     "EMP1001",
		Role:       role,
		Circle:     "KERALA",
	}
}

func assertCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, CodeOf(err), err.Error())
}

// expectNotification mocks the preference lookup and inbox insert of Notify
func expectNotification(mock sqlmock.Sqlmock, employeeID uuid.UUID) {
	mock.ExpectQuery(`SELECT enabled FROM notification_preferences`).
		WithArgs(employeeID, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"enabled"}))
	mock.ExpectQuery(`INSERT INTO notifications`).
		WithArgs(employeeID, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_read", "created_at"}).AddRow(uuid.New().String(), false, time.Now()))
}

// memoryCache is a SummaryCache that records hits and deletions
type memoryCache struct {
	values  map[string]interface{}
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]interface{}{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) bool {
	v, ok := c.values[key]
	if !ok {
		return false
	}
	switch d := dest.(type) {
	case *[]models.ResourceTypeSummary:
		*d = v.([]models.ResourceTypeSummary)
	case *models.FinanceSummary:
		*d = *v.(*models.FinanceSummary)
	default:
		return false
	}
	return true
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}) {
	c.values[key] = value
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) {
	for _, k := range keys {
		delete(c.values, k)
		c.deleted = append(c.deleted, k)
	}
}
