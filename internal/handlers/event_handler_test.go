package handlers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/circleops/salesops-backend/internal/authz"
	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
	"github.com/circleops/salesops-backend/internal/services"
)

func setupEventRouter(t *testing.T, sess authz.Session) (sqlmock.Sqlmock, *gin.Engine) {
	db, mock := setupHandlerDB(t)
	logger := quietLogger()
	notifications := services.NewNotificationService(database.NewNotificationRepository(db), logger)
	events := services.NewEventService(
		database.NewEventRepository(db),
		database.NewAssignmentRepository(db),
		database.NewSalesEntryRepository(db),
		database.NewSubtaskRepository(db),
		database.NewEmployeeRepository(db),
		notifications,
		services.NoopCache{},
		logger,
	)
	handler := NewEventHandler(events, logger)

	router := setupTestRouter(t, sess)
	router.POST("/events", handler.Create)
	router.GET("/events", handler.GetAll)
	router.POST("/events/:id/team", handler.AssignTeam)
	router.POST("/events/:id/sales", handler.SubmitSales)
	return mock, router
}

func TestCreateEvent_StaffForbidden(t *testing.T) {
	mock, router := setupEventRouter(t, testSession(models.RoleStaff))

	w := doJSON(router, http.MethodPost, "/events", map[string]interface{}{
		"name":       "Onam Mela",
		"event_type": "mela",
		"location":   "Thrissur",
		"circle":     "Kerala",
		"start_date": "2026-08-20",
		"end_date":   "2026-08-25",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEvent_UnknownCircleRejectedByBinding(t *testing.T) {
	mock, router := setupEventRouter(t, testSession(models.RoleDGM))

	w := doJSON(router, http.MethodPost, "/events", map[string]interface{}{
		"name":       "Onam Mela",
		"event_type": "mela",
		"location":   "Thrissur",
		"circle":     "Atlantis",
		"start_date": "2026-08-20",
		"end_date":   "2026-08-25",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignTeam_EmptyMembers(t *testing.T) {
	mock, router := setupEventRouter(t, testSession(models.RoleAGM))

	w := doJSON(router, http.MethodPost, "/events/"+uuid.NewString()+"/team", map[string]interface{}{"members": []interface{}{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitSales_NothingSold(t *testing.T) {
	mock, router := setupEventRouter(t, testSession(models.RoleStaff))

	w := doJSON(router, http.MethodPost, "/events/"+uuid.NewString()+"/sales", map[string]interface{}{
		"sims_sold":     0,
		"ftth_sold":     0,
		"customer_type": "individual",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEvents_UnknownStatus(t *testing.T) {
	mock, router := setupEventRouter(t, testSession(models.RoleStaff))

	w := doJSON(router, http.MethodGet, "/events?status=archived", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
