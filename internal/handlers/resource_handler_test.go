package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/circleops/salesops-backend/internal/authz"
	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
	"github.com/circleops/salesops-backend/internal/services"
)

func setupResourceRouter(t *testing.T, sess authz.Session) (sqlmock.Sqlmock, *gin.Engine) {
	db, mock := setupHandlerDB(t)
	ledger := services.NewLedgerService(database.NewResourceRepository(db), services.NoopCache{}, quietLogger())
	handler := NewResourceHandler(ledger, quietLogger())

	router := setupTestRouter(t, sess)
	router.GET("/resources", handler.GetAll)
	router.PUT("/resources/:circle/:type", handler.UpdateStock)
	return mock, router
}

func TestUpdateStock_AGMForbidden(t *testing.T) {
	mock, router := setupResourceRouter(t, testSession(models.RoleAGM))

	w := doJSON(router, http.MethodPut, "/resources/KERALA/SIM", map[string]int{"new_total": 500})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", decodeError(t, w).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStock_DGMUpdates(t *testing.T) {
	sess := testSession(models.RoleDGM)
	mock, router := setupResourceRouter(t, sess)

	mock.ExpectQuery(`INSERT INTO resources`).
		WithArgs("KERALA", "SIM", 500, sess.EmployeeID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "type", "circle", "total", "allocated", "used", "remaining", "updated_by", "updated_at",
		}).AddRow("11111111-1111-1111-1111-111111111111", "SIM", "KERALA", 500, 0, 20, 480, sess.EmployeeID.String(), time.Now()))

	w := doJSON(router, http.MethodPut, "/resources/kerala/sim", map[string]int{"new_total": 500})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"remaining":480`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStock_MissingTotal(t *testing.T) {
	mock, router := setupResourceRouter(t, testSession(models.RoleDGM))

	w := doJSON(router, http.MethodPut, "/resources/KERALA/SIM", map[string]int{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetResources_UnknownCircle(t *testing.T) {
	mock, router := setupResourceRouter(t, testSession(models.RoleStaff))

	w := doJSON(router, http.MethodGet, "/resources?circle=Atlantis", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
