package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
	"github.com/circleops/salesops-backend/internal/services"
)

func TestTeam_DepthValidation(t *testing.T) {
	db, mock := setupHandlerDB(t)
	handler := NewHierarchyHandler(services.NewHierarchyService(database.NewEmployeeRepository(db), 8, quietLogger()), quietLogger())
	router := setupTestRouter(t, testSession(models.RoleAGM))
	router.GET("/hierarchy/:persNo/team", handler.Team)

	for _, depth := range []string{"two", "0", "3"} {
		w := doJSON(router, http.MethodGet, "/hierarchy/EMP1001/team?depth="+depth, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, depth)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
