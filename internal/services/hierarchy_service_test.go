package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
)

var masterColumnsForTest = []string{
	"purse_id", "pers_no", "name", "designation", "circle", "zone", "office", "phone",
	"reporting_purse_id", "reporting_officer_name", "employee_id",
}

func setupHierarchyService(t *testing.T, maxDepth int) (*HierarchyService, sqlmock.Sqlmock) {
	db, mock := setupServiceDB(t)
	return NewHierarchyService(database.NewEmployeeRepository(db), maxDepth, quietLogger()), mock
}

func masterRows(rows ...[2]string) *sqlmock.Rows {
	r := sqlmock.NewRows(masterColumnsForTest)
	for _, row := range rows {
		purseID, reportsTo := row[0], row[1]
		r.AddRow(purseID, "EMP"+purseID[1:], "Employee "+purseID, "SDE", "KERALA", nil, nil, nil, reportsTo, nil, nil)
	}
	return r
}

func TestChain_DetectsCycle(t *testing.T) {
	service, mock := setupHierarchyService(t, 8)

	// P1 -> P2 -> P3 -> P1
	mock.ExpectQuery(`FROM employee_master m (.+) WHERE m.pers_no = \$1`).
		WithArgs("EMP1001").
		WillReturnRows(masterRows([2]string{"P1001", "P2001"}))
	mock.ExpectQuery(`WHERE m.purse_id = \$1`).WithArgs("P2001").WillReturnRows(masterRows([2]string{"P2001", "P3001"}))
	mock.ExpectQuery(`WHERE m.purse_id = \$1`).WithArgs("P3001").WillReturnRows(masterRows([2]string{"P3001", "P1001"}))

	chain, err := service.Chain("emp1001")
	require.NoError(t, err)
	assert.True(t, chain.CycleDetected)
	assert.False(t, chain.Truncated)
	require.Len(t, chain.Chain, 2)
	assert.Equal(t, "P2001", chain.Chain[0].PurseID)
	assert.Equal(t, "P3001", chain.Chain[1].PurseID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChain_Truncated(t *testing.T) {
	service, mock := setupHierarchyService(t, 1)

	mock.ExpectQuery(`WHERE m.pers_no = \$1`).WillReturnRows(masterRows([2]string{"P1001", "P2001"}))
	mock.ExpectQuery(`WHERE m.purse_id = \$1`).WithArgs("P2001").WillReturnRows(masterRows([2]string{"P2001", "P3001"}))

	chain, err := service.Chain("EMP1001")
	require.NoError(t, err)
	assert.True(t, chain.Truncated)
	assert.Len(t, chain.Chain, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_SelfReference(t *testing.T) {
	service, mock := setupHierarchyService(t, 8)

	mock.ExpectQuery(`WHERE m.pers_no = \$1`).WillReturnRows(masterRows([2]string{"P1001", "P1001"}))
	mock.ExpectQuery(`WHERE m.reporting_purse_id = ANY\(\$1\)`).
		WithArgs(pq.Array([]string{"P1001"})).
		WillReturnRows(masterRows([2]string{"P1001", "P1001"}, [2]string{"P4001", "P1001"}))

	view, err := service.Resolve("EMP1001")
	require.NoError(t, err)
	assert.True(t, view.CycleDetected)
	assert.Nil(t, view.Manager)
	require.Len(t, view.Subordinates, 1)
	assert.Equal(t, "P4001", view.Subordinates[0].PurseID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeam_TwoLevelsWithCycle(t *testing.T) {
	service, mock := setupHierarchyService(t, 8)

	mock.ExpectQuery(`WHERE m.pers_no = \$1`).WillReturnRows(masterRows([2]string{"P1001", ""}))
	mock.ExpectQuery(`ANY\(\$1\)`).
		WithArgs(pq.Array([]string{"P1001"})).
		WillReturnRows(masterRows([2]string{"P2001", "P1001"}, [2]string{"P2002", "P1001"}))
	mock.ExpectQuery(`ANY\(\$1\)`).
		WithArgs(pq.Array([]string{"P2001", "P2002"})).
		WillReturnRows(masterRows([2]string{"P3001", "P2001"}, [2]string{"P1001", "P2002"}))

	team, err := service.Team("EMP1001", 2)
	require.NoError(t, err)
	assert.True(t, team.CycleDetected)
	require.Len(t, team.Root.Subordinates, 2)
	assert.Len(t, team.Root.Subordinates[0].Subordinates, 1)
	assert.Empty(t, team.Root.Subordinates[1].Subordinates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeam_DepthBounds(t *testing.T) {
	service, mock := setupHierarchyService(t, 8)

	_, err := service.Team("EMP1001", 3)
	assertCode(t, err, CodeBadRequest)
	_, err = service.Team("EMP1001", 0)
	assertCode(t, err, CodeBadRequest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLinkEmployee_Forbidden(t *testing.T) {
	service, mock := setupHierarchyService(t, 8)

	_, err := service.LinkEmployee(sessionFor(models.RoleDGM), sessionFor(models.RoleStaff).EmployeeID, "P1001")
	assertCode(t, err, CodeForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}
