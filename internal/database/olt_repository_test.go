package database

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOltRepository_Insert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOltRepository(db)

	t.Run("New pair", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO olt_assignments (.+) ON CONFLICT \(pers_no, olt_ip\) DO NOTHING`).
			WithArgs("P1001", "10.20.30.1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		inserted, err := repo.Insert("P1001", "10.20.30.1")
		require.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("Existing pair", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO olt_assignments`).
			WithArgs("P1001", "10.20.30.1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		inserted, err := repo.Insert("P1001", "10.20.30.1")
		require.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("Unique violation counts as existing", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO olt_assignments`).
			WillReturnError(&pq.Error{Code: "23505"})

		inserted, err := repo.Insert("P1001", "10.20.30.1")
		require.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("Other failure", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO olt_assignments`).
			WillReturnError(fmt.Errorf("relation does not exist"))

		_, err := repo.Insert("P1001", "10.20.30.1")
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOltRepository_Report(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOltRepository(db)
	cols := []string{"pers_no", "employee_name", "olt_ips", "olt_count"}

	t.Run("Partial pers number search", func(t *testing.T) {
		mock.ExpectQuery(`FROM olt_assignments o\s+LEFT JOIN employee_master m (.+) WHERE o.pers_no ILIKE \$1 GROUP BY o.pers_no`).
			WithArgs("%100%").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("P1001", "Ravi Kumar", []byte("{10.20.30.1,10.20.30.2}"), 2).
				AddRow("P1002", nil, []byte("{10.20.31.9}"), 1))

		rows, err := repo.Report(" 100 ")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "P1001", rows[0].PersNo)
		assert.Equal(t, []string{"10.20.30.1", "10.20.30.2"}, []string(rows[0].OltIPs))
		assert.Equal(t, len(rows[0].OltIPs), rows[0].OltCount)
		assert.Nil(t, rows[1].EmployeeName)
		assert.Equal(t, len(rows[1].OltIPs), rows[1].OltCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Wildcards are escaped", func(t *testing.T) {
		mock.ExpectQuery(`ILIKE \$1`).
			WithArgs(`%P\_1%`).
			WillReturnRows(sqlmock.NewRows(cols))

		rows, err := repo.Report("P_1")
		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
