package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circleops/salesops-backend/internal/models"
)

var resourceRowColumns = []string{"id", "type", "circle", "total", "allocated", "used", "remaining", "updated_by", "updated_at"}

func TestResourceRepository_GetAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResourceRepository(db)
	now := time.Now()

	t.Run("Filtered by circle", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM resources WHERE circle = \$1 ORDER BY circle, type`).
			WithArgs("KERALA").
			WillReturnRows(sqlmock.NewRows(resourceRowColumns).
				AddRow(uuid.New().String(), "FTTH", "KERALA", 200, 20, 50, 150, nil, now).
				AddRow(uuid.New().String(), "SIM", "KERALA", 1000, 100, 400, 600, nil, now))

		resources, err := repo.GetAll("KERALA")
		require.NoError(t, err)
		require.Len(t, resources, 2)
		assert.Equal(t, models.ResourceFTTH, resources[0].Type)
		assert.Equal(t, 600, resources[1].Remaining)
		assert.Nil(t, resources[1].UpdatedBy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("All circles", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM resources ORDER BY circle, type`).
			WillReturnRows(sqlmock.NewRows(resourceRowColumns))

		resources, err := repo.GetAll("")
		require.NoError(t, err)
		assert.NotNil(t, resources)
		assert.Empty(t, resources)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM resources`).
			WillReturnError(fmt.Errorf("connection reset"))

		_, err := repo.GetAll("")
		assert.ErrorContains(t, err, "failed to list resources")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestResourceRepository_SetTotal(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResourceRepository(db)
	updater := uuid.New()

	t.Run("Upserts and recomputes remaining", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO resources (.+) ON CONFLICT \(circle, type\) DO UPDATE`).
			WithArgs("KERALA", models.ResourceSIM, 1500, updater).
			WillReturnRows(sqlmock.NewRows(resourceRowColumns).
				AddRow(uuid.New().String(), "SIM", "KERALA", 1500, 100, 400, 1100, updater.String(), time.Now()))

		res, err := repo.SetTotal("KERALA", models.ResourceSIM, 1500, updater)
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, 1500, res.Total)
		assert.Equal(t, res.Total-res.Used, res.Remaining)
		require.NotNil(t, res.UpdatedBy)
		assert.Equal(t, updater, *res.UpdatedBy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Below used returns nil", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO resources`).
			WithArgs("KERALA", models.ResourceSIM, 10, updater).
			WillReturnRows(sqlmock.NewRows(resourceRowColumns))

		res, err := repo.SetTotal("KERALA", models.ResourceSIM, 10, updater)
		require.NoError(t, err)
		assert.Nil(t, res)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestResourceRepository_GetSummary(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResourceRepository(db)

	mock.ExpectQuery(`SELECT type(.+)FROM resources\s+GROUP BY type`).
		WillReturnRows(sqlmock.NewRows([]string{"type", "circles", "total", "allocated", "used", "remaining"}).
			AddRow("FTTH", 3, 600, 60, 150, 450).
			AddRow("SIM", 4, 4000, 300, 1200, 2800))

	summary, err := repo.GetSummary()
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, 4, summary[1].Circles)
	assert.Equal(t, 2800, summary[1].Remaining)
	assert.NoError(t, mock.ExpectationsWereMet())
}
