package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circleops/salesops-backend/internal/models"
)

var subtaskRowColumns = []string{
	"id", "event_id", "title", "description", "assigned_to", "status", "priority",
	"due_date", "completed_at", "created_by", "created_at",
}

func TestSubtaskRepository_UpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubtaskRepository(db)
	id, eventID, creator := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	t.Run("Completion stamps completed_at", func(t *testing.T) {
		mock.ExpectQuery(`completed_at = CASE WHEN \$2::text = 'completed' THEN COALESCE\(completed_at, NOW\(\)\) ELSE NULL END`).
			WithArgs(id, "completed").
			WillReturnRows(sqlmock.NewRows(subtaskRowColumns).AddRow(
				id.String(), eventID.String(), "Banner", nil, nil, "completed", "high", nil, now, creator.String(), now))

		s, err := repo.UpdateStatus(id, models.SubtaskCompleted)
		require.NoError(t, err)
		require.NotNil(t, s.CompletedAt)
		assert.Nil(t, s.AssignedTo)
	})

	t.Run("Reopening clears completed_at", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE event_subtasks SET`).
			WithArgs(id, "in_progress").
			WillReturnRows(sqlmock.NewRows(subtaskRowColumns).AddRow(
				id.String(), eventID.String(), "Banner", nil, nil, "in_progress", "high", nil, nil, creator.String(), now))

		s, err := repo.UpdateStatus(id, models.SubtaskInProgress)
		require.NoError(t, err)
		assert.Nil(t, s.CompletedAt)
	})

	t.Run("Missing subtask", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE event_subtasks SET`).
			WithArgs(id, "pending").
			WillReturnRows(sqlmock.NewRows(subtaskRowColumns))

		s, err := repo.UpdateStatus(id, models.SubtaskPending)
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
