package database

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPRepository_Replace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOTPRepository(db)
	expires := time.Now().Add(5 * time.Minute)

	t.Run("Invalidates then inserts", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE otp_verifications SET verified = TRUE WHERE phone = \$1 AND verified = FALSE`).
			WithArgs("+919876543210").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO otp_verifications`).
			WithArgs("+919876543210", "hash", expires, 3, "10.0.0.1").
			WillReturnResult(sqlmock.NewResult(7, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Replace("+919876543210", "hash", expires, 3, "10.0.0.1"))
	})

	t.Run("Insert failure rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE otp_verifications`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO otp_verifications`).WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := repo.Replace("+919876543210", "hash", expires, 3, "")
		assert.ErrorContains(t, err, "failed to store OTP")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOTPRepository_GetOpen(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOTPRepository(db)
	now := time.Now()

	columns := []string{"id", "phone", "otp_hash", "created_at", "expires_at", "verified",
		"verified_at", "attempts", "max_attempts", "ip_address"}

	mock.ExpectQuery(`FROM otp_verifications\s+WHERE phone = \$1 AND verified = FALSE`).
		WithArgs("+919876543210").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(3), "+919876543210", "hash", now, now.Add(time.Minute), false, nil, 1, 3, "10.0.0.1"))

	otp, err := repo.GetOpen("+919876543210")
	require.NoError(t, err)
	require.NotNil(t, otp)
	assert.Equal(t, int64(3), otp.ID)
	assert.Equal(t, 1, otp.Attempts)
	assert.Equal(t, "10.0.0.1", otp.IPAddress.String)

	mock.ExpectQuery(`FROM otp_verifications`).
		WithArgs("+919000000000").
		WillReturnRows(sqlmock.NewRows(columns))

	otp, err = repo.GetOpen("+919000000000")
	require.NoError(t, err)
	assert.Nil(t, otp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_StoresHashOnly(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)
	employeeID := uuid.New()
	expires := time.Now().Add(24 * time.Hour)

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(employeeID, hashToken("plain-token"), "web", nil, expires).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Store(employeeID, "plain-token", "web", "", expires))
	assert.Len(t, hashToken("plain-token"), 64)
	assert.NotEqual(t, hashToken("plain-token"), hashToken("plain-token2"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)
	id, employeeID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`FROM refresh_tokens\s+WHERE token_hash = \$1`).
		WithArgs(hashToken("known")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "token_hash", "device_type",
			"ip_address", "created_at", "expires_at", "last_used_at", "revoked"}).
			AddRow(id.String(), employeeID.String(), hashToken("known"), "mobile", nil, now, now.Add(time.Hour), nil, false))

	rt, err := repo.Get("known")
	require.NoError(t, err)
	require.NotNil(t, rt)
	assert.Equal(t, employeeID, rt.EmployeeID)
	assert.Equal(t, "mobile", rt.DeviceType.String)
	assert.False(t, rt.IPAddress.Valid)

	mock.ExpectQuery(`FROM refresh_tokens`).
		WithArgs(hashToken("unknown")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rt, err = repo.Get("unknown")
	require.NoError(t, err)
	assert.Nil(t, rt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_RevokeAndCleanup(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)
	employeeID := uuid.New()

	mock.ExpectExec(`UPDATE refresh_tokens\s+SET revoked = TRUE, revoked_at = NOW\(\)\s+WHERE token_hash = \$1 AND revoked = FALSE`).
		WithArgs(hashToken("t1")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`WHERE employee_id = \$1 AND revoked = FALSE`).
		WithArgs(employeeID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM refresh_tokens WHERE expires_at < NOW\(\)`).
		WillReturnResult(sqlmock.NewResult(0, 4))

	require.NoError(t, repo.Revoke("t1"))
	require.NoError(t, repo.RevokeAll(employeeID))
	n, err := repo.CleanupExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
