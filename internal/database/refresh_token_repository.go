package database

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/circleops/salesops-backend/internal/models"
)

// RefreshTokenRepository handles refresh token database operations
type RefreshTokenRepository struct {
	db DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// hashToken creates a SHA-256 hash of the token for storage
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// Store persists the hash of a refresh token
func (r *RefreshTokenRepository) Store(employeeID uuid.UUID, token, deviceType, ipAddress string, expiresAt time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO refresh_tokens (employee_id, token_hash, device_type, ip_address, expires_at)
		VALUES ($1, $2, $3, $4, $5)`,
		employeeID, hashToken(token),
		models.NewNullString(deviceType), models.NewNullString(ipAddress), expiresAt)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// Get retrieves a refresh token by its plaintext value, or nil if unknown
func (r *RefreshTokenRepository) Get(token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	found, err := getOptional(r.db, &rt, `
		SELECT id, employee_id, token_hash, device_type, ip_address, created_at,
		       expires_at, last_used_at, revoked
		FROM refresh_tokens
		WHERE token_hash = $1`, hashToken(token))
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &rt, nil
}

// Revoke revokes one token. Revoking an unknown or revoked token is not an error.
func (r *RefreshTokenRepository) Revoke(token string) error {
	_, err := r.db.Exec(`
		UPDATE refresh_tokens
		SET revoked = TRUE, revoked_at = NOW()
		WHERE token_hash = $1 AND revoked = FALSE`, hashToken(token))
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// RevokeAll revokes every active token of an employee
func (r *RefreshTokenRepository) RevokeAll(employeeID uuid.UUID) error {
	_, err := r.db.Exec(`
		UPDATE refresh_tokens
		SET revoked = TRUE, revoked_at = NOW()
		WHERE employee_id = $1 AND revoked = FALSE`, employeeID)
	if err != nil {
		return fmt.Errorf("failed to revoke employee tokens: %w", err)
	}
	return nil
}

// UpdateLastUsed updates the last_used_at timestamp for a token
func (r *RefreshTokenRepository) UpdateLastUsed(token string) error {
	_, err := r.db.Exec(`UPDATE refresh_tokens SET last_used_at = NOW() WHERE token_hash = $1`, hashToken(token))
	if err != nil {
		return fmt.Errorf("failed to update last used timestamp: %w", err)
	}
	return nil
}

// CleanupExpired removes expired refresh tokens
func (r *RefreshTokenRepository) CleanupExpired() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM refresh_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup expired tokens: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
