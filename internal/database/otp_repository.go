package database

import (
	"fmt"
	"time"

	"github.com/circleops/salesops-backend/internal/models"
)

// OTPRepository handles otp_verifications
type OTPRepository struct {
	db DB
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(db DB) *OTPRepository {
	return &OTPRepository{db: db}
}

// Replace invalidates any open OTP for phone and stores a new hashed one
func (r *OTPRepository) Replace(phone, otpHash string, expiresAt time.Time, maxAttempts int, ipAddress string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE otp_verifications SET verified = TRUE WHERE phone = $1 AND verified = FALSE`, phone); err != nil {
		return fmt.Errorf("failed to invalidate OTP: %w", err)
	}
	_, err = tx.Exec(`
		INSERT INTO otp_verifications (phone, otp_hash, expires_at, attempts, max_attempts, ip_address)
		VALUES ($1, $2, $3, 0, $4, $5)`,
		phone, otpHash, expiresAt, maxAttempts, models.NewNullString(ipAddress))
	if err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit OTP: %w", err)
	}
	return nil
}

// GetOpen returns the newest unverified OTP for phone, or nil
func (r *OTPRepository) GetOpen(phone string) (*models.OTPVerification, error) {
	var otp models.OTPVerification
	found, err := getOptional(r.db, &otp, `
		SELECT id, phone, otp_hash, created_at, expires_at, verified, verified_at,
		       attempts, max_attempts, ip_address
		FROM otp_verifications
		WHERE phone = $1 AND verified = FALSE
		ORDER BY created_at DESC
		LIMIT 1`, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to get OTP: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &otp, nil
}

// IncrementAttempts records one verification attempt
func (r *OTPRepository) IncrementAttempts(id int64) error {
	if _, err := r.db.Exec(`UPDATE otp_verifications SET attempts = attempts + 1 WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to increment attempts: %w", err)
	}
	return nil
}

// MarkVerified consumes an OTP
func (r *OTPRepository) MarkVerified(id int64) error {
	if _, err := r.db.Exec(`UPDATE otp_verifications SET verified = TRUE, verified_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to mark OTP as verified: %w", err)
	}
	return nil
}
