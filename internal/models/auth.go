package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NullString wraps sql.NullString to provide proper JSON marshaling
type NullString struct {
	sql.NullString
}

// NewNullString returns a valid NullString unless s is empty
func NewNullString(s string) NullString {
	return NullString{sql.NullString{String: s, Valid: s != ""}}
}

// MarshalJSON implements json.Marshaler
func (ns NullString) MarshalJSON() ([]byte, error) {
	if ns.Valid {
		return json.Marshal(ns.String)
	}
	return json.Marshal(nil)
}

// UnmarshalJSON implements json.Unmarshaler
func (ns *NullString) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ns.Valid = s != nil
	if s != nil {
		ns.String = *s
	}
	return nil
}

// OTPVerification is a pending phone login; only a bcrypt hash of the code is kept
type OTPVerification struct {
	ID          int64        `db:"id" json:"id"`
	Phone       string       `db:"phone" json:"phone"`
	OTPHash     string       `db:"otp_hash" json:"-"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	ExpiresAt   time.Time    `db:"expires_at" json:"expires_at"`
	Verified    bool         `db:"verified" json:"verified"`
	VerifiedAt  sql.NullTime `db:"verified_at" json:"-"`
	Attempts    int          `db:"attempts" json:"attempts"`
	MaxAttempts int          `db:"max_attempts" json:"max_attempts"`
	IPAddress   NullString   `db:"ip_address" json:"ip_address,omitempty"`
}

// RefreshToken is a persisted refresh token, stored as a SHA-256 hash
type RefreshToken struct {
	ID         uuid.UUID    `db:"id" json:"id"`
	EmployeeID uuid.UUID    `db:"employee_id" json:"employee_id"`
	TokenHash  string       `db:"token_hash" json:"-"`
	DeviceType NullString   `db:"device_type" json:"device_type,omitempty"`
	IPAddress  NullString   `db:"ip_address" json:"ip_address,omitempty"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
	ExpiresAt  time.Time    `db:"expires_at" json:"expires_at"`
	LastUsedAt sql.NullTime `db:"last_used_at" json:"-"`
	Revoked    bool         `db:"revoked" json:"revoked"`
}

// SendOTPRequest is the body of auth.sendOTP
type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required,mobile"`
}

// SendOTPResponse is returned after an OTP is dispatched
type SendOTPResponse struct {
	Message   string `json:"message"`
	ExpiresIn int    `json:"expires_in"`
	OTP       string `json:"otp,omitempty"` // dev mode only
}

// VerifyOTPRequest is the body of auth.verifyOTP
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required,mobile"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

// RefreshTokenRequest is the body of auth.refresh and auth.logout
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse carries issued tokens and the employee profile
type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	Employee     *Employee `json:"employee,omitempty"`
}

// Profile is the caller's account plus the actions their role grants
type Profile struct {
	Employee
	Permissions []string `json:"permissions"`
}
