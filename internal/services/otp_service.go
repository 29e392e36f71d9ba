package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/circleops/salesops-backend/internal/config"
	"github.com/circleops/salesops-backend/internal/database"
)

const (
	// DefaultOTPLength is the length of the OTP code
	DefaultOTPLength = 6

	// DefaultOTPExpiry is how long an OTP is valid
	DefaultOTPExpiry = 5 * time.Minute

	// DefaultMaxOTPAttempts is the maximum number of validation attempts
	DefaultMaxOTPAttempts = 3
)

var (
	// ErrOTPExpired indicates the OTP has expired
	ErrOTPExpired = errors.New("OTP has expired")

	// ErrOTPInvalid indicates the OTP is incorrect
	ErrOTPInvalid = errors.New("invalid OTP code")

	// ErrMaxAttemptsExceeded indicates too many failed validation attempts
	ErrMaxAttemptsExceeded = errors.New("maximum OTP validation attempts exceeded")

	// ErrNoOTPFound indicates no open OTP exists for the phone number
	ErrNoOTPFound = errors.New("no OTP found for this phone number")
)

// OTPService generates and checks one-time passwords. Only a bcrypt hash of
// each code is stored.
type OTPService struct {
	otps        *database.OTPRepository
	length      int
	expiry      time.Duration
	maxAttempts int
	hashCost    int
	now         func() time.Time
}

// NewOTPService creates a new OTP service
func NewOTPService(otps *database.OTPRepository, cfg config.OTPConfig) *OTPService {
	s := &OTPService{
		otps:        otps,
		length:      cfg.Length,
		expiry:      time.Duration(cfg.ExpiryMinutes) * time.Minute,
		maxAttempts: cfg.MaxAttempts,
		hashCost:    bcrypt.DefaultCost,
		now:         time.Now,
	}
	if s.length < 4 || s.length > 10 {
		s.length = DefaultOTPLength
	}
	if s.expiry <= 0 {
		s.expiry = DefaultOTPExpiry
	}
	if s.maxAttempts < 1 {
		s.maxAttempts = DefaultMaxOTPAttempts
	}
	return s
}

// Expiry returns how long a generated OTP stays valid
func (s *OTPService) Expiry() time.Duration {
	return s.expiry
}

// GenerateOTP creates a new code for phone, replacing any open one
func (s *OTPService) GenerateOTP(phone, ipAddress string) (string, error) {
	otp, err := generateRandomOTP(s.length)
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash OTP: %w", err)
	}
	if err := s.otps.Replace(phone, string(hash), s.now().Add(s.expiry), s.maxAttempts, ipAddress); err != nil {
		return "", err
	}
	return otp, nil
}

// ValidateOTP checks code against the open OTP for phone and consumes it on
// success. Every check counts as one attempt.
func (s *OTPService) ValidateOTP(phone, code string) error {
	record, err := s.otps.GetOpen(phone)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrNoOTPFound
	}
	if s.now().After(record.ExpiresAt) {
		return ErrOTPExpired
	}
	if record.Attempts >= record.MaxAttempts {
		return ErrMaxAttemptsExceeded
	}

	if err := s.otps.IncrementAttempts(record.ID); err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(record.OTPHash), []byte(code)) != nil {
		return ErrOTPInvalid
	}
	return s.otps.MarkVerified(record.ID)
}

// generateRandomOTP generates a cryptographically secure numeric OTP
func generateRandomOTP(length int) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
