package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/authz"
	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
	"github.com/circleops/salesops-backend/internal/utils"
	"github.com/circleops/salesops-backend/pkg/jwt"
	"github.com/circleops/salesops-backend/pkg/sms"
	"github.com/circleops/salesops-backend/pkg/validator"
)

// AuthService logs employees in by phone OTP and manages their tokens
type AuthService struct {
	employees     *database.EmployeeRepository
	refreshTokens *database.RefreshTokenRepository
	otp           *OTPService
	jwt           *jwt.Service
	gateway       sms.Gateway
	phoneLimiter  *RateLimitService
	phone         *validator.PhoneValidator
	devMode       bool
	logger        *logrus.Logger
}

// NewAuthService creates a new auth service. In devMode the OTP is echoed
// back in the sendOTP response.
func NewAuthService(
	employees *database.EmployeeRepository,
	refreshTokens *database.RefreshTokenRepository,
	otp *OTPService,
	jwtService *jwt.Service,
	gateway sms.Gateway,
	phoneLimiter *RateLimitService,
	devMode bool,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		employees:     employees,
		refreshTokens: refreshTokens,
		otp:           otp,
		jwt:           jwtService,
		gateway:       gateway,
		phoneLimiter:  phoneLimiter,
		phone:         validator.NewPhoneValidator(),
		devMode:       devMode,
		logger:        logger,
	}
}

// SessionFromEmployee builds the request session for an account
func SessionFromEmployee(e *models.Employee) authz.Session {
	return authz.Session{
		EmployeeID: e.ID,
		PersNo:     e.PersNo,
		Role:       e.Role,
		Circle:     e.Circle,
	}
}

// SessionFromClaims builds the request session from a validated access token
func SessionFromClaims(c *jwt.Claims) authz.Session {
	return authz.Session{
		EmployeeID: c.EmployeeID,
		PersNo:     c.PersNo,
		Role:       models.ParseRole(c.Role),
		Circle:     c.Circle,
	}
}

// activeEmployeeByPhone returns the active account for a validated phone
func (s *AuthService) activeEmployeeByPhone(rawPhone string) (string, *models.Employee, error) {
	phone, err := s.phone.Validate(rawPhone)
	if err != nil {
		return "", nil, errBadRequest("%v", err)
	}
	employee, err := s.employees.GetByPhone(phone)
	if err != nil {
		return "", nil, errInternal("failed to look up employee", err)
	}
	if employee == nil {
		return "", nil, errNotFound("employee")
	}
	if !employee.IsActive {
		return "", nil, errForbidden("employee account is inactive")
	}
	return phone, employee, nil
}

// SendOTP issues a login code to an active employee's phone
func (s *AuthService) SendOTP(rawPhone, ipAddress string) (*models.SendOTPResponse, error) {
	phone, _, err := s.activeEmployeeByPhone(rawPhone)
	if err != nil {
		return nil, err
	}
	if s.phoneLimiter != nil {
		if rlErr := s.phoneLimiter.Reserve(phone); rlErr != nil {
			return nil, errRateLimited("too many OTP requests for this phone, try again later")
		}
	}

	code, err := s.otp.GenerateOTP(phone, ipAddress)
	if err != nil {
		return nil, errInternal("failed to generate OTP", err)
	}
	ref, err := s.gateway.SendOTP(phone, code)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"phone":   phone,
			"gateway": s.gateway.Name(),
		}).WithError(err).Error("failed to send OTP")
		return nil, errInternal("failed to send OTP", err)
	}

	s.logger.WithFields(logrus.Fields{
		"phone":   phone,
		"gateway": s.gateway.Name(),
		"ref":     ref,
	}).Info("OTP sent")

	resp := &models.SendOTPResponse{
		Message:   "OTP sent successfully",
		ExpiresIn: int(s.otp.Expiry().Seconds()),
	}
	if s.devMode {
		resp.OTP = code
	}
	return resp, nil
}

// VerifyOTP checks the code and issues an access/refresh token pair
func (s *AuthService) VerifyOTP(rawPhone, code, userAgent, ipAddress string) (*models.AuthResponse, error) {
	phone, employee, err := s.activeEmployeeByPhone(rawPhone)
	if err != nil {
		return nil, err
	}

	if err := s.otp.ValidateOTP(phone, code); err != nil {
		switch {
		case errors.Is(err, ErrNoOTPFound),
			errors.Is(err, ErrOTPExpired),
			errors.Is(err, ErrOTPInvalid),
			errors.Is(err, ErrMaxAttemptsExceeded):
			s.logger.WithFields(logrus.Fields{
				"phone":  phone,
				"ip":     ipAddress,
				"reason": err.Error(),
			}).Warn("OTP verification failed")
			return nil, errUnauthorized(err.Error())
		default:
			return nil, errInternal("failed to verify OTP", err)
		}
	}

	return s.issueTokens(employee, userAgent, ipAddress)
}

// Refresh rotates a refresh token: the old one is revoked and a new pair issued
func (s *AuthService) Refresh(refreshToken, userAgent, ipAddress string) (*models.AuthResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errUnauthorized("invalid refresh token")
	}
	stored, err := s.refreshTokens.Get(refreshToken)
	if err != nil {
		return nil, errInternal("failed to load refresh token", err)
	}
	if stored == nil || stored.Revoked || time.Now().After(stored.ExpiresAt) || stored.EmployeeID != claims.EmployeeID {
		return nil, errUnauthorized("refresh token is revoked or expired")
	}

	employee, err := s.employees.GetByID(claims.EmployeeID)
	if err != nil {
		return nil, errInternal("failed to load employee", err)
	}
	if employee == nil || !employee.IsActive {
		return nil, errUnauthorized("employee account is inactive")
	}

	if err := s.refreshTokens.Revoke(refreshToken); err != nil {
		return nil, errInternal("failed to revoke refresh token", err)
	}
	return s.issueTokens(employee, userAgent, ipAddress)
}

// Logout revokes one refresh token of the caller
func (s *AuthService) Logout(sess authz.Session, refreshToken string) error {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil || claims.EmployeeID != sess.EmployeeID {
		return errUnauthorized("invalid refresh token")
	}
	if err := s.refreshTokens.Revoke(refreshToken); err != nil {
		return errInternal("failed to revoke refresh token", err)
	}
	return nil
}

// LogoutAll revokes every refresh token of the caller
func (s *AuthService) LogoutAll(sess authz.Session) error {
	if err := s.refreshTokens.RevokeAll(sess.EmployeeID); err != nil {
		return errInternal("failed to revoke refresh tokens", err)
	}
	return nil
}

// SessionForEmployee loads the session of an active account by ID. Used for
// the legacy x-employee-id identity.
func (s *AuthService) SessionForEmployee(id uuid.UUID) (authz.Session, error) {
	employee, err := s.employees.GetByID(id)
	if err != nil {
		return authz.Session{}, errInternal("failed to load employee", err)
	}
	if employee == nil || !employee.IsActive {
		return authz.Session{}, errUnauthorized("unknown or inactive employee")
	}
	return SessionFromEmployee(employee), nil
}

// ValidateAccessToken turns a bearer token into a session
func (s *AuthService) ValidateAccessToken(token string) (authz.Session, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return authz.Session{}, errUnauthorized("invalid or expired token")
	}
	return SessionFromClaims(claims), nil
}

// IsTokenExpired reports whether an access token carries a past exp claim
func (s *AuthService) IsTokenExpired(token string) bool {
	return s.jwt.IsTokenExpired(token)
}

// Me returns the caller's account and the actions their session role grants
func (s *AuthService) Me(sess authz.Session) (*models.Profile, error) {
	employee, err := s.employees.GetByID(sess.EmployeeID)
	if err != nil {
		return nil, errInternal("failed to load employee", err)
	}
	if employee == nil {
		return nil, errNotFound("employee")
	}

	permissions := []string{}
	for _, action := range authz.ActionsFor(sess.Role) {
		permissions = append(permissions, string(action))
	}
	return &models.Profile{Employee: *employee, Permissions: permissions}, nil
}

func (s *AuthService) issueTokens(employee *models.Employee, userAgent, ipAddress string) (*models.AuthResponse, error) {
	accessToken, err := s.jwt.GenerateAccessToken(jwt.Identity{
		EmployeeID: employee.ID,
		PersNo:     employee.PersNo,
		Role:       string(employee.Role),
		Circle:     employee.Circle,
	})
	if err != nil {
		return nil, errInternal("failed to generate access token", err)
	}
	refreshToken, err := s.jwt.GenerateRefreshToken(employee.ID)
	if err != nil {
		return nil, errInternal("failed to generate refresh token", err)
	}

	device := utils.ParseUserAgent(userAgent)
	expiresAt := time.Now().Add(s.jwt.RefreshTokenExpiry())
	if err := s.refreshTokens.Store(employee.ID, refreshToken, device.DeviceType, ipAddress, expiresAt); err != nil {
		return nil, errInternal("failed to store refresh token", err)
	}

	s.logger.WithFields(logrus.Fields{
		"employee_id": employee.ID,
		"role":        employee.Role,
		"device":      device.String(),
	}).Info("tokens issued")

	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.jwt.AccessTokenExpiry().Seconds()),
		Employee:     employee,
	}, nil
}
