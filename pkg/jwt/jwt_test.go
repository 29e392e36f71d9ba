package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "test-access-secret-key-for-testing-purposes"
	testRefreshSecret = "test-refresh-secret-key-for-testing-purposes"
)

func testIdentity() Identity {
	return Identity{
		EmployeeID: uuid.New(),
		PersNo:     "198765",
		Role:       "DGM",
		Circle:     "KERALA",
	}
}

func TestGenerateAccessToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	id := testIdentity()

	token, err := service.GenerateAccessToken(id)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.EmployeeID, claims.EmployeeID)
	assert.Equal(t, id.PersNo, claims.PersNo)
	assert.Equal(t, id.Role, claims.Role)
	assert.Equal(t, id.Circle, claims.Circle)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, "circle-salesops", claims.Issuer)
}

func TestGenerateRefreshToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	employeeID := uuid.New()

	first, err := service.GenerateRefreshToken(employeeID)
	require.NoError(t, err)
	second, err := service.GenerateRefreshToken(employeeID)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	claims, err := service.ValidateRefreshToken(first)
	require.NoError(t, err)
	assert.Equal(t, employeeID, claims.EmployeeID)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidate_WrongTokenType(t *testing.T) {
	service := NewService(testAccessSecret, testAccessSecret, time.Hour, 24*time.Hour)

	refresh, err := service.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(refresh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token type")
}

func TestValidate_WrongSecret(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	other := NewService("another-secret", testRefreshSecret, time.Hour, 24*time.Hour)

	token, err := other.GenerateAccessToken(testIdentity())
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidate_RejectsNoneAlgorithm(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)

	claims := Claims{EmployeeID: uuid.New(), TokenType: AccessToken}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(signed)
	assert.Error(t, err)
}

func TestIsTokenExpired(t *testing.T) {
	expired := NewService(testAccessSecret, testRefreshSecret, -time.Minute, time.Hour)
	token, err := expired.GenerateAccessToken(testIdentity())
	require.NoError(t, err)

	assert.True(t, expired.IsTokenExpired(token))
	_, err = expired.ValidateAccessToken(token)
	assert.Error(t, err)

	fresh := NewService(testAccessSecret, testRefreshSecret, time.Hour, time.Hour)
	token, err = fresh.GenerateAccessToken(testIdentity())
	require.NoError(t, err)
	assert.False(t, fresh.IsTokenExpired(token))
	assert.False(t, fresh.IsTokenExpired("garbage"))
}
