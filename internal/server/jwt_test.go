package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/config"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(_ *testing.T, expirationHours int) *JWTService {
	cfg := &config.JWTConfig{
		Secret:              testJWTSecret,
		ExpirationHours:     expirationHours,
		ResumeAccessMinutes: 30,
	}
	return NewJWTService(cfg)
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()

	token, err := service.GenerateToken(userID)
	require.NoError(t, err)

	// Test token format is valid JWT (three parts separated by dots)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_ValidateToken_Errors(t *testing.T) {
	service := setupTestJWTService(t, 24)
	other := NewJWTService(&config.JWTConfig{Secret: "another-secret-key-that-is-long-enough", ExpirationHours: 24})

	foreign, err := other.GenerateToken(uuid.New())
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	expiredToken, err := expired.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{})
	noUserToken, err := noUser.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.New()})
	unsignedToken, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr string
	}{
		{"empty", "", "token string is empty"},
		{"malformed", "not.a.jwt", "malformed token"},
		{"wrong secret", foreign, "invalid token signature"},
		{"expired", expiredToken, "token expired"},
		{"no user", noUserToken, "token has no user"},
		{"none algorithm", unsignedToken, "failed to parse token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestJWTService_ResumeAccessToken(t *testing.T) {
	service := setupTestJWTService(t, 24)
	resumeID := uuid.New()

	token, err := service.GenerateResumeAccessToken(resumeID)
	require.NoError(t, err)

	assert.NoError(t, service.ValidateResumeAccessToken(token, resumeID))
	assert.Error(t, service.ValidateResumeAccessToken(token, uuid.New()), "token unlocks only its resume")

	_, err = service.ValidateToken(token)
	assert.Error(t, err, "access token is not a user token")

	userToken, err := service.GenerateToken(uuid.New())
	require.NoError(t, err)
	assert.Error(t, service.ValidateResumeAccessToken(userToken, resumeID), "user token does not unlock a resume")
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, 1)
	userID := uuid.New()

	token, err := service.GenerateToken(userID)
	require.NoError(t, err)

	getter, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, getter.GetUserID())
}
