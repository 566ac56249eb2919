package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
)

func testJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key-that-is-long-enough",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "trashmob-test",
	})
}

func testUser() *models.User {
	user := &models.User{
		UserName:    "jordan",
		Email:       "jordan@example.com",
		IsSiteAdmin: true,
	}
	user.ID = uuid.New()
	return user
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "correct horse battery"))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := testJWTService(time.Hour)
	user := testUser()

	access, refresh, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.True(t, claims.IsSiteAdmin)
}

func TestValidateTokenRejectsGarbageAndWrongKey(t *testing.T) {
	svc := testJWTService(time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewJWTService(JWTConfig{
		SecretKey:       "a-different-secret-key-entirely",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "trashmob-test",
	})
	access, _, err := other.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenIsReportedAsExpired(t *testing.T) {
	svc := testJWTService(-time.Minute)

	access, _, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRefreshTokenCarriesSubject(t *testing.T) {
	svc := testJWTService(time.Hour)
	user := testUser()

	_, refresh, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	userID, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	_, err = svc.ValidateRefreshToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
