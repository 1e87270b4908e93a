package auth

import (
	"testing"
	"time"

	"poolservice_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("pool-secret-1")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("pool-secret-1", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.Error(t, ValidatePassword("short"))
}

func TestGeneratePassword(t *testing.T) {
	a, err := GeneratePassword(12)
	require.NoError(t, err)
	b, err := GeneratePassword(12)
	require.NoError(t, err)

	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
	assert.NoError(t, ValidatePassword(a))
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	user := &models.User{BaseModel: models.BaseModel{ID: "user-1"}, Email: "tech@example.com", Role: models.UserRoleTechnician}

	token, exp, err := tm.GenerateToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.UserRoleTechnician, claims.Role)
}

func TestTokenManager_RejectsForeignAndExpired(t *testing.T) {
	user := &models.User{BaseModel: models.BaseModel{ID: "user-1"}, Role: models.UserRoleAdmin}

	other := NewTokenManager("other", time.Hour)
	token, _, err := other.GenerateToken(user)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenManager("secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err = expired.GenerateToken(user)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
