package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroventures/sourcehub-backend/pkg/config"
	apperrors "github.com/retroventures/sourcehub-backend/pkg/errors"
	"github.com/retroventures/sourcehub-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "sourcehub-test",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	now := time.Now()

	raw, expiresAt, err := MintAccessToken(cfg, AccessTokenPayload{UserID: userID, Role: enums.UserRoleSourcer}, now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(30*time.Minute), expiresAt, time.Second)

	claims, err := ParseAccessToken(cfg, raw)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, enums.UserRoleSourcer, claims.Role)
	assert.Equal(t, cfg.Issuer, claims.Issuer)
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	raw, _, err := MintAccessToken(cfg, AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRoleAdmin}, time.Now())
	require.NoError(t, err)

	other := cfg
	other.Secret = "different-secret"
	_, err = ParseAccessToken(other, raw)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code())
}

func TestParseAccessToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	raw, _, err := MintAccessToken(cfg, AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRolePurchaser}, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, raw)
	require.Error(t, err)
}

func TestParseAccessToken_WrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	raw, _, err := MintAccessToken(cfg, AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRoleManager}, time.Now())
	require.NoError(t, err)

	other := cfg
	other.Issuer = "someone-else"
	_, err = ParseAccessToken(other, raw)
	require.Error(t, err)
}

func TestMintAccessToken_MissingSecret(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Secret = ""
	_, _, err := MintAccessToken(cfg, AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRoleSourcer}, time.Now())
	require.Error(t, err)
}
