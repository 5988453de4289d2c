package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/retroventures/sourcehub-backend/pkg/config"
	apperrors "github.com/retroventures/sourcehub-backend/pkg/errors"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// MintAccessToken signs a short-lived access token for the given user.
func MintAccessToken(cfg config.JWTConfig, payload AccessTokenPayload, now time.Time) (string, time.Time, error) {
	if cfg.Secret == "" {
		return "", time.Time{}, apperrors.New(apperrors.CodeInternal, "jwt secret is not configured")
	}

	expiresAt := now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute)
	claims := AccessTokenClaims{
		UserID: payload.UserID,
		Role:   payload.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   payload.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(apperrors.CodeInternal, err, "signing access token")
	}
	return signed, expiresAt, nil
}

// ParseAccessToken validates the signature, issuer and expiry of a token
// and returns its typed claims.
func ParseAccessToken(cfg config.JWTConfig, raw string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwtSigningMethod.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnauthorized, err, "invalid access token")
	}
	if !token.Valid {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "invalid access token")
	}
	if claims.UserID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "access token missing subject")
	}
	if !claims.Role.IsValid() {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "access token carries unknown role")
	}
	return claims, nil
}
