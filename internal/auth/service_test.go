package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgauth "github.com/retroventures/sourcehub-backend/pkg/auth"
	"github.com/retroventures/sourcehub-backend/pkg/config"
	"github.com/retroventures/sourcehub-backend/pkg/db/models"
	"github.com/retroventures/sourcehub-backend/pkg/enums"
	pkgerrors "github.com/retroventures/sourcehub-backend/pkg/errors"
	"github.com/retroventures/sourcehub-backend/pkg/security"
)

type stubAuthUserRepo struct {
	byEmail map[string]*models.User
}

func (r *stubAuthUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAuthUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *stubAuthUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	for _, user := range r.byEmail {
		if user.ID == id {
			user.LastLoginAt = &at
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "sourcehub-test",
		ExpirationMinutes: 15,
	}
}

func seedUser(t *testing.T, repo *stubAuthUserRepo, email, password string, active bool) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	require.NoError(t, err)
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hash,
		Role:         enums.UserRoleSourcer,
		IsActive:     active,
	}
	repo.byEmail[email] = user
	return user
}

func TestLogin_Success(t *testing.T) {
	repo := &stubAuthUserRepo{byEmail: map[string]*models.User{}}
	user := seedUser(t, repo, "sourcer@example.com", "s0urce-hub!", true)
	svc, err := NewService(repo, testJWTConfig())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Sourcer@Example.COM ",
		Password: "s0urce-hub!",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotNil(t, resp.User.LastLoginAt)
	assert.NotNil(t, repo.byEmail["sourcer@example.com"].LastLoginAt)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, enums.UserRoleSourcer, claims.Role)
	assert.WithinDuration(t, resp.ExpiresAt, time.Now().Add(15*time.Minute), 5*time.Second)
}

func TestLogin_WrongPasswordUnauthorized(t *testing.T) {
	repo := &stubAuthUserRepo{byEmail: map[string]*models.User{}}
	seedUser(t, repo, "sourcer@example.com", "s0urce-hub!", true)
	svc, err := NewService(repo, testJWTConfig())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "sourcer@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLogin_UnknownEmailUnauthorized(t *testing.T) {
	repo := &stubAuthUserRepo{byEmail: map[string]*models.User{}}
	svc, err := NewService(repo, testJWTConfig())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLogin_InactiveUserUnauthorized(t *testing.T) {
	repo := &stubAuthUserRepo{byEmail: map[string]*models.User{}}
	seedUser(t, repo, "disabled@example.com", "s0urce-hub!", false)
	svc, err := NewService(repo, testJWTConfig())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "disabled@example.com",
		Password: "s0urce-hub!",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestCurrentUser_DisabledAccountUnauthorized(t *testing.T) {
	repo := &stubAuthUserRepo{byEmail: map[string]*models.User{}}
	user := seedUser(t, repo, "disabled@example.com", "s0urce-hub!", false)
	svc, err := NewService(repo, testJWTConfig())
	require.NoError(t, err)

	_, err = svc.CurrentUser(context.Background(), user.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestCurrentUser_ReturnsProfile(t *testing.T) {
	repo := &stubAuthUserRepo{byEmail: map[string]*models.User{}}
	user := seedUser(t, repo, "me@example.com", "s0urce-hub!", true)
	svc, err := NewService(repo, testJWTConfig())
	require.NoError(t, err)

	dto, err := svc.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, dto.Email)
	assert.Equal(t, user.Role, dto.Role)
}
