package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/retroventures/sourcehub-backend/pkg/config"
	"github.com/retroventures/sourcehub-backend/pkg/db/models"
	"github.com/retroventures/sourcehub-backend/pkg/enums"
	pkgerrors "github.com/retroventures/sourcehub-backend/pkg/errors"
	"github.com/retroventures/sourcehub-backend/pkg/pagination"
	"github.com/retroventures/sourcehub-backend/pkg/security"
)

type stubUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (r *stubUserRepo) WithTx(tx *gorm.DB) Repository { return r }

func (r *stubUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return user, nil
}

func (r *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(ctx context.Context, params pagination.Params) ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *stubUserRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "email":
			email := value.(string)
			for otherID, other := range r.users {
				if otherID != id && other.Email == email {
					return gorm.ErrDuplicatedKey
				}
			}
			user.Email = email
		case "password_hash":
			user.PasswordHash = value.(string)
		case "first_name":
			user.FirstName = value.(string)
		case "last_name":
			user.LastName = value.(string)
		case "role":
			user.Role = value.(enums.UserRole)
		case "is_active":
			user.IsActive = value.(bool)
		}
	}
	return nil
}

func (r *stubUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.LastLoginAt = &at
	return nil
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestUserService(t *testing.T) (Service, *stubUserRepo) {
	t.Helper()
	repo := newStubUserRepo()
	svc, err := NewService(repo, testPasswordConfig())
	require.NoError(t, err)
	return svc, repo
}

func TestCreate_HashesPasswordAndNormalizesEmail(t *testing.T) {
	svc, repo := newTestUserService(t)

	dto, err := svc.Create(context.Background(), CreateUserInput{
		Email:     "  Ana@Example.COM ",
		Password:  "s0urce-hub!",
		FirstName: "Ana",
		LastName:  "Reyes",
		Role:      enums.UserRoleSourcer,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", dto.Email)
	assert.True(t, dto.IsActive)

	stored := repo.users[dto.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s0urce-hub!", stored.PasswordHash)
	ok, err := security.VerifyPassword("s0urce-hub!", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreate_DuplicateEmailConflicts(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	input := CreateUserInput{
		Email:     "dup@example.com",
		Password:  "s0urce-hub!",
		FirstName: "First",
		LastName:  "User",
		Role:      enums.UserRolePurchaser,
	}
	_, err := svc.Create(ctx, input)
	require.NoError(t, err)

	_, err = svc.Create(ctx, input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestCreate_UnknownRoleRejected(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Create(context.Background(), CreateUserInput{
		Email:    "role@example.com",
		Password: "s0urce-hub!",
		Role:     enums.UserRole("superuser"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdate_PasswordChangeRehashes(t *testing.T) {
	svc, repo := newTestUserService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateUserInput{
		Email:    "rehash@example.com",
		Password: "old-password",
		Role:     enums.UserRoleManager,
	})
	require.NoError(t, err)
	oldHash := repo.users[dto.ID].PasswordHash

	newPassword := "new-password"
	_, err = svc.Update(ctx, dto.ID, UpdateUserInput{Password: &newPassword})
	require.NoError(t, err)

	newHash := repo.users[dto.ID].PasswordHash
	assert.NotEqual(t, oldHash, newHash)
	ok, err := security.VerifyPassword(newPassword, newHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdate_DeactivateUser(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateUserInput{
		Email:    "inactive@example.com",
		Password: "s0urce-hub!",
		Role:     enums.UserRoleSourcer,
	})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.Update(ctx, dto.ID, UpdateUserInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestUpdate_MissingUserNotFound(t *testing.T) {
	svc, _ := newTestUserService(t)

	role := enums.UserRoleAdmin
	_, err := svc.Update(context.Background(), uuid.New(), UpdateUserInput{Role: &role})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDelete_SelfDeletionRejected(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateUserInput{
		Email:    "self@example.com",
		Password: "s0urce-hub!",
		Role:     enums.UserRoleAdmin,
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, dto.ID, dto.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDelete_RemovesUser(t *testing.T) {
	svc, repo := newTestUserService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateUserInput{
		Email:    "target@example.com",
		Password: "s0urce-hub!",
		Role:     enums.UserRolePurchaser,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, uuid.New(), dto.ID))
	assert.NotContains(t, repo.users, dto.ID)
}
