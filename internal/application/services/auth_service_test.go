package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/config"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

type fakeUserRepo struct {
	users map[string]*entities.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) error {
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			copy := *user
			return &copy, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entities.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	copy := *user
	return &copy, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entities.User, error) {
	var out []*entities.User
	for _, user := range r.users {
		copy := *user
		out = append(out, &copy)
	}
	return out, nil
}

func newTestAuthService(t *testing.T) (*AuthService, *entities.User) {
	t.Helper()

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	user := &entities.User{
		ID:           uuid.New(),
		Username:     "sparky",
		PasswordHash: hash,
		DisplayName:  "Sparky",
		Role:         entities.UserRoleMember,
	}

	repo := &fakeUserRepo{users: map[string]*entities.User{user.Username: user}}
	svc := NewAuthService(repo, config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: time.Hour,
		Issuer:    "taskboard-test",
	}, logger.NewNop())

	return svc, user
}

func TestLoginAndValidateToken(t *testing.T) {
	svc, user := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), ports.LoginRequest{
		Username: "sparky",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Empty(t, resp.User.PasswordHash)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "sparky", claims.Username)
	assert.Equal(t, entities.UserRoleMember, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), ports.LoginRequest{Username: "sparky", Password: "wrong"})
	assert.Error(t, err)

	_, err = svc.Login(context.Background(), ports.LoginRequest{Username: "unknown", Password: "correct horse"})
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
