package service

import (
	"testing"
	"time"

	"formeo_backend/internal/config"
	"formeo_backend/internal/model"
	"formeo_backend/internal/repository"
	"formeo_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthService(t *testing.T) *AuthService {
	db := setupTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupAuthService(t)

	user := &model.User{
		Name:     "Claire Martin",
		Email:    "claire@example.com",
		Password: "motdepasse1",
	}
	require.NoError(t, svc.Register(user))
	assert.Equal(t, model.Trainee, user.Role)
	assert.NotEqual(t, "motdepasse1", user.Password)

	token, err := svc.Login("claire@example.com", "motdepasse1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Trainee, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := setupAuthService(t)

	require.NoError(t, svc.Register(&model.User{Name: "A", Email: "dup@example.com", Password: "password1"}))
	err := svc.Register(&model.User{Name: "B", Email: "dup@example.com", Password: "password2"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginFailures(t *testing.T) {
	svc := setupAuthService(t)

	require.NoError(t, svc.Register(&model.User{Name: "C", Email: "c@example.com", Password: "password1"}))

	_, err := svc.Login("c@example.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "password1")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	var user model.User
	require.NoError(t, svc.UserRepo.DB.Where("email = ?", "c@example.com").First(&user).Error)
	user.Disabled = true
	require.NoError(t, svc.UserRepo.Update(&user))

	_, err = svc.Login("c@example.com", "password1")
	assert.ErrorIs(t, err, util.ErrAccountDisabled)
}
