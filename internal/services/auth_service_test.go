// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stagefolio/stagefolio-backend/internal/config"
	"github.com/stagefolio/stagefolio-backend/internal/models"
	"github.com/stagefolio/stagefolio-backend/internal/testutil"
)

func newTestAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	}
	return NewAuthService(db, cfg), db
}

func TestRegisterAndLogin(t *testing.T) {
	service, _ := newTestAuthService(t)

	resp, err := service.Register(&RegisterRequest{
		Username: "luna",
		Email:    "luna@example.com",
		Password: "Testpass123!",
		UserType: models.UserTypeDancer,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, models.UserTypeDancer, resp.User.UserType)

	login, err := service.Login(&LoginRequest{Email: "luna@example.com", Password: "Testpass123!"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
	assert.NotNil(t, login.User)

	_, err = service.Login(&LoginRequest{Email: "luna@example.com", Password: "wrong"})
	require.Error(t, err)
}

func TestRegisterRejectsAdminType(t *testing.T) {
	service, _ := newTestAuthService(t)

	_, err := service.Register(&RegisterRequest{
		Username: "sneaky",
		Email:    "sneaky@example.com",
		Password: "Testpass123!",
		UserType: models.UserTypeAdmin,
	})
	require.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, db := newTestAuthService(t)
	testutil.CreateUser(t, db, "luna", models.UserTypeDancer)

	_, err := service.Register(&RegisterRequest{
		Username: "luna2",
		Email:    "luna@example.com",
		Password: "Testpass123!",
		UserType: models.UserTypeDancer,
	})
	require.Error(t, err)
}

func TestLoginSuspendedUser(t *testing.T) {
	service, db := newTestAuthService(t)
	user := testutil.CreateUser(t, db, "luna", models.UserTypeDancer)
	require.NoError(t, db.Model(user).Update("status", models.UserStatusSuspended).Error)

	_, err := service.Login(&LoginRequest{Email: "luna@example.com", Password: "Testpass123!"})
	require.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	service, _ := newTestAuthService(t)

	resp, err := service.Register(&RegisterRequest{
		Username: "luna",
		Email:    "luna@example.com",
		Password: "Testpass123!",
		UserType: models.UserTypeDancer,
	})
	require.NoError(t, err)

	refreshed, err := service.RefreshToken(&RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)

	_, err = service.RefreshToken(&RefreshRequest{RefreshToken: "garbage"})
	require.Error(t, err)
}
