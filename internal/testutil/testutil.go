// internal/testutil/testutil.go
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stagefolio/stagefolio-backend/internal/database"
	"github.com/stagefolio/stagefolio-backend/internal/models"
)

var dbCounter int64

// OpenTestDB returns an isolated in-memory database with the full schema,
// including the partial unique index the claim engine depends on. SQLite
// enforces the same index semantics as postgres here, so unique-violation
// paths behave identically.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database with a shared cache, so every pooled
	// connection sees the same data. The counter keeps tests isolated.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.RunMigrations(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username string, userType models.UserType) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		UserType: userType,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("Testpass123!"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateAdmin(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	return CreateUser(t, db, username, models.UserTypeAdmin)
}

// ProfileOption mutates a profile before it is persisted.
type ProfileOption func(*models.DanceProfile)

func WithOwner(ownerID uuid.UUID) ProfileOption {
	return func(p *models.DanceProfile) { p.OwnerID = &ownerID }
}

func WithContact(email, phone string) ProfileOption {
	return func(p *models.DanceProfile) {
		p.ContactEmail = email
		if phone != "" {
			p.ContactPhone = &phone
		}
	}
}

func CreateProfile(t *testing.T, db *gorm.DB, slug string, opts ...ProfileOption) *models.DanceProfile {
	t.Helper()

	profile := &models.DanceProfile{
		Slug:        slug,
		DisplayName: "Profile " + slug,
		ProfileType: models.ProfileTypeSolo,
	}
	for _, opt := range opts {
		opt(profile)
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}
