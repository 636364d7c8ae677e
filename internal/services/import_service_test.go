// internal/services/import_service_test.go
package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagefolio/stagefolio-backend/internal/models"
	"github.com/stagefolio/stagefolio-backend/internal/testutil"
)

const importHeader = "slug,display_name,profile_type,contact_email,contact_phone,city,styles\n"

func TestImportProfiles(t *testing.T) {
	db := testutil.OpenTestDB(t)
	service := NewImportService(db, NewAuthorizationService(db))
	admin := testutil.CreateAdmin(t, db, "admin")

	csv := importHeader +
		"luna-crew,Luna Crew,team,luna@example.com,0912345678,Taipei,hip-hop;popping\n" +
		"solo-sam,Solo Sam,solo,,,,\n"

	result, err := service.ImportProfiles(admin.ID, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)

	var profile models.DanceProfile
	require.NoError(t, db.Where("slug = ?", "luna-crew").First(&profile).Error)
	assert.Nil(t, profile.OwnerID, "imported profiles must be claimable")
	assert.Equal(t, "luna@example.com", profile.ContactEmail)
	require.NotNil(t, profile.ContactPhone)
	assert.Equal(t, "0912345678", *profile.ContactPhone)
}

func TestImportProfilesBadRowsAreSkipped(t *testing.T) {
	db := testutil.OpenTestDB(t)
	service := NewImportService(db, NewAuthorizationService(db))
	admin := testutil.CreateAdmin(t, db, "admin")
	testutil.CreateProfile(t, db, "taken-crew")

	csv := importHeader +
		"good-crew,Good Crew,team,,,,\n" +
		",Missing Slug,solo,,,,\n" +
		"bad-type,Bad Type,quartet,,,,\n" +
		"taken-crew,Duplicate Slug,solo,,,,\n"

	result, err := service.ImportProfiles(admin.ID, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, 3, result.Errors[0].Line)
}

func TestImportProfilesHeaderValidation(t *testing.T) {
	db := testutil.OpenTestDB(t)
	service := NewImportService(db, NewAuthorizationService(db))
	admin := testutil.CreateAdmin(t, db, "admin")

	_, err := service.ImportProfiles(admin.ID, strings.NewReader("wrong,header\n"))
	require.Error(t, err)
}

func TestImportProfilesRequiresAdmin(t *testing.T) {
	db := testutil.OpenTestDB(t)
	service := NewImportService(db, NewAuthorizationService(db))
	dancer := testutil.CreateUser(t, db, "luna", models.UserTypeDancer)

	_, err := service.ImportProfiles(dancer.ID, strings.NewReader(importHeader))
	require.ErrorIs(t, err, ErrForbidden)
}
