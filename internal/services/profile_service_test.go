// internal/services/profile_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/stagefolio/stagefolio-backend/internal/models"
	"github.com/stagefolio/stagefolio-backend/internal/testutil"
)

type ProfileServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProfileService

	admin  *models.User
	dancer *models.User
	other  *models.User
}

func (s *ProfileServiceTestSuite) SetupTest() {
	s.db = testutil.OpenTestDB(s.T())
	s.service = NewProfileService(s.db, NewAuthorizationService(s.db))

	s.admin = testutil.CreateAdmin(s.T(), s.db, "admin")
	s.dancer = testutil.CreateUser(s.T(), s.db, "luna", models.UserTypeDancer)
	s.other = testutil.CreateUser(s.T(), s.db, "rival", models.UserTypeDancer)
}

func TestProfileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}

func (s *ProfileServiceTestSuite) TestCreateOwnedProfile() {
	profile, err := s.service.CreateProfile(s.dancer.ID, &CreateProfileRequest{
		Slug:        "luna-crew",
		DisplayName: "Luna Crew",
		ProfileType: models.ProfileTypeTeam,
		City:        "Taipei",
		Styles:      []string{"hip-hop", "popping"},
	})
	s.Require().NoError(err)
	s.Require().NotNil(profile.OwnerID)
	s.Equal(s.dancer.ID, *profile.OwnerID)
	s.True(profile.IsClaimed())
}

func (s *ProfileServiceTestSuite) TestCreateUnownedProfileRequiresAdmin() {
	req := &CreateProfileRequest{
		Slug:        "seeded-crew",
		DisplayName: "Seeded Crew",
		ProfileType: models.ProfileTypeSolo,
		Unowned:     true,
	}

	_, err := s.service.CreateProfile(s.dancer.ID, req)
	s.ErrorIs(err, ErrForbidden)

	profile, err := s.service.CreateProfile(s.admin.ID, req)
	s.Require().NoError(err)
	s.Nil(profile.OwnerID)
	s.False(profile.IsClaimed())
}

func (s *ProfileServiceTestSuite) TestCreateProfileSlugTaken() {
	testutil.CreateProfile(s.T(), s.db, "luna-crew")

	_, err := s.service.CreateProfile(s.dancer.ID, &CreateProfileRequest{
		Slug:        "luna-crew",
		DisplayName: "Duplicate",
		ProfileType: models.ProfileTypeSolo,
	})
	s.ErrorIs(err, ErrSlugTaken)
}

func (s *ProfileServiceTestSuite) TestGetProfileBySlug() {
	testutil.CreateProfile(s.T(), s.db, "luna-crew")

	profile, err := s.service.GetProfileBySlug("luna-crew")
	s.Require().NoError(err)
	s.Equal("luna-crew", profile.Slug)

	_, err = s.service.GetProfileBySlug("missing")
	s.ErrorIs(err, ErrProfileNotFound)
}

func (s *ProfileServiceTestSuite) TestUpdateProfileOwnership() {
	testutil.CreateProfile(s.T(), s.db, "luna-crew", testutil.WithOwner(s.dancer.ID))

	bio := "Street dance collective"
	updated, err := s.service.UpdateProfile("luna-crew", s.dancer.ID, &UpdateProfileRequest{Bio: &bio})
	s.Require().NoError(err)
	s.Equal(bio, updated.Bio)

	// Neither strangers nor unauthenticated owners of other profiles may edit
	_, err = s.service.UpdateProfile("luna-crew", s.other.ID, &UpdateProfileRequest{Bio: &bio})
	s.ErrorIs(err, ErrNotOwner)

	// Admins may edit any profile
	city := "Kaohsiung"
	_, err = s.service.UpdateProfile("luna-crew", s.admin.ID, &UpdateProfileRequest{City: &city})
	s.NoError(err)
}

func (s *ProfileServiceTestSuite) TestSearchProfilesUnclaimedFilter() {
	testutil.CreateProfile(s.T(), s.db, "claimed-crew", testutil.WithOwner(s.dancer.ID))
	testutil.CreateProfile(s.T(), s.db, "open-crew")

	unclaimed := true
	profiles, total, err := s.service.SearchProfiles(ProfileSearchParams{Unclaimed: &unclaimed})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Require().Len(profiles, 1)
	s.Equal("open-crew", profiles[0].Slug)
}

func (s *ProfileServiceTestSuite) TestSetVerification() {
	testutil.CreateProfile(s.T(), s.db, "luna-crew")

	_, err := s.service.SetVerification("luna-crew", s.dancer.ID, models.VerificationStatusVerified)
	s.ErrorIs(err, ErrForbidden)

	profile, err := s.service.SetVerification("luna-crew", s.admin.ID, models.VerificationStatusVerified)
	s.Require().NoError(err)
	s.Equal(models.VerificationStatusVerified, profile.VerificationStatus)
}
