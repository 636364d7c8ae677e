// internal/services/claim_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/stagefolio/stagefolio-backend/internal/models"
	"github.com/stagefolio/stagefolio-backend/internal/testutil"
)

type ClaimServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ClaimService

	admin     *models.User
	requester *models.User
	other     *models.User
}

func (s *ClaimServiceTestSuite) SetupTest() {
	s.db = testutil.OpenTestDB(s.T())
	authz := NewAuthorizationService(s.db)
	s.service = NewClaimService(s.db, authz, nil)

	s.admin = testutil.CreateAdmin(s.T(), s.db, "admin")
	s.requester = testutil.CreateUser(s.T(), s.db, "luna", models.UserTypeDancer)
	s.other = testutil.CreateUser(s.T(), s.db, "rival", models.UserTypeDancer)
}

func TestClaimServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClaimServiceTestSuite))
}

func (s *ClaimServiceTestSuite) submit(slug string) (*models.ClaimRequest, error) {
	return s.service.SubmitClaim(s.requester.ID, &SubmitClaimRequest{
		ProfileSlug:  slug,
		ContactEmail: "luna@example.com",
	})
}

func (s *ClaimServiceTestSuite) TestSubmitClaim() {
	phone := "+886 912-345-678"
	testutil.CreateProfile(s.T(), s.db, "luna-crew",
		testutil.WithContact("Luna@Example.com", "0912345678"))

	claim, err := s.service.SubmitClaim(s.requester.ID, &SubmitClaimRequest{
		ProfileSlug:  "luna-crew",
		ContactEmail: "luna@example.com",
		ContactPhone: &phone,
	})
	s.Require().NoError(err)
	s.Equal(models.ClaimStatusPending, claim.Status)
	s.Equal(s.requester.ID, claim.RequesterID)
	s.NotNil(claim.Profile)
	s.Nil(claim.DecidedBy)
	s.Nil(claim.DecidedAt)

	// Match scoring is advisory and case/format-insensitive
	s.Require().NotNil(claim.EmailMatch)
	s.True(*claim.EmailMatch)
	s.Require().NotNil(claim.PhoneMatch)
	s.False(*claim.PhoneMatch)
}

func (s *ClaimServiceTestSuite) TestSubmitClaimMatchNotComputable() {
	// Profile has no contact info at all, so no match can be scored and
	// submission still goes through.
	testutil.CreateProfile(s.T(), s.db, "no-contact")

	claim, err := s.submit("no-contact")
	s.Require().NoError(err)
	s.Nil(claim.EmailMatch)
	s.Nil(claim.PhoneMatch)
	s.Equal(models.ClaimStatusPending, claim.Status)
}

func (s *ClaimServiceTestSuite) TestSubmitClaimProfileNotFound() {
	_, err := s.submit("no-such-profile")
	s.ErrorIs(err, ErrProfileNotFound)
}

func (s *ClaimServiceTestSuite) TestSubmitClaimAlreadyClaimed() {
	testutil.CreateProfile(s.T(), s.db, "owned-crew", testutil.WithOwner(s.other.ID))

	_, err := s.submit("owned-crew")
	s.ErrorIs(err, ErrAlreadyClaimed)
}

func (s *ClaimServiceTestSuite) TestSubmitClaimDuplicatePending() {
	testutil.CreateProfile(s.T(), s.db, "luna-crew")

	_, err := s.submit("luna-crew")
	s.Require().NoError(err)

	_, err = s.service.SubmitClaim(s.other.ID, &SubmitClaimRequest{
		ProfileSlug:  "luna-crew",
		ContactEmail: "rival@example.com",
	})
	s.ErrorIs(err, ErrDuplicatePendingClaim)
}

func (s *ClaimServiceTestSuite) TestPendingIndexBlocksConcurrentInsert() {
	// Two submissions racing past the service's fast-reject both reach
	// INSERT; the partial unique index must reject the second.
	profile := testutil.CreateProfile(s.T(), s.db, "race-crew")

	first := &models.ClaimRequest{
		ProfileID:             profile.ID,
		RequesterID:           s.requester.ID,
		RequesterContactEmail: "luna@example.com",
		Status:                models.ClaimStatusPending,
	}
	s.Require().NoError(s.db.Create(first).Error)

	second := &models.ClaimRequest{
		ProfileID:             profile.ID,
		RequesterID:           s.other.ID,
		RequesterContactEmail: "rival@example.com",
		Status:                models.ClaimStatusPending,
	}
	err := s.db.Create(second).Error
	s.Require().Error(err)
	s.True(isUniqueViolation(err))
}

func (s *ClaimServiceTestSuite) TestDecidedClaimDoesNotBlockNewPending() {
	testutil.CreateProfile(s.T(), s.db, "luna-crew")

	claim, err := s.submit("luna-crew")
	s.Require().NoError(err)
	s.Require().NoError(s.service.RejectClaim(claim.ID, s.admin.ID, nil))

	// The partial index only covers pending rows, so a fresh claim is allowed.
	_, err = s.service.SubmitClaim(s.other.ID, &SubmitClaimRequest{
		ProfileSlug:  "luna-crew",
		ContactEmail: "rival@example.com",
	})
	s.NoError(err)
}

func (s *ClaimServiceTestSuite) TestListClaimsVisibility() {
	testutil.CreateProfile(s.T(), s.db, "luna-crew")
	testutil.CreateProfile(s.T(), s.db, "rival-crew")

	_, err := s.submit("luna-crew")
	s.Require().NoError(err)
	_, err = s.service.SubmitClaim(s.other.ID, &SubmitClaimRequest{
		ProfileSlug:  "rival-crew",
		ContactEmail: "rival@example.com",
	})
	s.Require().NoError(err)

	// Non-admin only sees their own claims
	result, err := s.service.ListClaims(s.requester.ID, nil)
	s.Require().NoError(err)
	s.False(result.IsAdmin)
	s.Require().Len(result.Claims, 1)
	s.Equal(s.requester.ID, result.Claims[0].RequesterID)

	// Admin sees everything
	result, err = s.service.ListClaims(s.admin.ID, nil)
	s.Require().NoError(err)
	s.True(result.IsAdmin)
	s.Len(result.Claims, 2)
}

func (s *ClaimServiceTestSuite) TestListClaimsStatusFilter() {
	testutil.CreateProfile(s.T(), s.db, "luna-crew")
	testutil.CreateProfile(s.T(), s.db, "rival-crew")

	claim, err := s.submit("luna-crew")
	s.Require().NoError(err)
	s.Require().NoError(s.service.RejectClaim(claim.ID, s.admin.ID, nil))

	_, err = s.submit("rival-crew")
	s.Require().NoError(err)

	pending := models.ClaimStatusPending
	result, err := s.service.ListClaims(s.admin.ID, &pending)
	s.Require().NoError(err)
	s.Require().Len(result.Claims, 1)
	s.Equal(models.ClaimStatusPending, result.Claims[0].Status)

	rejected := models.ClaimStatusRejected
	result, err = s.service.ListClaims(s.admin.ID, &rejected)
	s.Require().NoError(err)
	s.Require().Len(result.Claims, 1)
	s.Equal(claim.ID, result.Claims[0].ID)
}

func (s *ClaimServiceTestSuite) TestGetClaimVisibility() {
	testutil.CreateProfile(s.T(), s.db, "luna-crew")
	claim, err := s.submit("luna-crew")
	s.Require().NoError(err)

	got, err := s.service.GetClaim(claim.ID, s.requester.ID)
	s.Require().NoError(err)
	s.Equal(claim.ID, got.ID)

	// Another user's claim reads as not found, not forbidden
	_, err = s.service.GetClaim(claim.ID, s.other.ID)
	s.ErrorIs(err, ErrClaimNotFound)

	_, err = s.service.GetClaim(claim.ID, s.admin.ID)
	s.NoError(err)
}

func (s *ClaimServiceTestSuite) TestApproveClaim() {
	profile := testutil.CreateProfile(s.T(), s.db, "luna-crew")
	claim, err := s.submit("luna-crew")
	s.Require().NoError(err)

	result, err := s.service.ApproveClaim(claim.ID, s.admin.ID)
	s.Require().NoError(err)
	s.Equal(profile.ID, result.ProfileID)
	s.Equal("luna-crew", result.ProfileSlug)
	s.Equal(s.requester.ID, result.NewOwnerID)

	var updated models.DanceProfile
	s.Require().NoError(s.db.First(&updated, "id = ?", profile.ID).Error)
	s.Require().NotNil(updated.OwnerID)
	s.Equal(s.requester.ID, *updated.OwnerID)

	var decided models.ClaimRequest
	s.Require().NoError(s.db.First(&decided, "id = ?", claim.ID).Error)
	s.Equal(models.ClaimStatusApproved, decided.Status)
	s.Require().NotNil(decided.DecidedBy)
	s.Equal(s.admin.ID, *decided.DecidedBy)
	s.NotNil(decided.DecidedAt)
}

func (s *ClaimServiceTestSuite) TestApproveClaimRequiresAdmin() {
	testutil.CreateProfile(s.T(), s.db, "luna-crew")
	claim, err := s.submit("luna-crew")
	s.Require().NoError(err)

	_, err = s.service.ApproveClaim(claim.ID, s.other.ID)
	s.ErrorIs(err, ErrForbidden)

	// Nothing was decided
	var unchanged models.ClaimRequest
	s.Require().NoError(s.db.First(&unchanged, "id = ?", claim.ID).Error)
	s.Equal(models.ClaimStatusPending, unchanged.Status)
}

func (s *ClaimServiceTestSuite) TestApproveClaimNotFound() {
	_, err := s.service.ApproveClaim(s.requester.ID, s.admin.ID)
	s.ErrorIs(err, ErrClaimNotFound)
}

func (s *ClaimServiceTestSuite) TestApproveDecidedClaim() {
	testutil.CreateProfile(s.T(), s.db, "luna-crew")
	claim, err := s.submit("luna-crew")
	s.Require().NoError(err)

	_, err = s.service.ApproveClaim(claim.ID, s.admin.ID)
	s.Require().NoError(err)

	// A second approval of the same claim is not idempotent success; the
	// state machine rejects it.
	_, err = s.service.ApproveClaim(claim.ID, s.admin.ID)
	s.ErrorIs(err, ErrClaimNotPending)
}

func (s *ClaimServiceTestSuite) TestApproveWhenProfileAlreadyOwned() {
	profile := testutil.CreateProfile(s.T(), s.db, "luna-crew")
	claim, err := s.submit("luna-crew")
	s.Require().NoError(err)

	// Ownership changed between submission and decision (e.g. a racing
	// approval of another claim won).
	s.Require().NoError(s.db.Model(&models.DanceProfile{}).
		Where("id = ?", profile.ID).
		Update("owner_id", s.other.ID).Error)

	_, err = s.service.ApproveClaim(claim.ID, s.admin.ID)
	s.ErrorIs(err, ErrAlreadyClaimed)

	// The losing claim stays pending for manual re-review, and ownership
	// is untouched.
	var unchanged models.ClaimRequest
	s.Require().NoError(s.db.First(&unchanged, "id = ?", claim.ID).Error)
	s.Equal(models.ClaimStatusPending, unchanged.Status)

	var owner models.DanceProfile
	s.Require().NoError(s.db.First(&owner, "id = ?", profile.ID).Error)
	s.Require().NotNil(owner.OwnerID)
	s.Equal(s.other.ID, *owner.OwnerID)
}

func (s *ClaimServiceTestSuite) TestRejectClaim() {
	profile := testutil.CreateProfile(s.T(), s.db, "luna-crew")
	claim, err := s.submit("luna-crew")
	s.Require().NoError(err)

	reason := "insufficient proof of identity"
	err = s.service.RejectClaim(claim.ID, s.admin.ID, &RejectClaimRequest{Reason: &reason})
	s.Require().NoError(err)

	var decided models.ClaimRequest
	s.Require().NoError(s.db.First(&decided, "id = ?", claim.ID).Error)
	s.Equal(models.ClaimStatusRejected, decided.Status)
	s.Require().NotNil(decided.DecisionReason)
	s.Equal(reason, *decided.DecisionReason)
	s.Require().NotNil(decided.DecidedBy)
	s.Equal(s.admin.ID, *decided.DecidedBy)

	// Rejection never touches the profile
	var unchanged models.DanceProfile
	s.Require().NoError(s.db.First(&unchanged, "id = ?", profile.ID).Error)
	s.Nil(unchanged.OwnerID)
}

func (s *ClaimServiceTestSuite) TestRejectClaimRequiresAdmin() {
	testutil.CreateProfile(s.T(), s.db, "luna-crew")
	claim, err := s.submit("luna-crew")
	s.Require().NoError(err)

	err = s.service.RejectClaim(claim.ID, s.requester.ID, nil)
	s.ErrorIs(err, ErrForbidden)
}

func (s *ClaimServiceTestSuite) TestDecisionsAreTerminal() {
	testutil.CreateProfile(s.T(), s.db, "luna-crew")
	claim, err := s.submit("luna-crew")
	s.Require().NoError(err)

	s.Require().NoError(s.service.RejectClaim(claim.ID, s.admin.ID, nil))

	// Neither decision can follow a terminal state
	s.ErrorIs(s.service.RejectClaim(claim.ID, s.admin.ID, nil), ErrClaimNotPending)
	_, err = s.service.ApproveClaim(claim.ID, s.admin.ID)
	s.ErrorIs(err, ErrClaimNotPending)

	// And the profile stays unclaimed
	var profile models.DanceProfile
	s.Require().NoError(s.db.Where("slug = ?", "luna-crew").First(&profile).Error)
	s.Nil(profile.OwnerID)
}
