// internal/handlers/claim_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/stagefolio/stagefolio-backend/internal/middleware"
	"github.com/stagefolio/stagefolio-backend/internal/models"
	"github.com/stagefolio/stagefolio-backend/internal/services"
	"github.com/stagefolio/stagefolio-backend/internal/testutil"
	"github.com/stagefolio/stagefolio-backend/internal/utils"
)

type ClaimHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine

	admin  *models.User
	dancer *models.User

	adminToken  string
	dancerToken string
}

func (s *ClaimHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.db = testutil.OpenTestDB(s.T())
	authz := services.NewAuthorizationService(s.db)
	claimService := services.NewClaimService(s.db, authz, nil)
	handler := NewClaimHandler(claimService)

	s.router = gin.New()
	claims := s.router.Group("/v1/claims", middleware.AuthRequired())
	{
		claims.POST("", handler.SubmitClaim)
		claims.GET("", handler.ListClaims)
		claims.GET("/:id", handler.GetClaim)
		claims.POST("/:id/approve", middleware.AdminRequired(), handler.ApproveClaim)
		claims.POST("/:id/reject", middleware.AdminRequired(), handler.RejectClaim)
	}

	s.admin = testutil.CreateAdmin(s.T(), s.db, "admin")
	s.dancer = testutil.CreateUser(s.T(), s.db, "luna", models.UserTypeDancer)

	var err error
	s.adminToken, err = utils.GenerateJWT(s.admin.ID, s.admin.Username, string(s.admin.UserType), 1)
	s.Require().NoError(err)
	s.dancerToken, err = utils.GenerateJWT(s.dancer.ID, s.dancer.Username, string(s.dancer.UserType), 1)
	s.Require().NoError(err)
}

func TestClaimHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ClaimHandlerTestSuite))
}

func (s *ClaimHandlerTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ClaimHandlerTestSuite) decode(w *httptest.ResponseRecorder) utils.APIResponse {
	var resp utils.APIResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *ClaimHandlerTestSuite) submitBody(slug string) gin.H {
	return gin.H{
		"profile_id":              slug,
		"requester_contact_email": "luna@example.com",
	}
}

func (s *ClaimHandlerTestSuite) TestSubmitClaim() {
	testutil.CreateProfile(s.T(), s.db, "luna-crew")

	w := s.request(http.MethodPost, "/v1/claims", s.dancerToken, s.submitBody("luna-crew"))
	s.Equal(http.StatusCreated, w.Code)

	resp := s.decode(w)
	s.True(resp.Success)
	s.Nil(resp.Error)
}

func (s *ClaimHandlerTestSuite) TestSubmitClaimRequiresAuth() {
	w := s.request(http.MethodPost, "/v1/claims", "", s.submitBody("luna-crew"))
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *ClaimHandlerTestSuite) TestSubmitClaimProfileNotFound() {
	w := s.request(http.MethodPost, "/v1/claims", s.dancerToken, s.submitBody("no-such-crew"))
	s.Equal(http.StatusNotFound, w.Code)

	resp := s.decode(w)
	s.False(resp.Success)
	s.Equal("NOT_FOUND", resp.Error.Code)
}

func (s *ClaimHandlerTestSuite) TestSubmitClaimAlreadyClaimed() {
	testutil.CreateProfile(s.T(), s.db, "owned-crew", testutil.WithOwner(s.admin.ID))

	w := s.request(http.MethodPost, "/v1/claims", s.dancerToken, s.submitBody("owned-crew"))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("ALREADY_CLAIMED", s.decode(w).Error.Code)
}

func (s *ClaimHandlerTestSuite) TestSubmitClaimDuplicatePending() {
	testutil.CreateProfile(s.T(), s.db, "luna-crew")

	w := s.request(http.MethodPost, "/v1/claims", s.dancerToken, s.submitBody("luna-crew"))
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.request(http.MethodPost, "/v1/claims", s.dancerToken, s.submitBody("luna-crew"))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("DUPLICATE_PENDING_CLAIM", s.decode(w).Error.Code)
}

func (s *ClaimHandlerTestSuite) TestListClaims() {
	testutil.CreateProfile(s.T(), s.db, "luna-crew")
	w := s.request(http.MethodPost, "/v1/claims", s.dancerToken, s.submitBody("luna-crew"))
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.request(http.MethodGet, "/v1/claims", s.dancerToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	data := s.decode(w).Data.(map[string]interface{})
	s.Equal(false, data["is_admin"])
	s.Len(data["claims"], 1)

	w = s.request(http.MethodGet, "/v1/claims?status=pending", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	data = s.decode(w).Data.(map[string]interface{})
	s.Equal(true, data["is_admin"])
}

func (s *ClaimHandlerTestSuite) TestListClaimsInvalidStatus() {
	w := s.request(http.MethodGet, "/v1/claims?status=bogus", s.dancerToken, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ClaimHandlerTestSuite) submitClaim(slug string) string {
	testutil.CreateProfile(s.T(), s.db, slug)
	w := s.request(http.MethodPost, "/v1/claims", s.dancerToken, s.submitBody(slug))
	s.Require().Equal(http.StatusCreated, w.Code)

	data := s.decode(w).Data.(map[string]interface{})
	claim := data["claim"].(map[string]interface{})
	return claim["id"].(string)
}

func (s *ClaimHandlerTestSuite) TestApproveClaim() {
	claimID := s.submitClaim("luna-crew")

	w := s.request(http.MethodPost, fmt.Sprintf("/v1/claims/%s/approve", claimID), s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	resp := s.decode(w)
	s.True(resp.Success)
	data := resp.Data.(map[string]interface{})
	s.NotEmpty(data["profile_id"])
	s.Equal("luna-crew", data["profile_slug"])
	s.Equal(s.dancer.ID.String(), data["new_owner_id"])
}

func (s *ClaimHandlerTestSuite) TestApproveClaimForbiddenForNonAdmin() {
	claimID := s.submitClaim("luna-crew")

	w := s.request(http.MethodPost, fmt.Sprintf("/v1/claims/%s/approve", claimID), s.dancerToken, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *ClaimHandlerTestSuite) TestApproveDecidedClaim() {
	claimID := s.submitClaim("luna-crew")

	w := s.request(http.MethodPost, fmt.Sprintf("/v1/claims/%s/approve", claimID), s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodPost, fmt.Sprintf("/v1/claims/%s/approve", claimID), s.adminToken, nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("INVALID_STATE", s.decode(w).Error.Code)
}

func (s *ClaimHandlerTestSuite) TestRejectClaim() {
	claimID := s.submitClaim("luna-crew")

	w := s.request(http.MethodPost, fmt.Sprintf("/v1/claims/%s/reject", claimID),
		s.adminToken, gin.H{"reason": "could not verify identity"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.True(s.decode(w).Success)

	var claim models.ClaimRequest
	s.Require().NoError(s.db.First(&claim, "id = ?", claimID).Error)
	s.Equal(models.ClaimStatusRejected, claim.Status)
	s.Require().NotNil(claim.DecisionReason)
	s.Equal("could not verify identity", *claim.DecisionReason)
}

func (s *ClaimHandlerTestSuite) TestRejectWithoutBody() {
	claimID := s.submitClaim("luna-crew")

	w := s.request(http.MethodPost, fmt.Sprintf("/v1/claims/%s/reject", claimID), s.adminToken, nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *ClaimHandlerTestSuite) TestInvalidClaimID() {
	w := s.request(http.MethodPost, "/v1/claims/not-a-uuid/approve", s.adminToken, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}
