// internal/handlers/profile.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stagefolio/stagefolio-backend/internal/i18n"
	"github.com/stagefolio/stagefolio-backend/internal/models"
	"github.com/stagefolio/stagefolio-backend/internal/services"
	"github.com/stagefolio/stagefolio-backend/internal/utils"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// CreateProfile handles POST /profiles
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	creatorID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	profile, err := h.profileService.CreateProfile(creatorID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"profile": profile,
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyProfileCreated),
	})
}

// GetProfile handles GET /profiles/:slug (public)
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfileBySlug(c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, profile)
}

// UpdateProfile handles PUT /profiles/:slug
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Param("slug"), callerID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"profile": profile,
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyProfileUpdated),
	})
}

// SearchProfiles handles GET /profiles (public)
func (h *ProfileHandler) SearchProfiles(c *gin.Context) {
	params := services.ProfileSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if raw := c.Query("profile_type"); raw != "" {
		profileType := models.ProfileType(raw)
		if profileType != models.ProfileTypeSolo && profileType != models.ProfileTypeTeam {
			utils.BadRequestResponse(c, "Invalid profile_type filter", nil)
			return
		}
		params.ProfileType = &profileType
	}
	if city := c.Query("city"); city != "" {
		params.City = &city
	}
	if raw := c.Query("unclaimed"); raw != "" {
		unclaimed := raw == "true"
		params.Unclaimed = &unclaimed
	}

	profiles, total, err := h.profileService.SearchProfiles(params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(profiles, total, params.PaginationParams))
}

// SetVerification handles PUT /admin/profiles/:slug/verification
func (h *ProfileHandler) SetVerification(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req struct {
		Status models.VerificationStatus `json:"status" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}
	if req.Status != models.VerificationStatusVerified && req.Status != models.VerificationStatusUnverified {
		utils.BadRequestResponse(c, "Invalid verification status", nil)
		return
	}

	profile, err := h.profileService.SetVerification(c.Param("slug"), adminID, req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"profile": profile,
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyProfileVerified),
	})
}

// DeleteProfile handles DELETE /profiles/:slug
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.profileService.DeleteProfile(c.Param("slug"), callerID); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyProfileDeleted),
	})
}
