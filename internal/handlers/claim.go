// internal/handlers/claim.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stagefolio/stagefolio-backend/internal/i18n"
	"github.com/stagefolio/stagefolio-backend/internal/models"
	"github.com/stagefolio/stagefolio-backend/internal/services"
	"github.com/stagefolio/stagefolio-backend/internal/utils"
)

type ClaimHandler struct {
	claimService *services.ClaimService
}

func NewClaimHandler(claimService *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

// SubmitClaim handles POST /claims
func (h *ClaimHandler) SubmitClaim(c *gin.Context) {
	requesterID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	claim, err := h.claimService.SubmitClaim(requesterID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"claim":   claim,
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyClaimSubmitted),
	})
}

// ListClaims handles GET /claims?status=pending
func (h *ClaimHandler) ListClaims(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var statusFilter *models.ClaimStatus
	if raw := c.Query("status"); raw != "" {
		status := models.ClaimStatus(raw)
		switch status {
		case models.ClaimStatusPending, models.ClaimStatusApproved,
			models.ClaimStatusRejected, models.ClaimStatusCancelled:
			statusFilter = &status
		default:
			utils.BadRequestResponse(c, "Invalid status filter", nil)
			return
		}
	}

	result, err := h.claimService.ListClaims(callerID, statusFilter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GetClaim handles GET /claims/:id
func (h *ClaimHandler) GetClaim(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	claimID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid claim ID", nil)
		return
	}

	claim, err := h.claimService.GetClaim(claimID, callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, claim)
}

// ApproveClaim handles POST /claims/:id/approve
func (h *ClaimHandler) ApproveClaim(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	claimID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid claim ID", nil)
		return
	}

	result, err := h.claimService.ApproveClaim(claimID, adminID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"profile_id":   result.ProfileID,
		"profile_slug": result.ProfileSlug,
		"new_owner_id": result.NewOwnerID,
		"message":      i18n.T(utils.GetLangFromContext(c), i18n.KeyClaimApproved),
	})
}

// RejectClaim handles POST /claims/:id/reject
func (h *ClaimHandler) RejectClaim(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	claimID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid claim ID", nil)
		return
	}

	// Body is optional; an empty body means no decision reason.
	var req services.RejectClaimRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, "Invalid request format", err.Error())
			return
		}
	}

	if err := h.claimService.RejectClaim(claimID, adminID, &req); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyClaimRejected),
	})
}
