// internal/services/claim_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stagefolio/stagefolio-backend/internal/database"
	"github.com/stagefolio/stagefolio-backend/internal/models"
	"github.com/stagefolio/stagefolio-backend/internal/utils"
)

// ClaimService owns the ownership-claim lifecycle: submission with duplicate
// suppression and match scoring, the admin decision, and the atomic ownership
// transfer on approval. ClaimRequest rows are never deleted; decided claims
// are the audit trail.
type ClaimService struct {
	db                  *gorm.DB
	authz               *AuthorizationService
	notificationService *NotificationService
}

type SubmitClaimRequest struct {
	ProfileSlug  string  `json:"profile_id" validate:"required,profile_slug"`
	ContactEmail string  `json:"requester_contact_email" validate:"required,email"`
	ContactPhone *string `json:"requester_contact_phone,omitempty"`
}

type RejectClaimRequest struct {
	Reason *string `json:"reason,omitempty"`
}

type ClaimListResult struct {
	Claims  []models.ClaimRequest `json:"claims"`
	IsAdmin bool                  `json:"is_admin"`
}

type ApproveClaimResult struct {
	ProfileID   uuid.UUID `json:"profile_id"`
	ProfileSlug string    `json:"profile_slug"`
	NewOwnerID  uuid.UUID `json:"new_owner_id"`
}

func NewClaimService(db *gorm.DB, authz *AuthorizationService, notificationService *NotificationService) *ClaimService {
	return &ClaimService{
		db:                  db,
		authz:               authz,
		notificationService: notificationService,
	}
}

// SubmitClaim records a pending ownership claim against an unclaimed profile.
// Validation order: profile must exist, must be unclaimed, and must have no
// other pending claim. The pending-claim check here is a fast reject; the
// partial unique index on claim_requests is what actually prevents two
// concurrent submissions from both landing.
func (s *ClaimService) SubmitClaim(requesterID uuid.UUID, req *SubmitClaimRequest) (*models.ClaimRequest, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var profile models.DanceProfile
	if err := s.db.Where("slug = ?", req.ProfileSlug).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, storeError(err)
	}

	if profile.IsClaimed() {
		return nil, ErrAlreadyClaimed
	}

	var pendingCount int64
	if err := s.db.Model(&models.ClaimRequest{}).
		Where("profile_id = ? AND status = ?", profile.ID, models.ClaimStatusPending).
		Count(&pendingCount).Error; err != nil {
		return nil, storeError(err)
	}
	if pendingCount > 0 {
		return nil, ErrDuplicatePendingClaim
	}

	// Advisory match scores for the review queue; they never gate submission.
	phone := ""
	if req.ContactPhone != nil {
		phone = *req.ContactPhone
	}
	profilePhone := ""
	if profile.ContactPhone != nil {
		profilePhone = *profile.ContactPhone
	}

	claim := &models.ClaimRequest{
		ProfileID:             profile.ID,
		RequesterID:           requesterID,
		RequesterContactEmail: req.ContactEmail,
		RequesterContactPhone: req.ContactPhone,
		EmailMatch:            MatchEmail(req.ContactEmail, profile.ContactEmail),
		PhoneMatch:            MatchPhone(phone, profilePhone),
		Status:                models.ClaimStatusPending,
	}

	if err := s.db.Create(claim).Error; err != nil {
		if isUniqueViolation(err) {
			// Lost the race against a concurrent submission.
			return nil, ErrDuplicatePendingClaim
		}
		return nil, storeError(err)
	}

	if err := s.db.Preload("Profile").Preload("Requester").
		First(claim, "id = ?", claim.ID).Error; err != nil {
		return nil, storeError(err)
	}

	if s.notificationService != nil {
		go s.notificationService.NotifyClaimSubmitted(claim)
	}

	return claim, nil
}

// ListClaims returns the claim queue, newest first. Admins see every claim;
// other callers see only their own.
func (s *ClaimService) ListClaims(callerID uuid.UUID, statusFilter *models.ClaimStatus) (*ClaimListResult, error) {
	isAdmin, err := s.authz.IsAdmin(callerID)
	if err != nil {
		return nil, err
	}

	query := s.db.Model(&models.ClaimRequest{}).
		Preload("Profile").Preload("Requester").
		Order("created_at DESC")

	if !isAdmin {
		query = query.Where("requester_id = ?", callerID)
	}

	if statusFilter != nil {
		query = query.Where("status = ?", *statusFilter)
	}

	var claims []models.ClaimRequest
	if err := query.Find(&claims).Error; err != nil {
		return nil, storeError(err)
	}

	return &ClaimListResult{Claims: claims, IsAdmin: isAdmin}, nil
}

// GetClaim loads a single claim with its profile and requester. Non-admin
// callers may only fetch their own claims.
func (s *ClaimService) GetClaim(claimID, callerID uuid.UUID) (*models.ClaimRequest, error) {
	var claim models.ClaimRequest
	if err := s.db.Preload("Profile").Preload("Requester").Preload("Decider").
		First(&claim, "id = ?", claimID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, storeError(err)
	}

	if claim.RequesterID != callerID {
		isAdmin, err := s.authz.IsAdmin(callerID)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, ErrClaimNotFound
		}
	}

	return &claim, nil
}

// ApproveClaim transfers ownership of the target profile to the requester and
// marks the claim approved, in one transaction. Ownership is re-checked at
// decision time with a conditional update, so of two racing approvals against
// the same profile only one can win; the loser's claim stays pending for
// manual re-review.
func (s *ClaimService) ApproveClaim(claimID, adminID uuid.UUID) (*ApproveClaimResult, error) {
	admin, err := s.authz.RequireAdmin(adminID)
	if err != nil {
		return nil, err
	}

	var result ApproveClaimResult

	txErr := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var claim models.ClaimRequest
		if err := tx.First(&claim, "id = ?", claimID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClaimNotFound
			}
			return err
		}

		if claim.Status != models.ClaimStatusPending {
			return ErrClaimNotPending
		}

		// Conditional transfer: only succeeds while the profile is still
		// unclaimed. Zero rows means another approval (or the registration
		// flow) got there first.
		transfer := tx.Model(&models.DanceProfile{}).
			Where("id = ? AND owner_id IS NULL", claim.ProfileID).
			Update("owner_id", claim.RequesterID)
		if transfer.Error != nil {
			return transfer.Error
		}
		if transfer.RowsAffected == 0 {
			var profile models.DanceProfile
			if err := tx.First(&profile, "id = ?", claim.ProfileID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProfileNotFound
				}
				return err
			}
			return ErrAlreadyClaimed
		}

		// Conditional decision: guards against a racing approve/reject that
		// decided the claim between our read and here.
		now := time.Now()
		decision := tx.Model(&models.ClaimRequest{}).
			Where("id = ? AND status = ?", claimID, models.ClaimStatusPending).
			Updates(map[string]interface{}{
				"status":     models.ClaimStatusApproved,
				"decided_by": admin.ID,
				"decided_at": now,
			})
		if decision.Error != nil {
			return decision.Error
		}
		if decision.RowsAffected == 0 {
			return ErrClaimNotPending
		}

		var profile models.DanceProfile
		if err := tx.First(&profile, "id = ?", claim.ProfileID).Error; err != nil {
			return err
		}

		result = ApproveClaimResult{
			ProfileID:   profile.ID,
			ProfileSlug: profile.Slug,
			NewOwnerID:  claim.RequesterID,
		}
		return nil
	})
	if txErr != nil {
		return nil, storeError(txErr)
	}

	if s.notificationService != nil {
		go s.notifyDecision(claimID)
	}

	return &result, nil
}

// RejectClaim marks a pending claim rejected without touching the profile.
// The status check and the update are a single conditional statement, so two
// concurrent rejects cannot both succeed.
func (s *ClaimService) RejectClaim(claimID, adminID uuid.UUID, req *RejectClaimRequest) error {
	admin, err := s.authz.RequireAdmin(adminID)
	if err != nil {
		return err
	}

	var claim models.ClaimRequest
	if err := s.db.First(&claim, "id = ?", claimID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClaimNotFound
		}
		return storeError(err)
	}

	if claim.Status != models.ClaimStatusPending {
		return ErrClaimNotPending
	}

	updates := map[string]interface{}{
		"status":     models.ClaimStatusRejected,
		"decided_by": admin.ID,
		"decided_at": time.Now(),
	}
	if req != nil && req.Reason != nil {
		updates["decision_reason"] = *req.Reason
	}

	decision := s.db.Model(&models.ClaimRequest{}).
		Where("id = ? AND status = ?", claimID, models.ClaimStatusPending).
		Updates(updates)
	if decision.Error != nil {
		return storeError(decision.Error)
	}
	if decision.RowsAffected == 0 {
		return ErrClaimNotPending
	}

	if s.notificationService != nil {
		go s.notifyDecision(claimID)
	}

	return nil
}

func (s *ClaimService) notifyDecision(claimID uuid.UUID) {
	var claim models.ClaimRequest
	if err := s.db.Preload("Profile").Preload("Requester").
		First(&claim, "id = ?", claimID).Error; err != nil {
		return
	}
	s.notificationService.NotifyClaimDecided(&claim)
}
