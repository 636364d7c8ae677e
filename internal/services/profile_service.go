// internal/services/profile_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stagefolio/stagefolio-backend/internal/models"
	"github.com/stagefolio/stagefolio-backend/internal/utils"
)

type ProfileService struct {
	db    *gorm.DB
	authz *AuthorizationService
}

type CreateProfileRequest struct {
	Slug         string             `json:"slug" validate:"required,profile_slug"`
	DisplayName  string             `json:"display_name" validate:"required,max=255"`
	ProfileType  models.ProfileType `json:"profile_type" validate:"required"`
	Bio          string             `json:"bio,omitempty"`
	City         string             `json:"city,omitempty" validate:"max=100"`
	Styles       []string           `json:"styles,omitempty"`
	ContactEmail string             `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone *string            `json:"contact_phone,omitempty"`
	// Unowned creates a pre-seeded, claimable profile; admin only.
	Unowned bool `json:"unowned,omitempty"`
}

type UpdateProfileRequest struct {
	DisplayName  *string  `json:"display_name,omitempty" validate:"omitempty,max=255"`
	Bio          *string  `json:"bio,omitempty"`
	City         *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	Styles       []string `json:"styles,omitempty"`
	ContactEmail *string  `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone *string  `json:"contact_phone,omitempty"`
}

type ProfileSearchParams struct {
	utils.PaginationParams
	ProfileType *models.ProfileType `json:"profile_type,omitempty"`
	City        *string             `json:"city,omitempty"`
	Unclaimed   *bool               `json:"unclaimed,omitempty"`
}

func NewProfileService(db *gorm.DB, authz *AuthorizationService) *ProfileService {
	return &ProfileService{db: db, authz: authz}
}

func (s *ProfileService) CreateProfile(creatorID uuid.UUID, req *CreateProfileRequest) (*models.DanceProfile, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	if req.ProfileType != models.ProfileTypeSolo && req.ProfileType != models.ProfileTypeTeam {
		return nil, errors.New("invalid profile type")
	}

	profile := &models.DanceProfile{
		Slug:         req.Slug,
		DisplayName:  req.DisplayName,
		ProfileType:  req.ProfileType,
		Bio:          req.Bio,
		City:         req.City,
		Styles:       stylesJSONB(req.Styles),
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}

	if req.Unowned {
		// Pre-seeded claimable record, as from a bulk import
		if _, err := s.authz.RequireAdmin(creatorID); err != nil {
			return nil, err
		}
	} else {
		profile.OwnerID = &creatorID
	}

	if err := s.db.Create(profile).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, storeError(err)
	}

	return profile, nil
}

func (s *ProfileService) GetProfileBySlug(slug string) (*models.DanceProfile, error) {
	var profile models.DanceProfile
	if err := s.db.Preload("MediaItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Preload("Choreography").Preload("Awards").Preload("Workshops").
		Where("slug = ?", slug).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, storeError(err)
	}
	return &profile, nil
}

func (s *ProfileService) UpdateProfile(slug string, callerID uuid.UUID, req *UpdateProfileRequest) (*models.DanceProfile, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var profile models.DanceProfile
	if err := s.db.Where("slug = ?", slug).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, storeError(err)
	}

	if err := s.authz.RequireProfileOwner(&profile, callerID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Styles != nil {
		updates["styles"] = stylesJSONB(req.Styles)
	}
	if req.ContactEmail != nil {
		updates["contact_email"] = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		updates["contact_phone"] = *req.ContactPhone
	}

	if len(updates) > 0 {
		if err := s.db.Model(&profile).Updates(updates).Error; err != nil {
			return nil, storeError(err)
		}
	}

	return &profile, nil
}

func (s *ProfileService) SearchProfiles(params ProfileSearchParams) ([]models.DanceProfile, int64, error) {
	query := s.db.Model(&models.DanceProfile{})

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("display_name LIKE ? OR bio LIKE ?", like, like)
	}
	if params.ProfileType != nil {
		query = query.Where("profile_type = ?", *params.ProfileType)
	}
	if params.City != nil {
		query = query.Where("city = ?", *params.City)
	}
	if params.Unclaimed != nil {
		if *params.Unclaimed {
			query = query.Where("owner_id IS NULL")
		} else {
			query = query.Where("owner_id IS NOT NULL")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, storeError(err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "display_name", "city"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var profiles []models.DanceProfile
	if err := query.Find(&profiles).Error; err != nil {
		return nil, 0, storeError(err)
	}

	return profiles, total, nil
}

// SetVerification marks a profile verified or unverified; admin only.
func (s *ProfileService) SetVerification(slug string, adminID uuid.UUID, status models.VerificationStatus) (*models.DanceProfile, error) {
	if _, err := s.authz.RequireAdmin(adminID); err != nil {
		return nil, err
	}

	var profile models.DanceProfile
	if err := s.db.Where("slug = ?", slug).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, storeError(err)
	}

	if err := s.db.Model(&profile).Update("verification_status", status).Error; err != nil {
		return nil, storeError(err)
	}

	return &profile, nil
}

// DeleteProfile soft-deletes a profile; owner or admin only. The claim
// engine never calls this.
func (s *ProfileService) DeleteProfile(slug string, callerID uuid.UUID) error {
	var profile models.DanceProfile
	if err := s.db.Where("slug = ?", slug).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return storeError(err)
	}

	if err := s.authz.RequireProfileOwner(&profile, callerID); err != nil {
		return err
	}

	if err := s.db.Delete(&profile).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func stylesJSONB(styles []string) models.JSONB {
	if styles == nil {
		return nil
	}
	values := make([]interface{}, len(styles))
	for i, s := range styles {
		values[i] = s
	}
	return models.JSONB{"styles": values}
}
