// internal/services/portfolio_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stagefolio/stagefolio-backend/internal/models"
	"github.com/stagefolio/stagefolio-backend/internal/utils"
)

// PortfolioService manages the sections hanging off a profile: media,
// choreography credits, awards, and workshops. Every mutation is gated on
// profile ownership.
type PortfolioService struct {
	db             *gorm.DB
	authz          *AuthorizationService
	storageService *StorageService
}

type AddMediaRequest struct {
	MediaType models.MediaType `json:"media_type" validate:"required"`
	Title     string           `json:"title" validate:"required,max=255"`
	URL       string           `json:"url" validate:"required,url"`
	Caption   string           `json:"caption,omitempty"`
	SortOrder int              `json:"sort_order,omitempty"`
}

type AddChoreographyRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Production  string     `json:"production,omitempty" validate:"max=255"`
	Role        string     `json:"role,omitempty" validate:"max=100"`
	PerformedAt *time.Time `json:"performed_at,omitempty"`
	VideoURL    string     `json:"video_url,omitempty" validate:"omitempty,url"`
}

type AddAwardRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Competition string     `json:"competition,omitempty" validate:"max=255"`
	Placement   string     `json:"placement,omitempty" validate:"max=50"`
	AwardedAt   *time.Time `json:"awarded_at,omitempty"`
}

type AddWorkshopRequest struct {
	Title     string     `json:"title" validate:"required,max=255"`
	Venue     string     `json:"venue,omitempty" validate:"max=255"`
	City      string     `json:"city,omitempty" validate:"max=100"`
	HeldAt    *time.Time `json:"held_at,omitempty"`
	Recurring bool       `json:"recurring,omitempty"`
}

func NewPortfolioService(db *gorm.DB, authz *AuthorizationService, storageService *StorageService) *PortfolioService {
	return &PortfolioService{
		db:             db,
		authz:          authz,
		storageService: storageService,
	}
}

func (s *PortfolioService) loadOwnedProfile(slug string, callerID uuid.UUID) (*models.DanceProfile, error) {
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
	return &profile, nil
}

func (s *PortfolioService) AddMedia(slug string, callerID uuid.UUID, req *AddMediaRequest) (*models.MediaItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.MediaType != models.MediaTypeImage && req.MediaType != models.MediaTypeVideo {
		return nil, errors.New("invalid media type")
	}

	profile, err := s.loadOwnedProfile(slug, callerID)
	if err != nil {
		return nil, err
	}

	item := &models.MediaItem{
		ProfileID: profile.ID,
		MediaType: req.MediaType,
		Title:     req.Title,
		URL:       req.URL,
		Caption:   req.Caption,
		SortOrder: req.SortOrder,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, storeError(err)
	}
	return item, nil
}

func (s *PortfolioService) AddChoreography(slug string, callerID uuid.UUID, req *AddChoreographyRequest) (*models.ChoreographyCredit, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	profile, err := s.loadOwnedProfile(slug, callerID)
	if err != nil {
		return nil, err
	}

	credit := &models.ChoreographyCredit{
		ProfileID:   profile.ID,
		Title:       req.Title,
		Production:  req.Production,
		Role:        req.Role,
		PerformedAt: req.PerformedAt,
		VideoURL:    req.VideoURL,
	}
	if err := s.db.Create(credit).Error; err != nil {
		return nil, storeError(err)
	}
	return credit, nil
}

func (s *PortfolioService) AddAward(slug string, callerID uuid.UUID, req *AddAwardRequest) (*models.Award, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	profile, err := s.loadOwnedProfile(slug, callerID)
	if err != nil {
		return nil, err
	}

	award := &models.Award{
		ProfileID:   profile.ID,
		Title:       req.Title,
		Competition: req.Competition,
		Placement:   req.Placement,
		AwardedAt:   req.AwardedAt,
	}
	if err := s.db.Create(award).Error; err != nil {
		return nil, storeError(err)
	}
	return award, nil
}

func (s *PortfolioService) AddWorkshop(slug string, callerID uuid.UUID, req *AddWorkshopRequest) (*models.Workshop, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	profile, err := s.loadOwnedProfile(slug, callerID)
	if err != nil {
		return nil, err
	}

	workshop := &models.Workshop{
		ProfileID: profile.ID,
		Title:     req.Title,
		Venue:     req.Venue,
		City:      req.City,
		HeldAt:    req.HeldAt,
		Recurring: req.Recurring,
	}
	if err := s.db.Create(workshop).Error; err != nil {
		return nil, storeError(err)
	}
	return workshop, nil
}

// RemoveSectionItem deletes one portfolio row of the given kind after the
// ownership check. The item must belong to the named profile.
func (s *PortfolioService) RemoveSectionItem(slug string, callerID uuid.UUID, section string, itemID uuid.UUID) error {
	profile, err := s.loadOwnedProfile(slug, callerID)
	if err != nil {
		return err
	}

	var model interface{}
	switch section {
	case "media":
		model = &models.MediaItem{}
	case "choreography":
		model = &models.ChoreographyCredit{}
	case "awards":
		model = &models.Award{}
	case "workshops":
		model = &models.Workshop{}
	default:
		return errors.New("unknown portfolio section")
	}

	res := s.db.Where("id = ? AND profile_id = ?", itemID, profile.ID).Delete(model)
	if res.Error != nil {
		return storeError(res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
