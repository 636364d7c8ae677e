// internal/services/authorization_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stagefolio/stagefolio-backend/internal/models"
)

// AuthorizationService answers privilege questions against the database.
// Every admin-gated operation calls RequireAdmin here instead of re-querying
// inline, and the check always runs before any store transaction opens.
type AuthorizationService struct {
	db *gorm.DB
}

func NewAuthorizationService(db *gorm.DB) *AuthorizationService {
	return &AuthorizationService{db: db}
}

func (s *AuthorizationService) GetUser(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeError(err)
	}
	return &user, nil
}

// RequireAdmin resolves the caller and fails with ErrForbidden unless they
// hold an active admin account.
func (s *AuthorizationService) RequireAdmin(userID uuid.UUID) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	if !user.IsAdmin() || user.Status != models.UserStatusActive {
		return nil, ErrForbidden
	}

	return user, nil
}

func (s *AuthorizationService) IsAdmin(userID uuid.UUID) (bool, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin() && user.Status == models.UserStatusActive, nil
}

// RequireProfileOwner fails with ErrNotOwner unless the caller owns the
// profile or is an admin.
func (s *AuthorizationService) RequireProfileOwner(profile *models.DanceProfile, userID uuid.UUID) error {
	if profile.OwnerID != nil && *profile.OwnerID == userID {
		return nil
	}

	isAdmin, err := s.IsAdmin(userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return fmt.Errorf("%w: profile %s", ErrNotOwner, profile.Slug)
	}
	return nil
}
