// internal/services/admin_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stagefolio/stagefolio-backend/internal/models"
	"github.com/stagefolio/stagefolio-backend/internal/utils"
)

type AdminService struct {
	db    *gorm.DB
	authz *AuthorizationService
}

type AdminDashboardStats struct {
	TotalUsers          int64 `json:"total_users"`
	ActiveUsers         int64 `json:"active_users"`
	NewUsersThisMonth   int64 `json:"new_users_this_month"`
	TotalProfiles       int64 `json:"total_profiles"`
	UnclaimedProfiles   int64 `json:"unclaimed_profiles"`
	VerifiedProfiles    int64 `json:"verified_profiles"`
	PendingClaims       int64 `json:"pending_claims"`
	DecidedClaimsMonth  int64 `json:"decided_claims_this_month"`
	UnreadNotifications int64 `json:"unread_notifications"`
}

type AdminUserFilter struct {
	utils.PaginationParams
	UserType      *models.UserType   `json:"user_type,omitempty"`
	Status        *models.UserStatus `json:"status,omitempty"`
	CreatedAfter  *time.Time         `json:"created_after,omitempty"`
	CreatedBefore *time.Time         `json:"created_before,omitempty"`
}

func NewAdminService(db *gorm.DB, authz *AuthorizationService) *AdminService {
	return &AdminService{db: db, authz: authz}
}

// Dashboard Statistics
func (s *AdminService) GetDashboardStats(adminID uuid.UUID) (*AdminDashboardStats, error) {
	if _, err := s.authz.RequireAdmin(adminID); err != nil {
		return nil, err
	}

	stats := &AdminDashboardStats{}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// User statistics
	s.db.Model(&models.User{}).Count(&stats.TotalUsers)
	s.db.Model(&models.User{}).Where("status = ?", models.UserStatusActive).Count(&stats.ActiveUsers)
	s.db.Model(&models.User{}).Where("created_at >= ?", monthStart).Count(&stats.NewUsersThisMonth)

	// Profile statistics
	s.db.Model(&models.DanceProfile{}).Count(&stats.TotalProfiles)
	s.db.Model(&models.DanceProfile{}).Where("owner_id IS NULL").Count(&stats.UnclaimedProfiles)
	s.db.Model(&models.DanceProfile{}).
		Where("verification_status = ?", models.VerificationStatusVerified).
		Count(&stats.VerifiedProfiles)

	// Claim statistics
	s.db.Model(&models.ClaimRequest{}).
		Where("status = ?", models.ClaimStatusPending).Count(&stats.PendingClaims)
	s.db.Model(&models.ClaimRequest{}).
		Where("status IN (?, ?) AND decided_at >= ?",
			models.ClaimStatusApproved, models.ClaimStatusRejected, monthStart).
		Count(&stats.DecidedClaimsMonth)

	// Notification statistics
	s.db.Model(&models.AdminNotification{}).
		Where("status = ?", "unread").Count(&stats.UnreadNotifications)

	return stats, nil
}

// User management
func (s *AdminService) GetUsers(adminID uuid.UUID, filter AdminUserFilter) ([]models.User, int64, error) {
	if _, err := s.authz.RequireAdmin(adminID); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.User{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", like, like)
	}
	if filter.UserType != nil {
		query = query.Where("user_type = ?", *filter.UserType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, storeError(err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "username", "email"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, storeError(err)
	}

	return users, total, nil
}

// UpdateUserStatus suspends or reactivates a user account. Admins cannot
// change their own status.
func (s *AdminService) UpdateUserStatus(adminID, userID uuid.UUID, status models.UserStatus) (*models.User, error) {
	if _, err := s.authz.RequireAdmin(adminID); err != nil {
		return nil, err
	}

	if adminID == userID {
		return nil, errors.New("cannot change your own account status")
	}

	if status != models.UserStatusActive && status != models.UserStatusSuspended && status != models.UserStatusBanned {
		return nil, errors.New("invalid user status")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeError(err)
	}

	if err := s.db.Model(&user).Update("status", status).Error; err != nil {
		return nil, storeError(err)
	}

	return &user, nil
}

// Notifications
func (s *AdminService) GetNotifications(adminID uuid.UUID, params utils.PaginationParams) ([]models.AdminNotification, int64, error) {
	if _, err := s.authz.RequireAdmin(adminID); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.AdminNotification{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, storeError(err)
	}

	allowedSortFields := []string{"created_at", "priority"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var notifications []models.AdminNotification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, storeError(err)
	}

	return notifications, total, nil
}

func (s *AdminService) MarkNotificationRead(adminID, notificationID uuid.UUID) error {
	if _, err := s.authz.RequireAdmin(adminID); err != nil {
		return err
	}

	now := time.Now()
	res := s.db.Model(&models.AdminNotification{}).
		Where("id = ?", notificationID).
		Updates(map[string]interface{}{"status": "read", "read_at": now})
	if res.Error != nil {
		return storeError(res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
