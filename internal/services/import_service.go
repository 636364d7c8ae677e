// internal/services/import_service.go
package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stagefolio/stagefolio-backend/internal/models"
)

// ImportService turns an admin-uploaded CSV into unclaimed, claimable
// profiles, one row at a time. A bad row is recorded and skipped; the import
// never aborts partway.
type ImportService struct {
	db    *gorm.DB
	authz *AuthorizationService
}

type ImportRowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type ImportResult struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}

var importColumns = []string{"slug", "display_name", "profile_type", "contact_email", "contact_phone", "city", "styles"}

func NewImportService(db *gorm.DB, authz *AuthorizationService) *ImportService {
	return &ImportService{db: db, authz: authz}
}

// ImportProfiles reads the CSV and creates an unclaimed DanceProfile per
// valid row. Header order must match importColumns.
func (s *ImportService) ImportProfiles(adminID uuid.UUID, r io.Reader) (*ImportResult, error) {
	if _, err := s.authz.RequireAdmin(adminID); err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	line := 1

	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, ImportRowError{Line: line, Message: err.Error()})
			continue
		}

		profile, err := rowToProfile(record)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, ImportRowError{Line: line, Message: err.Error()})
			continue
		}

		if err := s.db.Create(profile).Error; err != nil {
			msg := "database error"
			if isUniqueViolation(err) {
				msg = fmt.Sprintf("slug %q already exists", profile.Slug)
			}
			result.Skipped++
			result.Errors = append(result.Errors, ImportRowError{Line: line, Message: msg})
			continue
		}

		result.Imported++
	}

	logrus.WithFields(logrus.Fields{
		"imported": result.Imported,
		"skipped":  result.Skipped,
		"admin_id": adminID,
	}).Info("Profile import completed")

	return result, nil
}

func validateHeader(header []string) error {
	if len(header) != len(importColumns) {
		return fmt.Errorf("expected %d columns, got %d", len(importColumns), len(header))
	}
	for i, col := range importColumns {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return fmt.Errorf("expected column %d to be %q, got %q", i+1, col, header[i])
		}
	}
	return nil
}

func rowToProfile(record []string) (*models.DanceProfile, error) {
	if len(record) != len(importColumns) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(importColumns), len(record))
	}

	slug := strings.TrimSpace(record[0])
	displayName := strings.TrimSpace(record[1])
	profileType := models.ProfileType(strings.TrimSpace(record[2]))

	if slug == "" {
		return nil, fmt.Errorf("slug is required")
	}
	if displayName == "" {
		return nil, fmt.Errorf("display_name is required")
	}
	if profileType != models.ProfileTypeSolo && profileType != models.ProfileTypeTeam {
		return nil, fmt.Errorf("invalid profile_type %q", record[2])
	}

	profile := &models.DanceProfile{
		Slug:         slug,
		DisplayName:  displayName,
		ProfileType:  profileType,
		ContactEmail: strings.TrimSpace(record[3]),
		City:         strings.TrimSpace(record[5]),
	}

	if phone := strings.TrimSpace(record[4]); phone != "" {
		profile.ContactPhone = &phone
	}

	if styles := strings.TrimSpace(record[6]); styles != "" {
		parts := strings.Split(styles, ";")
		values := make([]interface{}, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				values = append(values, p)
			}
		}
		profile.Styles = models.JSONB{"styles": values}
	}

	return profile, nil
}
