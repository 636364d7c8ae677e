// internal/models/claim.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// ClaimRequest is a request by a user to take ownership of a DanceProfile.
// Rows are never deleted; decided claims stay around as the audit trail.
//
// A partial unique index (one pending claim per profile) is created in
// database.RunMigrations; GORM struct tags cannot express it.
type ClaimRequest struct {
	BaseModel
	ProfileID             uuid.UUID   `json:"profile_id" gorm:"type:uuid;not null;index"`
	RequesterID           uuid.UUID   `json:"requester_id" gorm:"type:uuid;not null;index"`
	RequesterContactEmail string      `json:"requester_contact_email" gorm:"size:255;not null"`
	RequesterContactPhone *string     `json:"requester_contact_phone" gorm:"size:50"`
	EmailMatch            *bool       `json:"email_match"`
	PhoneMatch            *bool       `json:"phone_match"`
	Status                ClaimStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	DecidedBy             *uuid.UUID  `json:"decided_by" gorm:"type:uuid"`
	DecidedAt             *time.Time  `json:"decided_at"`
	DecisionReason        *string     `json:"decision_reason" gorm:"type:text"`

	// Relationships
	Profile   *DanceProfile `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	Requester *User         `json:"requester,omitempty" gorm:"foreignKey:RequesterID"`
	Decider   *User         `json:"decider,omitempty" gorm:"foreignKey:DecidedBy"`
}
