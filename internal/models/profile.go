// internal/models/profile.go
package models

import (
	"github.com/google/uuid"
)

// DanceProfile is a claimable dancer or team identity record. OwnerID is nil
// for unclaimed profiles (admin pre-seeds, bulk imports); it is set by the
// claim engine when a claim is approved, or at creation time when a user
// registers their own profile.
type DanceProfile struct {
	BaseModel
	Slug               string             `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	DisplayName        string             `json:"display_name" gorm:"size:255;not null"`
	ProfileType        ProfileType        `json:"profile_type" gorm:"type:varchar(10);not null"`
	Bio                string             `json:"bio" gorm:"type:text"`
	City               string             `json:"city" gorm:"size:100"`
	Styles             JSONB              `json:"styles" gorm:"type:jsonb"`
	ContactEmail       string             `json:"contact_email" gorm:"size:255"`
	ContactPhone       *string            `json:"contact_phone" gorm:"size:50"`
	OwnerID            *uuid.UUID         `json:"owner_id" gorm:"type:uuid;index"`
	VerificationStatus VerificationStatus `json:"verification_status" gorm:"type:varchar(20);default:'unverified'"`

	// Relationships
	Owner        *User                `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Claims       []ClaimRequest       `json:"claims,omitempty" gorm:"foreignKey:ProfileID"`
	MediaItems   []MediaItem          `json:"media_items,omitempty" gorm:"foreignKey:ProfileID"`
	Choreography []ChoreographyCredit `json:"choreography,omitempty" gorm:"foreignKey:ProfileID"`
	Awards       []Award              `json:"awards,omitempty" gorm:"foreignKey:ProfileID"`
	Workshops    []Workshop           `json:"workshops,omitempty" gorm:"foreignKey:ProfileID"`
}

func (p *DanceProfile) IsClaimed() bool {
	return p.OwnerID != nil
}
