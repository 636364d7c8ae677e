// internal/models/portfolio.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Portfolio section rows all hang off a DanceProfile and are edited only by
// the profile owner or an admin.

type MediaItem struct {
	BaseModel
	ProfileID  uuid.UUID `json:"profile_id" gorm:"type:uuid;not null;index"`
	MediaType  MediaType `json:"media_type" gorm:"type:varchar(10);not null"`
	Title      string    `json:"title" gorm:"size:255;not null"`
	URL        string    `json:"url" gorm:"size:1024;not null"`
	StorageKey string    `json:"storage_key,omitempty" gorm:"size:512"`
	Caption    string    `json:"caption" gorm:"type:text"`
	SortOrder  int       `json:"sort_order" gorm:"default:0"`

	Profile *DanceProfile `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
}

type ChoreographyCredit struct {
	BaseModel
	ProfileID   uuid.UUID  `json:"profile_id" gorm:"type:uuid;not null;index"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Production  string     `json:"production" gorm:"size:255"`
	Role        string     `json:"role" gorm:"size:100"`
	PerformedAt *time.Time `json:"performed_at"`
	VideoURL    string     `json:"video_url" gorm:"size:1024"`

	Profile *DanceProfile `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
}

type Award struct {
	BaseModel
	ProfileID   uuid.UUID  `json:"profile_id" gorm:"type:uuid;not null;index"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Competition string     `json:"competition" gorm:"size:255"`
	Placement   string     `json:"placement" gorm:"size:50"`
	AwardedAt   *time.Time `json:"awarded_at"`

	Profile *DanceProfile `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
}

type Workshop struct {
	BaseModel
	ProfileID uuid.UUID  `json:"profile_id" gorm:"type:uuid;not null;index"`
	Title     string     `json:"title" gorm:"size:255;not null"`
	Venue     string     `json:"venue" gorm:"size:255"`
	City      string     `json:"city" gorm:"size:100"`
	HeldAt    *time.Time `json:"held_at"`
	Recurring bool       `json:"recurring" gorm:"default:false"`

	Profile *DanceProfile `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
}
