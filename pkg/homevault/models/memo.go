package models

import (
	"time"

	"gorm.io/gorm"
)

// VoiceMemo represents a recorded memo. Only metadata is kept here;
// the audio itself lives at StoragePath.
type VoiceMemo struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	Title       string         `gorm:"not null" json:"title"`
	DurationSec int            `json:"duration_sec"`
	StoragePath string         `json:"storage_path"`
	Transcript  string         `json:"transcript"`
}
