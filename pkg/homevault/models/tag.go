package models

import (
	"time"

	"gorm.io/gorm"
)

// Tag represents a tag that can be applied to notes
type Tag struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID   uint           `gorm:"not null;index" json:"owner_id"`
	Name      string         `gorm:"not null;index" json:"name"`

	// Relationships
	Notes []Note `gorm:"many2many:note_tags;" json:"notes,omitempty"`
}
