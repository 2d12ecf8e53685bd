package models

import (
	"time"

	"gorm.io/gorm"
)

// Note represents a text note
type Note struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID   uint           `gorm:"not null;index" json:"owner_id"`
	Title     string         `gorm:"not null" json:"title"`
	Body      string         `json:"body"`
	IsPinned  bool           `gorm:"default:false" json:"is_pinned"`

	// Relationships
	Owner User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Tags  []Tag `gorm:"many2many:note_tags;" json:"tags,omitempty"`
}
