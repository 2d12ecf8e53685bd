package models

import (
	"time"

	"gorm.io/gorm"
)

// Resume represents a resume document stored as structured JSON
type Resume struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID   uint           `gorm:"not null;index" json:"owner_id"`
	Title     string         `gorm:"not null" json:"title"`
	Content   string         `gorm:"type:text" json:"content"`
	IsPrimary bool           `gorm:"default:false" json:"is_primary"`
}
