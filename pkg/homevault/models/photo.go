package models

import (
	"time"

	"gorm.io/gorm"
)

// Album groups photos for one owner
type Album struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`

	// Relationships
	Photos []Photo `gorm:"foreignKey:AlbumID" json:"photos,omitempty"`
}

// Photo represents photo metadata within an album
type Photo struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	AlbumID     *uint          `gorm:"index" json:"album_id,omitempty"`
	Caption     string         `json:"caption"`
	StoragePath string         `json:"storage_path"`
	TakenAt     *time.Time     `json:"taken_at,omitempty"`
}
