package models

import (
	"time"

	"gorm.io/gorm"
)

// BookmarkFolder groups bookmarks for one owner
type BookmarkFolder struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID   uint           `gorm:"not null;index" json:"owner_id"`
	Name      string         `gorm:"not null" json:"name"`

	// Relationships
	Bookmarks []Bookmark `gorm:"foreignKey:FolderID" json:"bookmarks,omitempty"`
}

// Bookmark represents a saved URL
type Bookmark struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	FolderID    *uint          `gorm:"index" json:"folder_id,omitempty"`
	URL         string         `gorm:"not null" json:"url"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	IsUnread    bool           `gorm:"default:false" json:"is_unread"`
}
