package models

import (
	"time"

	"gorm.io/gorm"
)

// Folder represents a directory in a user's file tree
type Folder struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID   uint           `gorm:"not null;index" json:"owner_id"`
	ParentID  *uint          `gorm:"index" json:"parent_id,omitempty"`
	Name      string         `gorm:"not null" json:"name"`

	// Relationships
	Files []File `gorm:"foreignKey:FolderID" json:"files,omitempty"`
}

// File represents stored file metadata
type File struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	FolderID    *uint          `gorm:"index" json:"folder_id,omitempty"`
	Name        string         `gorm:"not null" json:"name"`
	Size        int64          `json:"size"`
	MimeType    string         `json:"mime_type"`
	StoragePath string         `json:"storage_path"`
}
