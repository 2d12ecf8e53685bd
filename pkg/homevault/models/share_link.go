package models

import (
	"time"
)

// ItemType identifies what kind of resource a share link points at
type ItemType string

const (
	ItemTypeNote     ItemType = "note"
	ItemTypeBookmark ItemType = "bookmark"
	ItemTypeFile     ItemType = "file"
	ItemTypePhoto    ItemType = "photo"
	ItemTypeAlbum    ItemType = "album"
	ItemTypeMemo     ItemType = "memo"
	ItemTypeResume   ItemType = "resume"
)

// KnownItemTypes lists every shareable resource kind
var KnownItemTypes = []ItemType{
	ItemTypeNote,
	ItemTypeBookmark,
	ItemTypeFile,
	ItemTypePhoto,
	ItemTypeAlbum,
	ItemTypeMemo,
	ItemTypeResume,
}

// AccessLevel is the permission a share link grants
type AccessLevel string

const (
	AccessLevelView AccessLevel = "view"
	AccessLevelEdit AccessLevel = "edit"
)

// ShareLink is a capability URL granting bounded access to one resource.
// ShareID and Token are set at creation and never change; the public link
// is derived from them. Revoked is monotonic: once true the link is inert.
type ShareLink struct {
	ID                uint        `gorm:"primarykey" json:"id"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
	ShareID           string      `gorm:"size:36;uniqueIndex;not null" json:"share_id"`
	Token             string      `gorm:"size:64;not null" json:"-"`
	OwnerID           uint        `gorm:"not null;index" json:"owner_id"`
	ItemID            uint        `gorm:"not null" json:"item_id"`
	ItemType          ItemType    `gorm:"type:varchar(20);not null" json:"item_type"`
	Expiry            *time.Time  `json:"expiry,omitempty"`
	PasswordProtected bool        `gorm:"default:false" json:"password_protected"`
	PasswordHash      string      `json:"-"`
	AccessLevel       AccessLevel `gorm:"type:varchar(10);default:'view'" json:"access_level"`
	Revoked           bool        `gorm:"default:false" json:"revoked"`
	Views             uint        `gorm:"default:0" json:"views"`

	// Relationships
	Owner        User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	AccessEvents []AccessEvent `gorm:"foreignKey:ShareLinkID;constraint:OnDelete:CASCADE" json:"access_events,omitempty"`
}

// ValidItemType reports whether t is a recognized resource kind
func ValidItemType(t ItemType) bool {
	for _, known := range KnownItemTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ValidAccessLevel reports whether l is a recognized access level
func ValidAccessLevel(l AccessLevel) bool {
	return l == AccessLevelView || l == AccessLevelEdit
}
