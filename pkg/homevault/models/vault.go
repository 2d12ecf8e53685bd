package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordEntry represents a stored site credential.
// The secret itself is stored as an opaque ciphertext produced client-side;
// the server never sees the plaintext.
type PasswordEntry struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID    uint           `gorm:"not null;index" json:"owner_id"`
	Site       string         `gorm:"not null" json:"site"`
	Username   string         `json:"username"`
	Ciphertext string         `gorm:"not null" json:"ciphertext"`
	Notes      string         `json:"notes"`
}

// WalletCard represents a stored payment card record
type WalletCard struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID    uint           `gorm:"not null;index" json:"owner_id"`
	Label      string         `gorm:"not null" json:"label"`
	Holder     string         `json:"holder"`
	LastFour   string         `gorm:"size:4" json:"last_four"`
	Ciphertext string         `gorm:"not null" json:"ciphertext"`
	ExpiresMM  int            `json:"expires_mm"`
	ExpiresYY  int            `json:"expires_yy"`
}
