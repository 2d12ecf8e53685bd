package models

import "gorm.io/gorm"

// AllModels returns all models for migration.
// User must be migrated first as other models depend on it.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Tag{},
		&Note{},
		&BookmarkFolder{},
		&Bookmark{},
		&PasswordEntry{},
		&WalletCard{},
		&VoiceMemo{},
		&Folder{},
		&File{},
		&Album{},
		&Photo{},
		&Resume{},
		&ShareLink{},
		&AccessEvent{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
