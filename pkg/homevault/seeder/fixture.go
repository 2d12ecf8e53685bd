package seeder

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

//go:embed fixture.json
var defaultFixture []byte

// Fixture is a seed dataset: users plus the content each of them owns.
// Items that share links point at carry a key unique within their user.
type Fixture struct {
	Users []UserFixture `json:"users" validate:"required,min=1,dive"`
}

// UserFixture describes one account and its content
type UserFixture struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`

	Tags        []string                `json:"tags,omitempty"`
	Notes       []NoteFixture           `json:"notes,omitempty" validate:"dive"`
	Folders     []BookmarkFolderFixture `json:"bookmark_folders,omitempty" validate:"dive"`
	Bookmarks   []BookmarkFixture       `json:"bookmarks,omitempty" validate:"dive"`
	Passwords   []PasswordFixture       `json:"passwords,omitempty" validate:"dive"`
	WalletCards []WalletCardFixture     `json:"wallet_cards,omitempty" validate:"dive"`
	Memos       []MemoFixture           `json:"memos,omitempty" validate:"dive"`
	FileFolders []FolderFixture         `json:"folders,omitempty" validate:"dive"`
	Files       []FileFixture           `json:"files,omitempty" validate:"dive"`
	Albums      []AlbumFixture          `json:"albums,omitempty" validate:"dive"`
	Photos      []PhotoFixture          `json:"photos,omitempty" validate:"dive"`
	Resumes     []ResumeFixture         `json:"resumes,omitempty" validate:"dive"`
	Shares      []ShareFixture          `json:"shares,omitempty" validate:"dive"`
}

// NoteFixture describes one note
type NoteFixture struct {
	Key      string   `json:"key,omitempty"`
	Title    string   `json:"title" validate:"required"`
	Body     string   `json:"body"`
	IsPinned bool     `json:"is_pinned"`
	Tags     []string `json:"tags,omitempty"`
}

// BookmarkFolderFixture describes one bookmark folder
type BookmarkFolderFixture struct {
	Key  string `json:"key,omitempty"`
	Name string `json:"name" validate:"required"`
}

// BookmarkFixture describes one bookmark
type BookmarkFixture struct {
	Key         string `json:"key,omitempty"`
	URL         string `json:"url" validate:"required,url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FolderKey   string `json:"folder_key,omitempty"`
	IsUnread    bool   `json:"is_unread"`
}

// PasswordFixture describes one stored credential
type PasswordFixture struct {
	Site       string `json:"site" validate:"required"`
	Username   string `json:"username"`
	Ciphertext string `json:"ciphertext" validate:"required"`
	Notes      string `json:"notes"`
}

// WalletCardFixture describes one stored card
type WalletCardFixture struct {
	Label      string `json:"label" validate:"required"`
	Holder     string `json:"holder"`
	LastFour   string `json:"last_four" validate:"omitempty,len=4,numeric"`
	Ciphertext string `json:"ciphertext" validate:"required"`
	ExpiresMM  int    `json:"expires_mm" validate:"omitempty,min=1,max=12"`
	ExpiresYY  int    `json:"expires_yy"`
}

// MemoFixture describes one voice memo
type MemoFixture struct {
	Key         string `json:"key,omitempty"`
	Title       string `json:"title" validate:"required"`
	DurationSec int    `json:"duration_sec" validate:"omitempty,min=0"`
	StoragePath string `json:"storage_path"`
	Transcript  string `json:"transcript"`
}

// FolderFixture describes one file folder
type FolderFixture struct {
	Key  string `json:"key,omitempty"`
	Name string `json:"name" validate:"required"`
}

// FileFixture describes one file record
type FileFixture struct {
	Key         string `json:"key,omitempty"`
	Name        string `json:"name" validate:"required"`
	FolderKey   string `json:"folder_key,omitempty"`
	Size        int64  `json:"size" validate:"omitempty,min=0"`
	MimeType    string `json:"mime_type"`
	StoragePath string `json:"storage_path"`
}

// AlbumFixture describes one photo album
type AlbumFixture struct {
	Key         string `json:"key,omitempty"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// PhotoFixture describes one photo record
type PhotoFixture struct {
	Key         string `json:"key,omitempty"`
	AlbumKey    string `json:"album_key,omitempty"`
	Caption     string `json:"caption"`
	StoragePath string `json:"storage_path"`
}

// ResumeFixture describes one resume
type ResumeFixture struct {
	Key       string `json:"key,omitempty"`
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content"`
	IsPrimary bool   `json:"is_primary"`
}

// ShareFixture describes one share link to create for an item
// identified by its key within the same user.
type ShareFixture struct {
	ItemKey       string `json:"item_key" validate:"required"`
	ItemType      string `json:"item_type" validate:"required,oneof=note bookmark file photo album memo resume"`
	Password      string `json:"password,omitempty"`
	AccessLevel   string `json:"access_level,omitempty" validate:"omitempty,oneof=view edit"`
	ExpiresInDays int    `json:"expires_in_days,omitempty" validate:"omitempty,min=1"`
}

// LoadFixture reads and validates a fixture. An empty path loads the
// embedded default dataset.
func LoadFixture(path string) (*Fixture, error) {
	data := defaultFixture
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading fixture %s: %w", path, err)
		}
		data = fileData
	}

	var fixture Fixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}

	if err := validator.New().Struct(&fixture); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}

	return &fixture, nil
}
