package shares

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"homevault/pkg/homevault/auth"
	"homevault/pkg/homevault/models"
)

// Registry creates, stores, mutates and revokes share links.
// All operations are single transactions against the database; the
// registry itself holds no mutable state.
type Registry struct {
	db      *gorm.DB
	baseURL string
}

// NewRegistry creates a share link registry. baseURL is the public base
// used to derive share URLs.
func NewRegistry(db *gorm.DB, baseURL string) *Registry {
	return &Registry{db: db, baseURL: baseURL}
}

// CreateOptions holds the optional settings for a new share link
type CreateOptions struct {
	Expiry      *time.Time
	Password    string
	AccessLevel models.AccessLevel
}

// UpdatePatch is a partial update. Nil fields are left untouched.
// ClearExpiry and ClearPassword explicitly remove the corresponding
// setting, since a nil pointer alone cannot distinguish "absent" from
// "set to never".
type UpdatePatch struct {
	Expiry        *time.Time
	ClearExpiry   bool
	Password      *string
	ClearPassword bool
	AccessLevel   *models.AccessLevel
}

// Create makes a new share link for an item the owner holds.
// The share id and token are generated once and never change.
func (r *Registry) Create(ownerID uint, itemID uint, itemType models.ItemType, opts CreateOptions) (*models.ShareLink, error) {
	if !models.ValidItemType(itemType) {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown item type %q", itemType)}
	}

	if err := r.checkOwnership(ownerID, itemID, itemType); err != nil {
		return nil, err
	}

	level := opts.AccessLevel
	if level == "" {
		level = models.AccessLevelView
	}
	if !models.ValidAccessLevel(level) {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown access level %q", level)}
	}

	token, err := generateToken(32)
	if err != nil {
		return nil, err
	}

	link := models.ShareLink{
		ShareID:     uuid.NewString(),
		Token:       token,
		OwnerID:     ownerID,
		ItemID:      itemID,
		ItemType:    itemType,
		Expiry:      opts.Expiry,
		AccessLevel: level,
	}

	if opts.Password != "" {
		hash, err := auth.HashPassword(opts.Password)
		if err != nil {
			return nil, err
		}
		link.PasswordProtected = true
		link.PasswordHash = hash
	}

	if err := r.db.Create(&link).Error; err != nil {
		return nil, err
	}

	return &link, nil
}

// Get returns the current state of a share link
func (r *Registry) Get(shareID string) (*models.ShareLink, error) {
	var link models.ShareLink
	if err := r.db.Where("share_id = ?", shareID).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{ShareID: shareID}
		}
		return nil, err
	}
	return &link, nil
}

// ListByOwner returns all of the caller's share links in creation order,
// revoked links included.
func (r *Registry) ListByOwner(ownerID uint) ([]models.ShareLink, error) {
	var links []models.ShareLink
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at ASC, id ASC").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// Update applies a partial patch to a share link. Only the owner may
// update, and a revoked link can no longer be changed.
func (r *Registry) Update(shareID string, callerID uint, patch UpdatePatch) (*models.ShareLink, error) {
	link, err := r.Get(shareID)
	if err != nil {
		return nil, err
	}

	if link.OwnerID != callerID {
		return nil, &ForbiddenError{Message: "only the owner may update a share link"}
	}
	if link.Revoked {
		return nil, &ConflictError{Message: "share link has been revoked"}
	}

	if patch.ClearExpiry {
		link.Expiry = nil
	} else if patch.Expiry != nil {
		link.Expiry = patch.Expiry
	}

	if patch.ClearPassword {
		link.PasswordProtected = false
		link.PasswordHash = ""
	} else if patch.Password != nil && *patch.Password != "" {
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		link.PasswordProtected = true
		link.PasswordHash = hash
	}

	if patch.AccessLevel != nil {
		if !models.ValidAccessLevel(*patch.AccessLevel) {
			return nil, &ValidationError{Message: fmt.Sprintf("unknown access level %q", *patch.AccessLevel)}
		}
		link.AccessLevel = *patch.AccessLevel
	}

	if err := r.db.Save(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

// Revoke marks a share link permanently inert. Idempotent: revoking an
// already revoked link is a silent no-op.
func (r *Registry) Revoke(shareID string, callerID uint) error {
	link, err := r.Get(shareID)
	if err != nil {
		return err
	}

	if link.OwnerID != callerID {
		return &ForbiddenError{Message: "only the owner may revoke a share link"}
	}
	if link.Revoked {
		return nil
	}

	return r.db.Model(link).Update("revoked", true).Error
}

// Delete hard-removes a share link and its access events
func (r *Registry) Delete(shareID string, callerID uint) error {
	link, err := r.Get(shareID)
	if err != nil {
		return err
	}

	if link.OwnerID != callerID {
		return &ForbiddenError{Message: "only the owner may delete a share link"}
	}

	// Events are removed in the same transaction; sqlite does not always
	// enforce the FK cascade.
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("share_link_id = ?", link.ID).Delete(&models.AccessEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(link).Error
	})
}

// PublicURL derives the public capability URL for a share link.
// Deterministic: same link, same URL, always.
func (r *Registry) PublicURL(link *models.ShareLink) string {
	return fmt.Sprintf("%s/shared/%s?token=%s", r.baseURL, link.ShareID, link.Token)
}

// checkOwnership verifies the item exists and belongs to the owner
func (r *Registry) checkOwnership(ownerID uint, itemID uint, itemType models.ItemType) error {
	var target interface{}
	switch itemType {
	case models.ItemTypeNote:
		target = &models.Note{}
	case models.ItemTypeBookmark:
		target = &models.Bookmark{}
	case models.ItemTypeFile:
		target = &models.File{}
	case models.ItemTypePhoto:
		target = &models.Photo{}
	case models.ItemTypeAlbum:
		target = &models.Album{}
	case models.ItemTypeMemo:
		target = &models.VoiceMemo{}
	case models.ItemTypeResume:
		target = &models.Resume{}
	default:
		return &ValidationError{Message: fmt.Sprintf("unknown item type %q", itemType)}
	}

	err := r.db.Where("id = ? AND owner_id = ?", itemID, ownerID).First(target).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ValidationError{Message: fmt.Sprintf("%s %d does not exist or is not owned by the caller", itemType, itemID)}
	}
	return err
}

func generateToken(length int) (string, error) {
	buf := make([]byte, length/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
