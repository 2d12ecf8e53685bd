package shares

import (
	"time"

	"gorm.io/gorm"

	"homevault/pkg/homevault/auth"
	"homevault/pkg/homevault/models"
)

// Reason explains why access was granted or denied
type Reason string

const (
	ReasonOK                Reason = "OK"
	ReasonNotFound          Reason = "NOT_FOUND"
	ReasonRevoked           Reason = "REVOKED"
	ReasonExpired           Reason = "EXPIRED"
	ReasonPasswordRequired  Reason = "PASSWORD_REQUIRED"
	ReasonPasswordIncorrect Reason = "PASSWORD_INCORRECT"
)

// Decision is the outcome of evaluating a share link
type Decision struct {
	Granted     bool               `json:"granted"`
	AccessLevel models.AccessLevel `json:"access_level,omitempty"`
	Reason      Reason             `json:"reason"`

	// Link is set whenever the link exists, granted or not
	Link *models.ShareLink `json:"-"`
}

// Evaluator decides whether a share link currently grants access
type Evaluator struct {
	db  *gorm.DB
	now func() time.Time
}

// NewEvaluator creates an access policy evaluator
func NewEvaluator(db *gorm.DB) *Evaluator {
	return &Evaluator{db: db, now: time.Now}
}

// Evaluate checks a share link against the access policy. The checks run
// in a fixed order so a revoked-and-expired link always reports REVOKED:
// existence, revocation, expiry, then the password gate.
func (e *Evaluator) Evaluate(shareID string, suppliedPassword string) Decision {
	var link models.ShareLink
	if err := e.db.Where("share_id = ?", shareID).First(&link).Error; err != nil {
		// A failed lookup denies exactly like an unknown link
		return Decision{Granted: false, Reason: ReasonNotFound}
	}

	if link.Revoked {
		return Decision{Granted: false, Reason: ReasonRevoked, Link: &link}
	}

	if link.Expiry != nil && e.now().After(*link.Expiry) {
		return Decision{Granted: false, Reason: ReasonExpired, Link: &link}
	}

	if link.PasswordProtected {
		if suppliedPassword == "" {
			return Decision{Granted: false, Reason: ReasonPasswordRequired, Link: &link}
		}
		if !auth.CheckPassword(suppliedPassword, link.PasswordHash) {
			// Distinguished from PASSWORD_REQUIRED for UX, not security
			return Decision{Granted: false, Reason: ReasonPasswordIncorrect, Link: &link}
		}
	}

	return Decision{
		Granted:     true,
		AccessLevel: link.AccessLevel,
		Reason:      ReasonOK,
		Link:        &link,
	}
}
