package shares

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"homevault/pkg/homevault/models"
)

// Analytics records and reports access events per share link
type Analytics struct {
	db *gorm.DB
}

// NewAnalytics creates an analytics aggregator
func NewAnalytics(db *gorm.DB) *Analytics {
	return &Analytics{db: db}
}

// Summary is derived entirely from the recorded access events and the
// link's view counter; there is no separate mutable state.
type Summary struct {
	TotalViews     uint                 `json:"total_views"`
	UniqueVisitors int                  `json:"unique_visitors"`
	LastAccessed   *time.Time           `json:"last_accessed,omitempty"`
	AccessLog      []models.AccessEvent `json:"access_log"`
}

// RecordAccess appends an access event and bumps the view counter.
// Callers invoke this only after the evaluator granted access. The
// increment happens SQL-side inside the same transaction as the event
// insert, so concurrent accesses never lose an update.
func (a *Analytics) RecordAccess(shareID string, sourceAddress string, agentString string) error {
	return a.db.Transaction(func(tx *gorm.DB) error {
		var link models.ShareLink
		if err := tx.Where("share_id = ?", shareID).First(&link).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{ShareID: shareID}
			}
			return err
		}

		event := models.AccessEvent{
			ShareLinkID:   link.ID,
			ShareID:       link.ShareID,
			Timestamp:     time.Now(),
			SourceAddress: sourceAddress,
			AgentString:   agentString,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		return tx.Model(&link).UpdateColumn("views", gorm.Expr("views + 1")).Error
	})
}

// Summarize reports total views, distinct visitors and the time of the
// most recent access for one share link.
func (a *Analytics) Summarize(shareID string) (*Summary, error) {
	var link models.ShareLink
	if err := a.db.Where("share_id = ?", shareID).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{ShareID: shareID}
		}
		return nil, err
	}

	var events []models.AccessEvent
	if err := a.db.Where("share_link_id = ?", link.ID).Order("timestamp ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalViews: link.Views,
		AccessLog:  events,
	}

	seen := make(map[string]struct{})
	for i := range events {
		seen[events[i].SourceAddress] = struct{}{}
	}
	summary.UniqueVisitors = len(seen)

	if len(events) > 0 {
		last := events[len(events)-1].Timestamp
		summary.LastAccessed = &last
	}

	return summary, nil
}
