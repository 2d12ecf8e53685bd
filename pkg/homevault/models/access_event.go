package models

import (
	"time"
)

// AccessEvent records one granted access through a share link.
// Rows are append-only; they are removed only by cascade when the
// parent ShareLink is hard-deleted.
type AccessEvent struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ShareLinkID   uint      `gorm:"not null;index" json:"share_link_id"`
	ShareID       string    `gorm:"size:36;index" json:"share_id"`
	Timestamp     time.Time `gorm:"index" json:"timestamp"`
	SourceAddress string    `json:"source_address"`
	AgentString   string    `json:"agent_string"`
}
