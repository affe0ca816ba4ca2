package types

import (
	"time"

	"github.com/google/uuid"
)

// PointsHistoryEntry is the append-only audit trail; one entry per balance
// mutation, immutable once written.
type PointsHistoryEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Delta       int64     `gorm:"not null;column:delta" json:"delta"`
	Reason      string    `gorm:"not null;column:reason" json:"reason"`
	Fingerprint string    `gorm:"size:64;column:fingerprint" json:"fingerprint,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (PointsHistoryEntry) TableName() string {
	return "points_history_entry"
}
