package types

import (
	"time"

	"github.com/google/uuid"
)

// PointsBalance is the materialized sum of a user's history entries. Only the
// reward service mutates it; created lazily on first award.
type PointsBalance struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	Balance   int64     `gorm:"not null;default:0;column:balance" json:"balance"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (PointsBalance) TableName() string {
	return "points_balance"
}
