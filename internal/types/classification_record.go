package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ClassificationRecord is the uniqueness gate for reward issuance: the
// fingerprint column carries a unique index, so at most one record can ever
// exist per distinct image content. Append-only.
type ClassificationRecord struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Fingerprint   string         `gorm:"uniqueIndex;not null;size:64;column:fingerprint" json:"fingerprint"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Category      string         `gorm:"not null;column:category" json:"category"`
	TopLabel      string         `gorm:"column:top_label" json:"top_label"`
	TopConfidence float64        `gorm:"column:top_confidence" json:"top_confidence"`
	Predictions   datatypes.JSON `gorm:"column:predictions" json:"predictions,omitempty"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
}

func (ClassificationRecord) TableName() string {
	return "classification_record"
}
