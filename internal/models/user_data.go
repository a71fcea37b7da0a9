package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserData is one JSON document stored under a caller-chosen key.
// Keys are unique per user; deletes are hard so a key can be reused.
type UserData struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_user_data_user_key" json:"user_id"`
	Key       string         `gorm:"type:varchar(128);not null;uniqueIndex:idx_user_data_user_key" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null" json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName pins the table name independent of gorm's naming strategy.
func (UserData) TableName() string { return "user_data" }
