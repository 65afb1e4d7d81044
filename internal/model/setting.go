package model

import (
	"time"

	"github.com/google/uuid"
)

// Setting keys.
const (
	SettingBusiness    = "business"
	SettingPreferences = "preferences"
	SettingProfile     = "profile"
)

// Setting stores a per-user settings document as raw JSON under a fixed key
// (business | preferences | profile).
type Setting struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_setting_user_key,unique"`
	Key       string    `gorm:"type:varchar(20);not null;index:idx_setting_user_key,unique"`
	Value     string    `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
