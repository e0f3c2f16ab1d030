package schema

import "time"

// Setting stores arbitrary key-value pairs for configuration and state
// (block cursors, feature toggles)
type Setting struct {
	Key       string    `gorm:"primaryKey;type:text"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Setting) TableName() string {
	return "settings"
}
