package schema

import "time"

// AdminSession represents the sessions table - ephemeral admin auth records.
// Created on login, never updated; sessions expire by token TTL, rows are
// kept for audit.
type AdminSession struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Address is the normalized admin address that signed the login challenge
	Address string `gorm:"column:address;not null;type:text;index"`
	// Token is the issued bearer token
	Token     string    `gorm:"column:token;not null;uniqueIndex;type:text"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;type:timestamptz"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the AdminSession model
func (AdminSession) TableName() string {
	return "sessions"
}
