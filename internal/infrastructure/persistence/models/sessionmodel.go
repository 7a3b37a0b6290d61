package models

import (
	"time"

	"boxmas/internal/shared/constants"
)

// SessionModel represents the database persistence model for sessions.
type SessionModel struct {
	ID         string    `gorm:"primarykey;size:32"`
	UserID     uint      `gorm:"not null;index"`
	Token      string    `gorm:"uniqueIndex;not null;size:512"`
	DeviceInfo string    `gorm:"size:512"`
	IPAddress  string    `gorm:"size:64"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	LastUsedAt time.Time `gorm:"not null"`
	CreatedAt  time.Time
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string {
	return constants.TableSessions
}

// All returns every model the schema is built from, in creation order.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&SessionModel{},
	}
}
