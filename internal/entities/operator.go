package entities

import (
	"time"

	"gorm.io/gorm"
)

// Operator is a staff account that can sign in when local authentication
// is enabled. Operators live in a regular table, not in the collection
// blobs, since they are not part of the library domain model.
type Operator struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:100" json:"username"`
	PasswordHash string         `gorm:"size:100" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Operator) TableName() string {
	return "operators"
}
