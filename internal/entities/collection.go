package entities

import (
	"time"
)

// CollectionRecord is one persisted collection blob. Each of the three
// library collections is stored whole under its own key and overwritten
// on every mutation.
type CollectionRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CollectionRecord) TableName() string {
	return "collections"
}

// Storage keys for the three collection blobs.
const (
	CollectionKeyBooks   = "lib_books"
	CollectionKeyReaders = "lib_readers"
	CollectionKeyLoans   = "lib_loans"
)
