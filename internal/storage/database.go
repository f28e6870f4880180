// Package storage provides the persistent key-value blob store backing the
// in-memory collections.
//
// # Usage
//
//	db, err := storage.NewDatabase("./bibliosmart.db")
//	raw, err := db.ReadCollection(entities.CollectionKeyBooks)
package storage

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bibliosmart/bibliosmart/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.CollectionRecord{},
		&entities.Operator{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ReadCollection returns the raw blob stored under key, or nil when the key
// has never been written. A missing key is not an error.
func (d *Database) ReadCollection(key string) ([]byte, error) {
	var record entities.CollectionRecord
	err := d.DB.Where("key = ?", key).First(&record).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", key, err)
	}
	return []byte(record.Value), nil
}

// WriteCollections overwrites every given blob inside a single transaction,
// so the three collections never land in storage half-updated.
func (d *Database) WriteCollections(blobs map[string][]byte) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		for key, value := range blobs {
			var record entities.CollectionRecord
			result := tx.Where("key = ?", key).First(&record)

			if result.Error == gorm.ErrRecordNotFound {
				record = entities.CollectionRecord{
					Key:   key,
					Value: string(value),
				}
				if err := tx.Create(&record).Error; err != nil {
					return fmt.Errorf("create collection %s: %w", key, err)
				}
				continue
			} else if result.Error != nil {
				return result.Error
			}

			record.Value = string(value)
			if err := tx.Save(&record).Error; err != nil {
				return fmt.Errorf("update collection %s: %w", key, err)
			}
		}
		return nil
	})
}
