// Package catalog is the SQLite-backed index of scanned art files and
// their decoded SAUCE metadata, plus the curator accounts that gate
// write access to the SSH gallery.
package catalog

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store wraps the catalog's database connection.
type Store struct {
	DB *gorm.DB
}

// New opens (creating if necessary) the sqlite database at filepath
// and migrates the catalog and curator-account tables.
func New(filepath string, quiet bool) (*Store, error) {
	config := &gorm.Config{}
	if quiet {
		config.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(filepath), config)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&CatalogEntry{}, &User{}); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
