package catalog

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// CatalogEntry is a queryable projection of a decoded SauceBlock. It is
// never the source of truth for a file's SAUCE data — the file itself
// is — so a rescan always overwrites the row for its path.
type CatalogEntry struct {
	gorm.Model
	Path         string `gorm:"uniqueIndex"`
	Title        string
	Author       string
	Group        string
	Date         string
	DataType     string
	FileType     string
	MediaName    string
	CommentCount int
	FileSize     int64
	ScannedAt    int64
}

// UpsertEntry inserts or overwrites the row for entry.Path, stamping
// ScannedAt with the current time so All's "most recently scanned
// first" ordering reflects this scan rather than whatever the caller
// happened to leave in the field.
func (s *Store) UpsertEntry(entry *CatalogEntry) error {
	entry.ScannedAt = time.Now().Unix()

	var existing CatalogEntry
	result := s.DB.Where("path = ?", entry.Path).First(&existing)

	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return s.DB.Create(entry).Error
	case result.Error != nil:
		return result.Error
	default:
		entry.Model = existing.Model
		return s.DB.Save(entry).Error
	}
}

// FindByPath looks up the cataloged entry for path, if any.
func (s *Store) FindByPath(path string) (*CatalogEntry, error) {
	var entry CatalogEntry
	result := s.DB.Where("path = ?", path).First(&entry)
	if result.Error != nil {
		return nil, result.Error
	}
	return &entry, nil
}

// RemoveByPath deletes the cataloged entry for path, if any. Used when
// a scan finds a file has been removed from the art root.
func (s *Store) RemoveByPath(path string) error {
	return s.DB.Unscoped().Where("path = ?", path).Delete(&CatalogEntry{}).Error
}

// All returns every cataloged entry, most recently scanned first.
func (s *Store) All() ([]CatalogEntry, error) {
	var entries []CatalogEntry
	result := s.DB.Order("scanned_at desc").Find(&entries)
	return entries, result.Error
}

// Random returns one cataloged entry chosen uniformly at random, for
// the telnet/SSH gallery's "show me something" behavior.
func (s *Store) Random() (*CatalogEntry, error) {
	var entry CatalogEntry
	result := s.DB.Order("RANDOM()").First(&entry)
	if result.Error != nil {
		return nil, result.Error
	}
	return &entry, nil
}

// Count reports how many files are currently cataloged.
func (s *Store) Count() (int64, error) {
	var count int64
	result := s.DB.Model(&CatalogEntry{}).Count(&count)
	return count, result.Error
}
