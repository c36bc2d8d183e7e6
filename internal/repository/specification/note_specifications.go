package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByFolderID struct {
	FolderID uuid.UUID
}

func (s ByFolderID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("folder_id = ?", s.FolderID)
}

// Unfiled keeps notes with no folder assigned.
type Unfiled struct{}

func (s Unfiled) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("folder_id IS NULL")
}

// WithFolder preloads the (id, name, color) of the referenced folder.
type WithFolder struct{}

func (s WithFolder) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Folder", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "color", "user_id")
	})
}
