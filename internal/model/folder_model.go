package model

import (
	"time"

	"github.com/google/uuid"
)

type Folder struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_folders_user_name"`
	Description string    `gorm:"type:text;not null;default:''"`
	Color       string    `gorm:"type:varchar(32);not null"`
	IsDefault   bool      `gorm:"not null;default:false"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_folders_user_name"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Folder) TableName() string {
	return "folders"
}
