package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title     string     `gorm:"type:varchar(100);not null"`
	Content   string     `gorm:"type:text;not null"`
	UserId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	FolderId  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime;index"`

	// Read-side join only; never written through the association.
	Folder *Folder `gorm:"foreignKey:FolderId;references:Id"`
}

func (Note) TableName() string {
	return "notes"
}
