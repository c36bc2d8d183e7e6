// internal\entity\folder_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type Folder struct {
	Id          uuid.UUID
	Name        string
	Description string
	Color       string
	IsDefault   bool
	UserId      uuid.UUID // Owner ID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
