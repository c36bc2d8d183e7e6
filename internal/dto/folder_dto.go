package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateFolderRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Color       string `json:"color" validate:"max=32"`
}

func (r *CreateFolderRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

// UpdateFolderRequest: nil fields are left unchanged.
type UpdateFolderRequest struct {
	Id          uuid.UUID `json:"-"`
	Name        *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string   `json:"description" validate:"omitempty,max=500"`
	Color       *string   `json:"color" validate:"omitempty,min=1,max=32"`
}

func (r *UpdateFolderRequest) Normalize() {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
	}
}

type FolderResponse struct {
	Id          uuid.UUID `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	IsDefault   bool      `json:"isDefault"`
	User        uuid.UUID `json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ShowFolderResponse struct {
	FolderResponse
	NoteCount int64 `json:"noteCount"`
}

type DeleteFolderResponse struct {
	Message       string `json:"message"`
	DetachedNotes int64  `json:"detachedNotes"`
}
