package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title   string     `json:"title" validate:"required,max=100"`
	Content string     `json:"content" validate:"required,max=100000"`
	Folder  OptionalID `json:"folder,omitzero"`
}

func (r *CreateNoteRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

// UpdateNoteRequest: absent or null title/content mean "no change"; an empty string is rejected.
type UpdateNoteRequest struct {
	Id      uuid.UUID  `json:"-"`
	Title   *string    `json:"title" validate:"omitempty,min=1,max=100"`
	Content *string    `json:"content" validate:"omitempty,min=1,max=100000"`
	Folder  OptionalID `json:"folder,omitzero"`
}

func (r *UpdateNoteRequest) Normalize() {
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		r.Title = &trimmed
	}
}

// ListNotesQuery carries the list filters. Folder is "", "none" or a folder id.
type ListNotesQuery struct {
	Search    string `query:"search"`
	Folder    string `query:"folder"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

const FolderFilterNone = "none"

type NoteFolderResponse struct {
	Id    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

type NoteResponse struct {
	Id        uuid.UUID           `json:"_id"`
	Title     string              `json:"title"`
	Content   string              `json:"content"`
	User      uuid.UUID           `json:"user"`
	Folder    *NoteFolderResponse `json:"folder"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}
