package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID
	Title     string
	Content   string
	UserId    uuid.UUID
	FolderId  *uuid.UUID // nil = unfiled
	Folder    *NoteFolder
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteFolder is the read-side view of the folder a note points at.
// It is nil when the note is unfiled or the folder no longer exists.
type NoteFolder struct {
	Id    uuid.UUID
	Name  string
	Color string
}

func (n *Note) IsFiled() bool {
	return n.FolderId != nil
}
