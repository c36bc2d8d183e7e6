package specification

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike makes q match literally inside a LIKE pattern.
func EscapeLike(q string) string {
	return likeEscaper.Replace(q)
}

// NoteSearchQuery filters notes by a case-insensitive substring of title OR content.
type NoteSearchQuery struct {
	Query string
}

func (s NoteSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + EscapeLike(s.Query) + "%"

	// ILIKE for Postgres; SQLite has no ILIKE, so both sides go through the same LOWER().
	if db.Dialector != nil && db.Dialector.Name() == "postgres" {
		return db.Where(`(title ILIKE ? ESCAPE '\' OR content ILIKE ? ESCAPE '\')`, pattern, pattern)
	}
	return db.Where(`(LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(content) LIKE LOWER(?) ESCAPE '\')`, pattern, pattern)
}
