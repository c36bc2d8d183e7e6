package specification

import (
	"errors"
	"strings"
)

var ErrUnsupportedSortField = errors.New("unsupported sort field")

// noteSortColumns maps accepted sortBy values to note columns.
var noteSortColumns = map[string]string{
	"title":      "title",
	"content":    "content",
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
	"folder":     "folder_id",
	"folder_id":  "folder_id",
}

const DefaultNoteSortColumn = "updated_at"

// NoteOrder resolves the client's sortBy/sortOrder into ordering specs.
// Empty sortBy means updatedAt; only "desc" (any case) sorts descending, an empty order defaults to desc.
// id is appended as a tiebreaker so equal keys come back in a stable order.
func NoteOrder(sortBy, sortOrder string) ([]Specification, error) {
	column := DefaultNoteSortColumn
	if sortBy != "" {
		c, ok := noteSortColumns[sortBy]
		if !ok {
			return nil, ErrUnsupportedSortField
		}
		column = c
	}

	desc := sortOrder == "" || strings.EqualFold(sortOrder, "desc")

	return []Specification{
		OrderBy{Field: column, Desc: desc},
		OrderBy{Field: "id", Desc: desc},
	}, nil
}
