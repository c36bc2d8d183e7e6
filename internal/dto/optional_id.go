package dto

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// OptionalID tells apart a missing JSON field, an explicit null/"" and an id.
//
//	absent       -> Set=false
//	null or ""   -> Set=true, Value=nil
//	"<uuid>"     -> Set=true, Value=&id
//	anything else-> Set=true, Invalid=true
type OptionalID struct {
	Set     bool
	Invalid bool
	Value   *uuid.UUID
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Value = nil
	o.Invalid = false

	if string(data) == "null" {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		o.Invalid = true
		return nil
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		o.Invalid = true
		return nil
	}
	o.Value = &id
	return nil
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value.String())
}

func IDOf(id uuid.UUID) OptionalID {
	return OptionalID{Set: true, Value: &id}
}
