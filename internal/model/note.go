package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Note is a single note owned by exactly one user.
type Note struct {
	ID        ID
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
	Owner     ID
}

// HasTag reports whether tag is one of the note's tags.
func (n Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type noteWire struct {
	ID        ID              `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Tags      []string        `json:"tags,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	User      json.RawMessage `json:"user,omitempty"`
}

// UnmarshalJSON decodes the backend representation. The owner may arrive
// as a bare id or as an embedded user object.
func (n *Note) UnmarshalJSON(data []byte) error {
	var w noteWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var owner ID
	raw := bytes.TrimSpace(w.User)
	if len(raw) > 0 && raw[0] == '{' {
		var u User
		if err := json.Unmarshal(raw, &u); err != nil {
			return err
		}
		owner = u.ID
	} else if len(raw) > 0 {
		if err := json.Unmarshal(raw, &owner); err != nil {
			return err
		}
	}

	*n = Note{
		ID:        w.ID,
		Title:     w.Title,
		Content:   w.Content,
		Tags:      w.Tags,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
		Owner:     owner,
	}
	return nil
}

// MarshalJSON writes the backend representation with the owner as a bare id.
func (n Note) MarshalJSON() ([]byte, error) {
	w := noteWire{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      n.Tags,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if n.Owner != "" {
		raw, err := json.Marshal(n.Owner)
		if err != nil {
			return nil, err
		}
		w.User = raw
	}
	return json.Marshal(w)
}
