package usecase

import (
	"strings"

	"github.com/aakashsubedi/NoteSpace/internal/model"
	"github.com/aakashsubedi/NoteSpace/internal/note"
)

func validateText(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return note.ErrEmptyTitle
	}
	if strings.TrimSpace(content) == "" {
		return note.ErrEmptyContent
	}
	return nil
}

func matches(n model.Note, input note.ListInput) bool {
	if input.Search != "" {
		q := strings.ToLower(input.Search)
		if !strings.Contains(strings.ToLower(n.Title), q) && !strings.Contains(strings.ToLower(n.Content), q) {
			return false
		}
	}
	if input.Tag != "" && !n.HasTag(input.Tag) {
		return false
	}
	return true
}

// collectTags returns each distinct tag once, in the order first seen.
func collectTags(notes []model.Note) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, n := range notes {
		for _, t := range n.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}

// normalizeTags trims tags and drops blanks and duplicates.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
