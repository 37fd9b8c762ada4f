package repository

// CreateNoteOptions holds the fields sent when creating a note. Title and
// content are expected to be non-empty; the backend may reject them otherwise.
type CreateNoteOptions struct {
	Title   string
	Content string
	Tags    []string
}

// UpdateNoteOptions replaces title and content. Tags are left untouched.
type UpdateNoteOptions struct {
	ID      string
	Title   string
	Content string
}
