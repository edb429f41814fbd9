package core

// A DBNote is a private text note. It is visible to its author only.
type DBNote interface {
	ID() int
	AuthorID() int
	Title() string
	Text() string
	Slug() string // unique across all notes of all users
	TsCreated() int64
}

// NoteDB stores notes. Get functions return ErrNotFound if there is no
// such note. Slug uniqueness must be enforced with a UNIQUE constraint.
type NoteDB interface {
	GetNoteBySlug(slug string) (DBNote, error)
	GetNotesByAuthor(authorID int) ([]DBNote, error) // insertion order
	InsertNote(authorID int, title, text, slug string) (DBNote, error)
	UpdateNote(note DBNote, title, text, slug string) error
	DeleteNote(note DBNote) error
	SlugTaken(slug string) (bool, error)
}
