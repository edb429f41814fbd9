package core

// A DBNewsItem is public and read-only once published.
type DBNewsItem interface {
	ID() int
	Title() string
	Text() string
	TsPublished() int64
}

// NewsDB stores news items.
type NewsDB interface {
	GetNewsItem(id int) (DBNewsItem, error)
	GetLatest(limit, offset int) ([]DBNewsItem, error) // newest first, ties in insertion order
	CountNews() (int, error)
	InsertNewsItem(title, text string, tsPublished int64) (DBNewsItem, error)
}
