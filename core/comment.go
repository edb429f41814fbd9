package core

// A DBComment belongs to one news item and one author.
type DBComment interface {
	ID() int
	NewsID() int
	AuthorID() int
	AuthorName() string
	Text() string
	TsCreated() int64
}

// CommentDB stores comments. GetComment returns ErrNotFound if there is
// no such comment.
type CommentDB interface {
	GetComment(id int) (DBComment, error)
	GetComments(newsID int) ([]DBComment, error) // oldest first, ties in insertion order
	CountComments(newsID int) (int, error)
	InsertComment(newsID, authorID int, text string, tsCreated int64) (DBComment, error)
	UpdateComment(comment DBComment, text string) error
	DeleteComment(comment DBComment) error
}
