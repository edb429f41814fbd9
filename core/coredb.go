package core

import (
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/wansing/kiosk/auth"
)

type CoreDB struct {
	CommentDB
	NewsDB
	NoteDB
	auth.AuthDB
	SessionManager *scs.SessionManager
	Config         Config
}

func (c *CoreDB) Init(sessionStore scs.Store) {
	c.SessionManager = scs.New()
	c.SessionManager.Store = sessionStore
	c.SessionManager.Cookie.Persist = false                 // Don't store cookie across browser sessions. Required for GDPR cookie consent exemption criterion B.
	c.SessionManager.Cookie.SameSite = http.SameSiteLaxMode // good CSRF protection if HTTP GET doesn't modify anything
	c.SessionManager.Cookie.Secure = false                  // else running on localhost or behind a http proxy fails
	c.SessionManager.IdleTimeout = 12 * time.Hour
	c.SessionManager.Lifetime = 720 * time.Hour
}

// ListNotes returns the user's own notes in insertion order. Notes of
// other users are never included.
func (c *CoreDB) ListNotes(user auth.User) ([]DBNote, error) {
	if user == nil {
		return nil, ErrAuthRequired
	}
	return c.NoteDB.GetNotesByAuthor(user.ID())
}

// OpenNote returns the note with the given slug if it belongs to the
// user. Foreign notes are reported as ErrNotFound, see RequireOwner.
func (c *CoreDB) OpenNote(user auth.User, slug string) (DBNote, error) {
	if user == nil {
		return nil, ErrAuthRequired
	}
	note, err := c.NoteDB.GetNoteBySlug(slug)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(user, note); err != nil {
		return nil, err
	}
	return note, nil
}

// AddNote creates a note owned by user. If slug is empty, it is derived
// from the title.
func (c *CoreDB) AddNote(user auth.User, title, text, slug string) (DBNote, error) {
	if user == nil {
		return nil, ErrAuthRequired
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ValidationError{Field: "title", Message: "title can't be empty"}
	}
	slug, err := AssignSlug(slug, title, c.NoteDB.SlugTaken)
	if err != nil {
		return nil, err
	}
	return c.NoteDB.InsertNote(user.ID(), title, text, slug)
}

// EditNote updates the user's note which currently has oldSlug.
func (c *CoreDB) EditNote(user auth.User, oldSlug, title, text, slug string) error {

	note, err := c.OpenNote(user, oldSlug)
	if err != nil {
		return err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return ValidationError{Field: "title", Message: "title can't be empty"}
	}

	var newSlug = NormalizeSlug(slug)
	if newSlug == "" {
		newSlug = Slugify(title)
	}
	if newSlug == "" {
		return ValidationError{Field: "slug", Message: "slug can't be empty"}
	}

	// the note keeping its own slug is not a conflict
	if newSlug != note.Slug() {
		if taken, err := c.NoteDB.SlugTaken(newSlug); err != nil {
			return err
		} else if taken {
			return ConflictError{Field: "slug", Message: newSlug + " is already taken, choose a unique slug"}
		}
	}

	return c.NoteDB.UpdateNote(note, title, text, newSlug)
}

// DeleteNote deletes the user's note with the given slug.
func (c *CoreDB) DeleteNote(user auth.User, slug string) error {
	note, err := c.OpenNote(user, slug)
	if err != nil {
		return err
	}
	return c.NoteDB.DeleteNote(note)
}

// LatestNews returns one page of news items, newest first, and the total
// number of pages. Pages are counted from 1.
func (c *CoreDB) LatestNews(page int) ([]DBNewsItem, int, error) {

	if page < 1 {
		page = 1
	}
	var perPage = c.Config.NewsPageSize
	if perPage < 1 {
		perPage = defaultNewsPageSize
	}

	count, err := c.NewsDB.CountNews()
	if err != nil {
		return nil, 0, err
	}
	var pages = (count + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}

	items, err := c.NewsDB.GetLatest(perPage, (page-1)*perPage)
	return items, pages, err
}

// PostNews publishes a news item now.
func (c *CoreDB) PostNews(title, text string) (DBNewsItem, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ValidationError{Field: "title", Message: "title can't be empty"}
	}
	return c.NewsDB.InsertNewsItem(title, text, time.Now().Unix())
}

// AddComment appends a comment to a news item. The text must pass
// moderation, else nothing is persisted.
func (c *CoreDB) AddComment(user auth.User, newsID int, text string) (DBComment, error) {
	if user == nil {
		return nil, ErrAuthRequired
	}
	if _, err := c.NewsDB.GetNewsItem(newsID); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ValidationError{Field: "text", Message: "comment can't be empty"}
	}
	if err := c.Moderate(text); err != nil {
		return nil, err
	}
	return c.CommentDB.InsertComment(newsID, user.ID(), text, time.Now().Unix())
}

// OpenComment returns the comment with the given id if the user wrote it.
// Foreign comments are reported as ErrNotFound, see RequireOwner.
func (c *CoreDB) OpenComment(user auth.User, id int) (DBComment, error) {
	if user == nil {
		return nil, ErrAuthRequired
	}
	comment, err := c.CommentDB.GetComment(id)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(user, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// EditComment replaces the text of the user's comment. The new text must
// pass moderation as well.
func (c *CoreDB) EditComment(user auth.User, id int, text string) (DBComment, error) {

	comment, err := c.OpenComment(user, id)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ValidationError{Field: "text", Message: "comment can't be empty"}
	}
	if err := c.Moderate(text); err != nil {
		return nil, err
	}

	return comment, c.CommentDB.UpdateComment(comment, text)
}

// DeleteComment deletes the user's comment and returns it, so the caller
// can still link back to its news item.
func (c *CoreDB) DeleteComment(user auth.User, id int) (DBComment, error) {
	comment, err := c.OpenComment(user, id)
	if err != nil {
		return nil, err
	}
	return comment, c.CommentDB.DeleteComment(comment)
}
