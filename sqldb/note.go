package sqldb

import (
	"database/sql"
	"time"

	"github.com/wansing/kiosk/core"
)

type note struct {
	id        int
	authorID  int
	title     string
	text      string
	slug      string
	tsCreated int64
}

func (n *note) ID() int {
	return n.id
}

func (n *note) AuthorID() int {
	return n.authorID
}

func (n *note) Title() string {
	return n.title
}

func (n *note) Text() string {
	return n.text
}

func (n *note) Slug() string {
	return n.slug
}

func (n *note) TsCreated() int64 {
	return n.tsCreated
}

type NoteDB struct {
	*sql.DB
	byAuthor   *sql.Stmt
	bySlug     *sql.Stmt
	deleteStmt *sql.Stmt
	insert     *sql.Stmt
	slugTaken  *sql.Stmt
	update     *sql.Stmt
}

func NewNoteDB(db *sql.DB) *NoteDB {

	db.Exec(
		`CREATE TABLE IF NOT EXISTS note (
			id INTEGER PRIMARY KEY,
			authorId INTEGER NOT NULL,
			title TEXT NOT NULL,
			text TEXT NOT NULL,
			slug TEXT NOT NULL,
			tsCreated INTEGER NOT NULL,
			UNIQUE(slug)
		);`)

	var noteDB = &NoteDB{}
	noteDB.DB = db
	noteDB.byAuthor = mustPrepare(db, "SELECT id, authorId, title, text, slug, tsCreated FROM note WHERE authorId = ? ORDER BY id")
	noteDB.bySlug = mustPrepare(db, "SELECT id, authorId, title, text, slug, tsCreated FROM note WHERE slug = ? LIMIT 1")
	noteDB.deleteStmt = mustPrepare(db, "DELETE FROM note WHERE id = ?")
	noteDB.insert = mustPrepare(db, "INSERT INTO note (authorId, title, text, slug, tsCreated) VALUES (?, ?, ?, ?, ?)")
	noteDB.slugTaken = mustPrepare(db, "SELECT COUNT(1) FROM note WHERE slug = ?")
	noteDB.update = mustPrepare(db, "UPDATE note SET title = ?, text = ?, slug = ? WHERE id = ?")
	return noteDB
}

func (db *NoteDB) GetNoteBySlug(slug string) (core.DBNote, error) {
	var n = &note{}
	err := db.bySlug.QueryRow(slug).Scan(&n.id, &n.authorID, &n.title, &n.text, &n.slug, &n.tsCreated)
	if err == sql.ErrNoRows {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (db *NoteDB) GetNotesByAuthor(authorID int) ([]core.DBNote, error) {

	rows, err := db.byAuthor.Query(authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes = []core.DBNote{}

	for rows.Next() {
		var n = &note{}
		err := rows.Scan(&n.id, &n.authorID, &n.title, &n.text, &n.slug, &n.tsCreated)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}

	return notes, nil
}

func (db *NoteDB) InsertNote(authorID int, title, text, slug string) (core.DBNote, error) {

	var n = &note{
		authorID:  authorID,
		title:     title,
		text:      text,
		slug:      slug,
		tsCreated: time.Now().Unix(),
	}

	res, err := db.insert.Exec(n.authorID, n.title, n.text, n.slug, n.tsCreated)
	if err != nil {
		return nil, err // includes UNIQUE constraint violations under concurrent creation
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	n.id = int(id)

	return n, nil
}

func (db *NoteDB) UpdateNote(n core.DBNote, title, text, slug string) error {
	_, err := db.update.Exec(title, text, slug, n.ID())
	return err
}

func (db *NoteDB) DeleteNote(n core.DBNote) error {
	_, err := db.deleteStmt.Exec(n.ID())
	return err
}

func (db *NoteDB) SlugTaken(slug string) (bool, error) {
	var count int
	err := db.slugTaken.QueryRow(slug).Scan(&count)
	return count > 0, err
}
