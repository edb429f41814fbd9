package sqldb

import (
	"database/sql"

	"github.com/wansing/kiosk/core"
)

type comment struct {
	id         int
	newsID     int
	authorID   int
	authorName string
	text       string
	tsCreated  int64
}

func (c *comment) ID() int {
	return c.id
}

func (c *comment) NewsID() int {
	return c.newsID
}

func (c *comment) AuthorID() int {
	return c.authorID
}

func (c *comment) AuthorName() string {
	return c.authorName
}

func (c *comment) Text() string {
	return c.text
}

func (c *comment) TsCreated() int64 {
	return c.tsCreated
}

type CommentDB struct {
	*sql.DB
	byNews     *sql.Stmt
	count      *sql.Stmt
	deleteStmt *sql.Stmt
	get        *sql.Stmt
	insert     *sql.Stmt
	update     *sql.Stmt
}

func NewCommentDB(db *sql.DB) *CommentDB {

	db.Exec(
		`CREATE TABLE IF NOT EXISTS comment (
			id INTEGER PRIMARY KEY,
			newsId INTEGER NOT NULL,
			authorId INTEGER NOT NULL,
			text TEXT NOT NULL,
			tsCreated INTEGER NOT NULL
		);`)

	var commentDB = &CommentDB{}
	commentDB.DB = db
	// oldest first, ties are broken by insertion order
	commentDB.byNews = mustPrepare(db, `
		SELECT comment.id, comment.newsId, comment.authorId, usr.name, comment.text, comment.tsCreated
		FROM comment JOIN usr ON usr.id = comment.authorId
		WHERE comment.newsId = ?
		ORDER BY comment.tsCreated ASC, comment.id ASC`)
	commentDB.count = mustPrepare(db, "SELECT COUNT(1) FROM comment WHERE newsId = ?")
	commentDB.deleteStmt = mustPrepare(db, "DELETE FROM comment WHERE id = ?")
	commentDB.get = mustPrepare(db, `
		SELECT comment.id, comment.newsId, comment.authorId, usr.name, comment.text, comment.tsCreated
		FROM comment JOIN usr ON usr.id = comment.authorId
		WHERE comment.id = ? LIMIT 1`)
	commentDB.insert = mustPrepare(db, "INSERT INTO comment (newsId, authorId, text, tsCreated) VALUES (?, ?, ?, ?)")
	commentDB.update = mustPrepare(db, "UPDATE comment SET text = ? WHERE id = ?")
	return commentDB
}

func (db *CommentDB) GetComment(id int) (core.DBComment, error) {
	var c = &comment{}
	err := db.get.QueryRow(id).Scan(&c.id, &c.newsID, &c.authorID, &c.authorName, &c.text, &c.tsCreated)
	if err == sql.ErrNoRows {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (db *CommentDB) GetComments(newsID int) ([]core.DBComment, error) {

	rows, err := db.byNews.Query(newsID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments = []core.DBComment{}

	for rows.Next() {
		var c = &comment{}
		err := rows.Scan(&c.id, &c.newsID, &c.authorID, &c.authorName, &c.text, &c.tsCreated)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, nil
}

func (db *CommentDB) CountComments(newsID int) (int, error) {
	var count int
	return count, db.count.QueryRow(newsID).Scan(&count)
}

func (db *CommentDB) InsertComment(newsID, authorID int, text string, tsCreated int64) (core.DBComment, error) {

	var c = &comment{
		newsID:    newsID,
		authorID:  authorID,
		text:      text,
		tsCreated: tsCreated,
	}

	res, err := db.insert.Exec(c.newsID, c.authorID, c.text, c.tsCreated)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	c.id = int(id)

	return c, nil
}

func (db *CommentDB) UpdateComment(c core.DBComment, text string) error {
	_, err := db.update.Exec(text, c.ID())
	return err
}

func (db *CommentDB) DeleteComment(c core.DBComment) error {
	_, err := db.deleteStmt.Exec(c.ID())
	return err
}
