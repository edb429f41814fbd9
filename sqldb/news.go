package sqldb

import (
	"database/sql"

	"github.com/wansing/kiosk/core"
)

type newsItem struct {
	id          int
	title       string
	text        string
	tsPublished int64
}

func (n *newsItem) ID() int {
	return n.id
}

func (n *newsItem) Title() string {
	return n.title
}

func (n *newsItem) Text() string {
	return n.text
}

func (n *newsItem) TsPublished() int64 {
	return n.tsPublished
}

type NewsDB struct {
	*sql.DB
	count  *sql.Stmt
	get    *sql.Stmt
	insert *sql.Stmt
	latest *sql.Stmt
}

func NewNewsDB(db *sql.DB) *NewsDB {

	db.Exec(
		`CREATE TABLE IF NOT EXISTS newsItem (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			text TEXT NOT NULL,
			tsPublished INTEGER NOT NULL
		);`)

	var newsDB = &NewsDB{}
	newsDB.DB = db
	newsDB.count = mustPrepare(db, "SELECT COUNT(1) FROM newsItem")
	newsDB.get = mustPrepare(db, "SELECT id, title, text, tsPublished FROM newsItem WHERE id = ? LIMIT 1")
	newsDB.insert = mustPrepare(db, "INSERT INTO newsItem (title, text, tsPublished) VALUES (?, ?, ?)")
	// ties are broken by insertion order
	newsDB.latest = mustPrepare(db, "SELECT id, title, text, tsPublished FROM newsItem ORDER BY tsPublished DESC, id ASC LIMIT ? OFFSET ?")
	return newsDB
}

func (db *NewsDB) GetNewsItem(id int) (core.DBNewsItem, error) {
	var n = &newsItem{}
	err := db.get.QueryRow(id).Scan(&n.id, &n.title, &n.text, &n.tsPublished)
	if err == sql.ErrNoRows {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (db *NewsDB) GetLatest(limit, offset int) ([]core.DBNewsItem, error) {

	rows, err := db.latest.Query(limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items = []core.DBNewsItem{}

	for rows.Next() {
		var n = &newsItem{}
		err := rows.Scan(&n.id, &n.title, &n.text, &n.tsPublished)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}

	return items, nil
}

func (db *NewsDB) CountNews() (int, error) {
	var count int
	return count, db.count.QueryRow().Scan(&count)
}

func (db *NewsDB) InsertNewsItem(title, text string, tsPublished int64) (core.DBNewsItem, error) {

	var n = &newsItem{
		title:       title,
		text:        text,
		tsPublished: tsPublished,
	}

	res, err := db.insert.Exec(n.title, n.text, n.tsPublished)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	n.id = int(id)

	return n, nil
}
