package sqldb

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/wansing/kiosk/auth"
	"golang.org/x/crypto/bcrypt"
)

var ErrAuth = errors.New("authentication failed")

func clean(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	return name
}

type user struct {
	id   int
	name string
	hash []byte // bcrypt, empty until a password is set
}

func (u *user) ID() int {
	return u.id
}

func (u *user) Name() string {
	return u.name
}

type UserDB struct {
	*sql.DB
	deleteStmt  *sql.Stmt
	get         *sql.Stmt
	getAll      *sql.Stmt
	getByName   *sql.Stmt
	insert      *sql.Stmt
	setPassword *sql.Stmt
}

func NewUserDB(db *sql.DB) *UserDB {

	db.Exec(
		`CREATE TABLE IF NOT EXISTS usr (
			id INTEGER PRIMARY KEY,
			name varchar(128) NOT NULL,
			hash varchar(64) NOT NULL DEFAULT '', /* empty hash never verifies */
			UNIQUE(name)
		);`)

	var userDB = &UserDB{}
	userDB.DB = db
	userDB.deleteStmt = mustPrepare(db, "DELETE FROM usr WHERE id = ?")
	userDB.get = mustPrepare(db, "SELECT name, hash FROM usr WHERE id = ? LIMIT 1")
	userDB.getAll = mustPrepare(db, "SELECT id, name FROM usr ORDER BY name LIMIT ? OFFSET ?")
	userDB.getByName = mustPrepare(db, "SELECT id, hash FROM usr WHERE name = ? LIMIT 1")
	userDB.insert = mustPrepare(db, "INSERT INTO usr (name) VALUES (?)")
	userDB.setPassword = mustPrepare(db, "UPDATE usr SET hash = ? WHERE id = ?")
	return userDB
}

func (db *UserDB) Writeable() bool {
	return true
}

func (db *UserDB) ChangePassword(u auth.DBUser, old, new string) error {
	if bcrypt.CompareHashAndPassword(u.(*user).hash, []byte(old)) != nil {
		return ErrAuth
	}
	return db.SetPassword(u, new)
}

func (db *UserDB) Delete(u auth.DBUser) error {
	_, err := db.deleteStmt.Exec(u.ID())
	return err
}

// GetUser may return sql.ErrNoRows, because we can not compare the returned user to nil.
func (db *UserDB) GetUser(id int) (auth.DBUser, error) {
	var u = &user{
		id: id,
	}
	err := db.get.QueryRow(id).Scan(&u.name, &u.hash)
	return u, err
}

func (db *UserDB) GetUserByName(name string) (auth.DBUser, error) {
	name = clean(name)
	var u = &user{
		name: name,
	}
	err := db.getByName.QueryRow(name).Scan(&u.id, &u.hash)
	return u, err
}

func (db *UserDB) GetAllUsers(limit, offset int) ([]auth.DBUser, error) {

	var all = []auth.DBUser{}

	rows, err := db.getAll.Query(limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var u = &user{}
		err = rows.Scan(&u.id, &u.name)
		if err != nil {
			return nil, err
		}
		all = append(all, u)
	}

	return all, nil
}

func (db *UserDB) InsertUser(name string) (auth.DBUser, error) {

	name = clean(name)
	if name == "" {
		return nil, errors.New("name can't be empty")
	}

	res, err := db.insert.Exec(name)
	if err != nil {
		return nil, err // includes UNIQUE constraint violations
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &user{
		id:   int(id),
		name: name,
	}, nil
}

func (db *UserDB) LoginUser(name, password string) (auth.DBUser, error) {

	name = clean(name)

	var u = &user{
		name: name,
	}

	err := db.getByName.QueryRow(name).Scan(&u.id, &u.hash)
	if err == sql.ErrNoRows {
		return nil, ErrAuth // user not found
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword(u.hash, []byte(password)) != nil {
		return nil, ErrAuth // wrong password
	}

	return u, nil
}

func (db *UserDB) SetPassword(u auth.DBUser, password string) error {

	if password == "" {
		return errors.New("no password given")
	}

	if u.ID() == 0 {
		return errors.New("can't set password of user 0")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.setPassword.Exec(hash, u.ID())
	if err != nil {
		return err
	}

	u.(*user).hash = hash
	return nil
}
