package main

import (
	"bytes"
	"database/sql"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/wansing/kiosk/core"
	"github.com/wansing/kiosk/sqldb"
	"github.com/wansing/kiosk/sqldb/mysql"
	"github.com/wansing/kiosk/sqldb/sqlite3"
	"github.com/wansing/kiosk/web"
	"github.com/xo/dburl"
	"golang.org/x/crypto/ssh/terminal"
)

const defaultDbArg = "sqlite3:kiosk.sqlite3?_busy_timeout=10000&_journal=WAL&_sync=NORMAL&cache=shared"

func init() {
	log.SetFlags(0) // no log prefixes, on most systems systemd-journald adds them
}

func main() {

	var dbArg string // is in both FlagSets

	// default FlagSet

	// MySQL: collation should be utf8mb4_unicode_ci
	flag.StringVar(&dbArg, "db", defaultDbArg, "sql database url, see github.com/xo/dburl")
	var listenAddr = flag.String("listen", "127.0.0.1:8080", "serve HTTP content at this `ip:port`")

	// init FlagSet

	var initFlags = flag.NewFlagSet("init", flag.ExitOnError)

	initFlags.StringVar(&dbArg, "db", defaultDbArg, "sql database url, see github.com/xo/dburl")
	var initDelete = initFlags.Bool("delete", false, "deletes the given user")
	var initInsert = initFlags.Bool("insert", false, "creates the given user, prompting for a password")
	var initList = initFlags.Bool("list", false, "lists all users")
	var initPost = initFlags.Bool("post", false, "posts a news item with the given title, reading its text from stdin")
	var username = initFlags.String("user", "", "specifies a user `name`")
	var title = initFlags.String("title", "", "specifies a news item `title`")

	if len(os.Args) > 1 && os.Args[1] == "init" {
		initFlags.Parse(os.Args[2:])
	} else {
		flag.Parse()
	}

	// database

	dbURL, err := dburl.Parse(dbArg)
	if err != nil {
		log.Printf("could not parse database url: %v", err)
		return
	}

	sqlDB, err := sql.Open(dbURL.Driver, dbURL.DSN)
	if err != nil {
		log.Printf("could not open sql database: %v", err)
		return
	}

	if err = sqlDB.Ping(); err != nil {
		log.Printf("could not ping sql database: %v", err)
		return
	}

	log.Printf("using database %s", dbURL.String())

	// assemble stuff

	var sessionStore scs.Store
	switch dbURL.Driver {
	case "mysql":
		sessionStore = mysql.NewSessionStore(sqlDB)
	case "sqlite3":
		sessionStore = sqlite3.NewSessionStore(sqlDB)
	default:
		log.Printf("unknown database backend: %s", dbURL.Driver)
		return
	}

	db := &core.CoreDB{}
	db.Config = core.LoadConfig()
	db.CommentDB = sqldb.NewCommentDB(sqlDB)
	db.NewsDB = sqldb.NewNewsDB(sqlDB)
	db.NoteDB = sqldb.NewNoteDB(sqlDB)
	db.AuthDB.UserDB = sqldb.NewUserDB(sqlDB)
	db.Init(sessionStore)

	defer func() {
		log.Println("closing database")
		sqlDB.Close()
	}()

	// init

	if initFlags.Parsed() {
		switch {
		case *initDelete:
			if *username != "" {
				deleteUser(db, *username)
			}
		case *initInsert:
			if *username != "" {
				insertUser(db, *username)
			}
		case *initList:
			listUsers(db)
		case *initPost:
			postNews(db, *title)
		}
		return
	}

	listen(db, *listenAddr)
}

func deleteUser(db *core.CoreDB, name string) {

	u, err := db.GetUserByName(name)
	if err != nil {
		log.Printf("error finding user %s: %v", name, err)
		return
	}

	if err := db.Delete(u); err != nil {
		log.Printf("error deleting user %s: %v", name, err)
		return
	}

	log.Printf("deleted user %s", name)
}

func insertUser(db *core.CoreDB, name string) {

	if !db.Writeable() {
		log.Printf("user database is read-only")
		return
	}

	fmt.Printf("password for user %s: ", name)
	pass1, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		log.Printf("error reading password: %v", err)
		return
	}

	fmt.Printf("repeat password: ")
	pass2, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		log.Printf("error reading password: %v", err)
		return
	}

	if !bytes.Equal(pass1, pass2) {
		log.Printf("passwords don't match")
		return
	}

	user, err := db.InsertUser(name)
	if err != nil {
		log.Printf("error creating user %s: %v", name, err)
		return
	}

	if err := db.SetPassword(user, string(pass1)); err != nil {
		log.Printf("error setting password: %v", err)
		return
	}
}

func listUsers(db *core.CoreDB) {

	users, err := db.GetAllUsers(10000, 0)
	if err != nil {
		log.Printf("error listing users: %v", err)
		return
	}

	for _, u := range users {
		fmt.Printf("%d\t%s\n", u.ID(), u.Name())
	}
}

func postNews(db *core.CoreDB, title string) {

	text, err := ioutil.ReadAll(os.Stdin)
	if err != nil {
		log.Printf("error reading text: %v", err)
		return
	}

	item, err := db.PostNews(title, string(text))
	if err != nil {
		log.Printf("error posting news item: %v", err)
		return
	}

	log.Printf("posted news item %d", item.ID())
}

func listen(db *core.CoreDB, addr string) {

	// listener and listen

	sigintChannel := make(chan os.Signal, 1)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Println(err)
		return
	}

	log.Printf("listening to %s", addr)

	httpSrv := &http.Server{
		Handler:      db.SessionManager.LoadAndSave(web.NewRouter(db)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := httpSrv.Serve(listener); err != nil {

			// don't panic, we want a graceful shutdown
			if err != http.ErrServerClosed {
				log.Printf("error listening: %v", err)
			}

			// ensure graceful shutdown
			sigintChannel <- os.Interrupt
		}
	}()

	// graceful shutdown

	signal.Notify(sigintChannel, os.Interrupt, syscall.SIGTERM) // SIGINT (Interrupt) or SIGTERM
	<-sigintChannel

	log.Println("shutting down")
	httpSrv.Close()
}
