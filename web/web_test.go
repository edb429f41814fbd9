package web

import (
	"database/sql"
	"io/ioutil"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wansing/kiosk/core"
	"github.com/wansing/kiosk/sqldb"
	"github.com/wansing/kiosk/sqldb/sqlite3"
)

// testServer assembles a CoreDB on an in-memory database and serves the
// router through the session middleware, like main does.
func testServer(t *testing.T) (*httptest.Server, *core.CoreDB) {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // each sqlite3 connection to ":memory:" is its own database

	db := &core.CoreDB{}
	db.Config = core.Config{
		BadWords:          []string{"scoundrel", "rascal"},
		ModerationWarning: "Watch your language!",
		NewsPageSize:      10,
	}
	db.CommentDB = sqldb.NewCommentDB(sqlDB)
	db.NewsDB = sqldb.NewNewsDB(sqlDB)
	db.NoteDB = sqldb.NewNoteDB(sqlDB)
	db.AuthDB.UserDB = sqldb.NewUserDB(sqlDB)
	db.Init(sqlite3.NewSessionStore(sqlDB))

	srv := httptest.NewServer(db.SessionManager.LoadAndSave(NewRouter(db)))
	t.Cleanup(func() {
		srv.Close()
		sqlDB.Close()
	})
	return srv, db
}

// testClient keeps cookies and does not follow redirects, so tests can
// assert on them.
func testClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func createUser(t *testing.T, db *core.CoreDB, name, password string) int {
	t.Helper()
	u, err := db.InsertUser(name)
	require.NoError(t, err)
	require.NoError(t, db.SetPassword(u, password))
	return u.ID()
}

func loginAs(t *testing.T, client *http.Client, baseURL, name, password string) {
	t.Helper()
	resp, err := client.PostForm(baseURL+"/login", url.Values{
		"name":     {name},
		"password": {password},
		"next":     {"/"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode, "login failed")
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestPublicPages(t *testing.T) {

	srv, db := testServer(t)
	client := testClient(t)

	_, err := db.NewsDB.InsertNewsItem("Hello", "World", 1000)
	require.NoError(t, err)

	for _, path := range []string{"/", "/news/1", "/login", "/signup"} {
		resp, err := client.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	// pages are styled without any local asset directory
	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, "bootstrap@4.4.1")
}

func TestAnonymousRedirectsToLogin(t *testing.T) {

	srv, db := testServer(t)
	client := testClient(t)

	_, err := db.NewsDB.InsertNewsItem("Hello", "World", 1000)
	require.NoError(t, err)

	for _, path := range []string{
		"/notes",
		"/notes/add",
		"/notes/done",
		"/note/some-slug",
		"/note/some-slug/edit",
		"/note/some-slug/delete",
		"/comment/1/edit",
		"/comment/1/delete",
	} {
		resp, err := client.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login?next="+url.QueryEscape(path), resp.Header.Get("Location"), path)
	}

	// an anonymous comment is not persisted either
	resp, err := client.PostForm(srv.URL+"/news/1", url.Values{"text": {"hi"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?next=%2Fnews%2F1", resp.Header.Get("Location"))

	count, err := db.CommentDB.CountComments(1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSignup(t *testing.T) {

	srv, db := testServer(t)
	client := testClient(t)

	resp, err := client.PostForm(srv.URL+"/signup", url.Values{
		"name":      {"alice"},
		"password":  {"secret"},
		"password2": {"secret"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/notes", resp.Header.Get("Location"))

	// signup logs the user in
	resp, err = client.Get(srv.URL + "/notes")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = db.GetUserByName("alice")
	assert.NoError(t, err)
}

func TestSignupPasswordMismatch(t *testing.T) {

	srv, db := testServer(t)
	client := testClient(t)

	resp, err := client.PostForm(srv.URL+"/signup", url.Values{
		"name":      {"alice"},
		"password":  {"secret"},
		"password2": {"different"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode) // form is shown again

	_, err = db.GetUserByName("alice")
	assert.Equal(t, sql.ErrNoRows, err)
}

func TestLoginNext(t *testing.T) {

	srv, db := testServer(t)
	client := testClient(t)
	createUser(t, db, "alice", "secret")

	resp, err := client.PostForm(srv.URL+"/login", url.Values{
		"name":     {"alice"},
		"password": {"secret"},
		"next":     {"/notes/add"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/notes/add", resp.Header.Get("Location"))

	// offsite targets are not followed
	client2 := testClient(t)
	resp, err = client2.PostForm(srv.URL+"/login", url.Values{
		"name":     {"alice"},
		"password": {"secret"},
		"next":     {"//evil.example.com"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestLoginWrongPassword(t *testing.T) {

	srv, db := testServer(t)
	client := testClient(t)
	createUser(t, db, "alice", "secret")

	resp, err := client.PostForm(srv.URL+"/login", url.Values{
		"name":     {"alice"},
		"password": {"wrong"},
		"next":     {"/"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode) // form is shown again

	// still anonymous
	resp, err = client.Get(srv.URL + "/notes")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestLogout(t *testing.T) {

	srv, db := testServer(t)
	client := testClient(t)
	createUser(t, db, "alice", "secret")
	loginAs(t, client, srv.URL, "alice", "secret")

	resp, err := client.Get(srv.URL + "/logout")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, err = client.Get(srv.URL + "/notes")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestNoteAdd(t *testing.T) {

	srv, db := testServer(t)
	client := testClient(t)
	uid := createUser(t, db, "alice", "secret")
	loginAs(t, client, srv.URL, "alice", "secret")

	// empty slug is derived from the title
	resp, err := client.PostForm(srv.URL+"/notes/add", url.Values{
		"title": {"New Note"},
		"text":  {"note text"},
		"slug":  {""},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/notes/done", resp.Header.Get("Location"))

	notes, err := db.NoteDB.GetNotesByAuthor(uid)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, core.Slugify("New Note"), notes[0].Slug())

	// a duplicate slug is rejected and nothing is created
	resp, err = client.PostForm(srv.URL+"/notes/add", url.Values{
		"title": {"Another"},
		"text":  {""},
		"slug":  {"new-note"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "new-note is already taken")

	notes, err = db.NoteDB.GetNotesByAuthor(uid)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestNoteOwnership(t *testing.T) {

	srv, db := testServer(t)

	alice := testClient(t)
	createUser(t, db, "alice", "secret")
	loginAs(t, alice, srv.URL, "alice", "secret")

	bob := testClient(t)
	createUser(t, db, "bob", "secret")
	loginAs(t, bob, srv.URL, "bob", "secret")

	resp, err := alice.PostForm(srv.URL+"/notes/add", url.Values{
		"title": {"Secret Plans"},
		"text":  {"classified"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	// the owner sees the note
	for _, path := range []string{"/note/secret-plans", "/note/secret-plans/edit", "/note/secret-plans/delete"} {
		resp, err := alice.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	// everyone else gets a 404, as if the note did not exist
	for _, path := range []string{"/note/secret-plans", "/note/secret-plans/edit", "/note/secret-plans/delete"} {
		resp, err := bob.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}

	// the notes list stays private as well
	resp, err = bob.Get(srv.URL + "/notes")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.NotContains(t, body, "Secret Plans")
}

func TestNoteEdit(t *testing.T) {

	srv, db := testServer(t)
	client := testClient(t)
	uid := createUser(t, db, "alice", "secret")
	loginAs(t, client, srv.URL, "alice", "secret")

	_, err := db.AddNote(&userStub{id: uid, name: "alice"}, "Old Title", "text", "")
	require.NoError(t, err)
	_, err = db.AddNote(&userStub{id: uid, name: "alice"}, "Other", "", "other")
	require.NoError(t, err)

	// keeping the own slug is not a conflict
	resp, err := client.PostForm(srv.URL+"/note/old-title/edit", url.Values{
		"title": {"New Title"},
		"text":  {"new text"},
		"slug":  {"old-title"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	note, err := db.NoteDB.GetNoteBySlug("old-title")
	require.NoError(t, err)
	assert.Equal(t, "New Title", note.Title())

	// taking another note's slug is
	resp, err = client.PostForm(srv.URL+"/note/old-title/edit", url.Values{
		"title": {"New Title"},
		"text":  {"new text"},
		"slug":  {"other"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "other is already taken")
}

func TestNoteDelete(t *testing.T) {

	srv, db := testServer(t)
	client := testClient(t)
	uid := createUser(t, db, "alice", "secret")
	loginAs(t, client, srv.URL, "alice", "secret")

	_, err := db.AddNote(&userStub{id: uid, name: "alice"}, "Doomed", "", "")
	require.NoError(t, err)

	// GET shows the confirmation, nothing is deleted yet
	resp, err := client.Get(srv.URL + "/note/doomed/delete")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = db.NoteDB.GetNoteBySlug("doomed")
	require.NoError(t, err)

	resp, err = client.PostForm(srv.URL+"/note/doomed/delete", url.Values{"delete": {"Delete"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, err = db.NoteDB.GetNoteBySlug("doomed")
	assert.Equal(t, core.ErrNotFound, err)
}

func TestCommentFormVisibility(t *testing.T) {

	srv, db := testServer(t)

	_, err := db.NewsDB.InsertNewsItem("Hello", "World", 1000)
	require.NoError(t, err)

	anon := testClient(t)
	resp, err := anon.Get(srv.URL + "/news/1")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.NotContains(t, body, "<textarea")
	assert.Contains(t, body, "/login?next=/news/1")

	alice := testClient(t)
	createUser(t, db, "alice", "secret")
	loginAs(t, alice, srv.URL, "alice", "secret")

	resp, err = alice.Get(srv.URL + "/news/1")
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Contains(t, body, "<textarea")
}

func TestCommentAdd(t *testing.T) {

	srv, db := testServer(t)
	client := testClient(t)
	createUser(t, db, "alice", "secret")
	loginAs(t, client, srv.URL, "alice", "secret")

	_, err := db.NewsDB.InsertNewsItem("Hello", "World", 1000)
	require.NoError(t, err)

	resp, err := client.PostForm(srv.URL+"/news/1", url.Values{"text": {"nice article"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/news/1#comments", resp.Header.Get("Location"))

	comments, err := db.CommentDB.GetComments(1)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice article", comments[0].Text())
	assert.Equal(t, "alice", comments[0].AuthorName())
}

func TestCommentModeration(t *testing.T) {

	srv, db := testServer(t)
	client := testClient(t)
	createUser(t, db, "alice", "secret")
	loginAs(t, client, srv.URL, "alice", "secret")

	_, err := db.NewsDB.InsertNewsItem("Hello", "World", 1000)
	require.NoError(t, err)

	resp, err := client.PostForm(srv.URL+"/news/1", url.Values{"text": {"the author is a scoundrel"}})
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Watch your language!")
	assert.Contains(t, body, "the author is a scoundrel") // input is kept for correction

	count, err := db.CommentDB.CountComments(1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCommentOwnership(t *testing.T) {

	srv, db := testServer(t)

	alice := testClient(t)
	aliceID := createUser(t, db, "alice", "secret")
	loginAs(t, alice, srv.URL, "alice", "secret")

	bob := testClient(t)
	createUser(t, db, "bob", "secret")
	loginAs(t, bob, srv.URL, "bob", "secret")

	_, err := db.NewsDB.InsertNewsItem("Hello", "World", 1000)
	require.NoError(t, err)

	comment, err := db.AddComment(&userStub{id: aliceID, name: "alice"}, 1, "my comment")
	require.NoError(t, err)

	editPath := "/comment/1/edit"
	deletePath := "/comment/1/delete"

	// foreign comments can't be opened, edited or deleted
	for _, path := range []string{editPath, deletePath} {
		resp, err := bob.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
	resp, err := bob.PostForm(srv.URL+deletePath, url.Values{"delete": {"Delete"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// the author edits
	resp, err = alice.PostForm(srv.URL+editPath, url.Values{"text": {"edited comment"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/news/1#comments", resp.Header.Get("Location"))

	got, err := db.CommentDB.GetComment(comment.ID())
	require.NoError(t, err)
	assert.Equal(t, "edited comment", got.Text())

	// the edit must pass moderation as well
	resp, err = alice.PostForm(srv.URL+editPath, url.Values{"text": {"what a rascal"}})
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Watch your language!")

	got, err = db.CommentDB.GetComment(comment.ID())
	require.NoError(t, err)
	assert.Equal(t, "edited comment", got.Text())

	// and the author deletes
	resp, err = alice.PostForm(srv.URL+deletePath, url.Values{"delete": {"Delete"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	count, err := db.CommentDB.CountComments(1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestNewsPagination(t *testing.T) {

	srv, db := testServer(t)
	client := testClient(t)

	for i := 1; i <= 11; i++ {
		_, err := db.NewsDB.InsertNewsItem("Item "+string(rune('A'-1+i)), "", int64(1000+i))
		require.NoError(t, err)
	}

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Contains(t, body, "Item K")    // newest
	assert.Contains(t, body, "Item B")    // tenth newest
	assert.NotContains(t, body, "Item A") // eleventh, on page two

	resp, err = client.Get(srv.URL + "/page/2")
	require.NoError(t, err)
	body = readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Item A")
	assert.NotContains(t, body, "Item B")
}

func TestNewsDetailNotFound(t *testing.T) {

	srv, _ := testServer(t)
	client := testClient(t)

	resp, err := client.Get(srv.URL + "/news/42")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/news/not-a-number")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// userStub lets tests call CoreDB policy methods directly.
type userStub struct {
	id   int
	name string
}

func (u *userStub) ID() int {
	return u.id
}

func (u *userStub) Name() string {
	return u.name
}
