// Package web is the HTML frontend of kiosk.
package web

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/kiosk/core"
)

// we need the CoreDB in the handlers
type context struct {
	*core.Request
	db *core.CoreDB
}

// form collects field-keyed error messages for re-rendering.
type form struct {
	FieldErrors map[string]string
}

func (f *form) setError(field, message string) {
	if f.FieldErrors == nil {
		f.FieldErrors = make(map[string]string)
	}
	f.FieldErrors[field] = message
}

func (f *form) FieldError(field string) string {
	return f.FieldErrors[field]
}

// fieldError extracts a field-keyed message from validation and conflict
// errors. Other errors don't belong to a form field.
func fieldError(err error) (field, message string, ok bool) {
	var v core.ValidationError
	if errors.As(err, &v) {
		return v.Field, v.Message, true
	}
	var c core.ConflictError
	if errors.As(err, &c) {
		return c.Field, c.Message, true
	}
	return "", "", false
}

func redirectToLogin(ctx *context, req *http.Request) {
	ctx.SeeOther("/login?next=%s", url.QueryEscape(req.URL.Path))
}

func middleware(db *core.CoreDB, requireLoggedIn bool, f func(http.ResponseWriter, *http.Request, *context, httprouter.Params) error) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {

		var ctx = &context{
			Request: db.NewRequest(w, req),
			db:      db,
		}
		defer ctx.Cleanup()

		if requireLoggedIn && !ctx.LoggedIn() {
			redirectToLogin(ctx, req)
			return
		}

		if err := f(w, req, ctx, params); err != nil {
			switch {
			case errors.Is(err, core.ErrAuthRequired):
				redirectToLogin(ctx, req)
			case errors.Is(err, core.ErrNotFound):
				ctx.NotFound()
			default:
				// probably no template has been executed, so execute error template
				errorTmpl.Execute(w, struct {
					*context
					Err error
				}{
					context: ctx,
					Err:     err,
				})
			}
		}
	}
}

var errorTmpl = tmpl(`
	<div class="alert alert-danger" role="alert">
		{{ .Err }}
	</div>`)

func NewRouter(db *core.CoreDB) http.Handler {

	var router = httprouter.New()

	var GETAndPOST = func(path string, handle httprouter.Handle) {
		router.GET(path, handle)
		router.POST(path, handle)
	}

	// public
	router.GET("/", middleware(db, false, newsPage))
	router.GET("/page/:page", middleware(db, false, newsPage))
	GETAndPOST("/news/:id", middleware(db, false, newsDetail)) // POST adds a comment, AddComment checks the login itself
	GETAndPOST("/login", middleware(db, false, login))
	router.GET("/logout", middleware(db, false, logout))
	GETAndPOST("/signup", middleware(db, false, signup))

	// private
	GETAndPOST("/comment/:id/edit", middleware(db, true, commentEdit))
	GETAndPOST("/comment/:id/delete", middleware(db, true, commentDelete))
	router.GET("/notes", middleware(db, true, notesList))
	GETAndPOST("/notes/add", middleware(db, true, noteAdd))
	router.GET("/notes/done", middleware(db, true, notesDone))
	router.GET("/note/:slug", middleware(db, true, noteDetail))
	GETAndPOST("/note/:slug/edit", middleware(db, true, noteEdit))
	GETAndPOST("/note/:slug/delete", middleware(db, true, noteDelete))

	return router
}

func tmpl(text string) *template.Template {
	t := template.Must(baseTmpl.Clone())
	t = template.Must(t.Parse(`{{ define "content" }}` + text + `{{ end }}`))
	return t
}

var baseTmpl = template.Must(template.New("base").Parse(`
<!DOCTYPE html>
<html>
	<head>
		<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@4.4.1/dist/css/bootstrap.min.css" integrity="sha384-Vkoo8x4CGsO3+Hhxv8T/Q5PaXtkKtu6ug5TOeNV6gBiFeWPGFN9MuhOf23Q9Ifjh" crossorigin="anonymous">
		<meta charset="utf-8">
		<meta name="viewport" content="width=device-width, initial-scale=1, shrink-to-fit=no">
		<title>Kiosk</title>
	</head>
	<body>

		<nav class="navbar navbar-expand-md bg-light">
			<a class="navbar-brand" href="/">Kiosk</a>
			<ul class="navbar-nav">
				<li class="nav-item">
					<a class="nav-link" href="/">News</a>
				</li>
				<li class="nav-item">
					<a class="nav-link" href="/notes">My notes</a>
				</li>
			</ul>
			<ul class="navbar-nav ml-auto">
				{{ if .LoggedIn }}
					<li class="nav-item">
						<span class="navbar-text mr-2">{{ .User.Name }}</span>
					</li>
					<li class="nav-item">
						<a class="nav-link" href="/logout">Logout</a>
					</li>
				{{ else }}
					<li class="nav-item">
						<a class="nav-link" href="/login">Login</a>
					</li>
					<li class="nav-item">
						<a class="nav-link" href="/signup">Signup</a>
					</li>
				{{ end }}
			</ul>
		</nav>

		<div class="container">
			{{ .RenderNotifications }}
			{{ template "content" . }}
		</div>

	</body>
</html>`))
