package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

var ErrLogin = errors.New("wrong username or password")

var loginTmpl = tmpl(`<h1>Login</h1>
	<form method="post" style="max-width: 20rem; margin: auto;">
		<input type="hidden" name="next" value="{{ .Next }}">
		<div class="form-group">
			<label>Name</label>
			<input type="text" class="form-control" name="name" value="{{ .Name }}" required autofocus>
		</div>
		<div class="form-group">
			<label>Password</label>
			<input type="password" class="form-control" name="password" required>
		</div>
		<div class="form-group">
			<button type="submit" class="btn btn-primary" name="login">Login</button>
		</div>
	</form>`)

type loginData struct {
	*context
	Name string
	Next string
}

// safeNext accepts only local redirect targets.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}

func login(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var name string
	var next = req.URL.Query().Get("next")

	if req.Method == http.MethodPost {

		name = req.PostFormValue("name")
		password := req.PostFormValue("password")
		next = req.PostFormValue("next")

		err := ctx.Login(name, password)
		if err == nil {
			ctx.SeeOther("%s", safeNext(next))
			return nil
		} else {
			ctx.Danger(ErrLogin)
			// keep POST data for name field
		}
	}

	return loginTmpl.Execute(w, &loginData{
		context: ctx,
		Name:    name,
		Next:    next,
	})
}
