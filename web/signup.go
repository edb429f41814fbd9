package web

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

var ErrNameTaken = errors.New("this name is already taken")
var ErrPasswordsDiffer = errors.New("the passwords don't match")

var signupTmpl = tmpl(`<h1>Signup</h1>
	<form method="post" style="max-width: 20rem; margin: auto;">
		<div class="form-group">
			<label>Name</label>
			<input type="text" class="form-control" name="name" value="{{ .Name }}" required autofocus>
		</div>
		<div class="form-group">
			<label>Password</label>
			<input type="password" class="form-control" name="password" required>
		</div>
		<div class="form-group">
			<label>Repeat password</label>
			<input type="password" class="form-control" name="password2" required>
		</div>
		<div class="form-group">
			<button type="submit" class="btn btn-primary" name="signup">Signup</button>
		</div>
	</form>`)

type signupData struct {
	*context
	Name string
}

func signup(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var name string

	if req.Method == http.MethodPost {

		name = req.PostFormValue("name")
		password := req.PostFormValue("password")
		password2 := req.PostFormValue("password2")

		if err := doSignup(ctx, name, password, password2); err == nil {
			_ = ctx.Login(name, password)
			ctx.SeeOther("/notes")
			return nil
		} else {
			ctx.Danger(err)
		}
	}

	return signupTmpl.Execute(w, &signupData{
		context: ctx,
		Name:    name,
	})
}

func doSignup(ctx *context, name, password, password2 string) error {

	if password != password2 {
		return ErrPasswordsDiffer
	}

	// racy, but the UNIQUE constraint on the name backs it up
	if _, err := ctx.db.GetUserByName(name); err == nil {
		return ErrNameTaken
	} else if err != sql.ErrNoRows {
		return err
	}

	user, err := ctx.db.InsertUser(name)
	if err != nil {
		return err
	}

	return ctx.db.SetPassword(user, password)
}
