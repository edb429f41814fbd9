package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/kiosk/core"
)

var noteDeleteTmpl = tmpl(`<h1>Delete {{ .Note.Title }}</h1>

	<p>
		<a class="btn btn-secondary" href="/note/{{ .Note.Slug }}">Cancel</a>
	</p>

	<form method="post">
		<input type="submit" class="btn btn-primary" name="delete" value="Delete">
	</form>`)

type noteDeleteData struct {
	*context
	Note core.DBNote
}

func noteDelete(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	note, err := ctx.db.OpenNote(ctx.User, params.ByName("slug"))
	if err != nil {
		return err
	}

	if req.PostFormValue("delete") != "" {
		if err := ctx.db.DeleteNote(ctx.User, note.Slug()); err == nil {
			ctx.SeeOther("/notes/done")
			return nil
		} else {
			ctx.Danger(err)
		}
	}

	return noteDeleteTmpl.Execute(w, &noteDeleteData{
		context: ctx,
		Note:    note,
	})
}
