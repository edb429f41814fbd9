package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/kiosk/core"
)

var notesListTmpl = tmpl(`<h1>My notes</h1>

	<p>
		<a class="btn btn-primary" href="/notes/add">Add note</a>
	</p>

	{{ range .Notes }}
		<div class="mb-2">
			<a href="/note/{{ .Slug }}">{{ .Title }}</a>
			<span class="text-muted">{{ $.FormatDateTime .TsCreated }}</span>
		</div>
	{{ else }}
		<p>You have no notes yet.</p>
	{{ end }}`)

type notesListData struct {
	*context
	Notes []core.DBNote
}

func notesList(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	notes, err := ctx.db.ListNotes(ctx.User)
	if err != nil {
		return err
	}

	return notesListTmpl.Execute(w, &notesListData{
		context: ctx,
		Notes:   notes,
	})
}
