package web

import (
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/kiosk/core"
)

var noteDetailTmpl = tmpl(`<h1>{{ .Note.Title }}</h1>

	<div class="text-muted">{{ .FormatDateTime .Note.TsCreated }}</div>

	<div class="mt-3">{{ .Body }}</div>

	<p class="mt-4">
		<a class="btn btn-secondary" href="/note/{{ .Note.Slug }}/edit">Edit</a>
		<a class="btn btn-secondary" href="/note/{{ .Note.Slug }}/delete">Delete</a>
	</p>`)

type noteDetailData struct {
	*context
	Note core.DBNote
	Body template.HTML
}

func noteDetail(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	note, err := ctx.db.OpenNote(ctx.User, params.ByName("slug"))
	if err != nil {
		return err
	}

	return noteDetailTmpl.Execute(w, &noteDetailData{
		context: ctx,
		Note:    note,
		Body:    renderMarkdown(note.Text()),
	})
}
