package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

var noteEditTmpl = tmpl(`<h1>Edit note</h1>

	<p>
		<a class="btn btn-secondary" href="/note/{{ .OldSlug }}">Cancel</a>
	</p>

	<form method="post">
		<div class="form-group">
			<label>Title</label>
			<input type="text" class="form-control" name="title" value="{{ .Title }}" required autofocus>
			{{ with .FieldError "title" }}<div class="text-danger">{{ . }}</div>{{ end }}
		</div>
		<div class="form-group">
			<label>Slug</label>
			<input type="text" class="form-control" name="slug" value="{{ .Slug }}" placeholder="derived from the title if empty">
			{{ with .FieldError "slug" }}<div class="text-danger">{{ . }}</div>{{ end }}
		</div>
		<div class="form-group">
			<label>Text</label>
			<textarea class="form-control" name="text" rows="10">{{ .Text }}</textarea>
		</div>
		<button type="submit" class="btn btn-primary" name="save">Save</button>
	</form>`)

type noteEditData struct {
	noteFormData
	OldSlug string
}

func noteEdit(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var oldSlug = params.ByName("slug")

	note, err := ctx.db.OpenNote(ctx.User, oldSlug)
	if err != nil {
		return err
	}

	var data = &noteEditData{
		noteFormData: noteFormData{
			context: ctx,
			Title:   note.Title(),
			Text:    note.Text(),
			Slug:    note.Slug(),
		},
		OldSlug: oldSlug,
	}

	if req.Method == http.MethodPost {
		data.Title = req.PostFormValue("title")
		data.Text = req.PostFormValue("text")
		data.Slug = req.PostFormValue("slug")
		if err := ctx.db.EditNote(ctx.User, oldSlug, data.Title, data.Text, data.Slug); err == nil {
			ctx.SeeOther("/notes/done")
			return nil
		} else if field, message, ok := fieldError(err); ok {
			data.setError(field, message)
		} else {
			return err
		}
	}

	return noteEditTmpl.Execute(w, data)
}
