package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

var noteAddTmpl = tmpl(`<h1>Add note</h1>

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

type noteFormData struct {
	*context
	form
	Title string
	Text  string
	Slug  string
}

func noteAdd(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var data = &noteFormData{
		context: ctx,
	}

	if req.Method == http.MethodPost {
		data.Title = req.PostFormValue("title")
		data.Text = req.PostFormValue("text")
		data.Slug = req.PostFormValue("slug")
		if _, err := ctx.db.AddNote(ctx.User, data.Title, data.Text, data.Slug); err == nil {
			ctx.SeeOther("/notes/done")
			return nil
		} else if field, message, ok := fieldError(err); ok {
			data.setError(field, message)
		} else {
			return err
		}
	}

	return noteAddTmpl.Execute(w, data)
}
