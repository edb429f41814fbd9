package web

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/kiosk/core"
)

var commentEditTmpl = tmpl(`<h1>Edit comment</h1>

	<p>
		<a class="btn btn-secondary" href="/news/{{ .Comment.NewsID }}#comments">Cancel</a>
	</p>

	<form method="post">
		<div class="form-group">
			<textarea class="form-control" name="text" rows="3" required>{{ .Text }}</textarea>
			{{ with .FieldError "text" }}<div class="text-danger">{{ . }}</div>{{ end }}
		</div>
		<button type="submit" class="btn btn-primary" name="save">Save</button>
	</form>`)

type commentEditData struct {
	*context
	form
	Comment core.DBComment
	Text    string
}

func commentEdit(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := strconv.Atoi(params.ByName("id"))
	if err != nil {
		return core.ErrNotFound
	}

	comment, err := ctx.db.OpenComment(ctx.User, id)
	if err != nil {
		return err
	}

	var data = &commentEditData{
		context: ctx,
		Comment: comment,
		Text:    comment.Text(),
	}

	if req.Method == http.MethodPost {
		data.Text = req.PostFormValue("text")
		if c, err := ctx.db.EditComment(ctx.User, id, data.Text); err == nil {
			ctx.SeeOther("/news/%d#comments", c.NewsID())
			return nil
		} else if field, message, ok := fieldError(err); ok {
			data.setError(field, message)
		} else {
			return err
		}
	}

	return commentEditTmpl.Execute(w, data)
}
