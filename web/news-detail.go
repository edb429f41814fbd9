package web

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/kiosk/core"
)

var newsDetailTmpl = tmpl(`<h1>{{ .Item.Title }}</h1>

	<div class="text-muted">{{ .FormatDateTime .Item.TsPublished }}</div>

	<div class="mt-3">{{ .Body }}</div>

	<h2 id="comments" class="mt-4">Comments</h2>

	{{ range .Comments }}
		<div class="card mb-2">
			<div class="card-body">
				<div class="text-muted">{{ .AuthorName }} &middot; {{ $.FormatAge .TsCreated }}</div>
				<p class="mb-1">{{ .Text }}</p>
				{{ if $.IsAuthor . }}
					<a href="/comment/{{ .ID }}/edit">Edit</a>
					<a href="/comment/{{ .ID }}/delete">Delete</a>
				{{ end }}
			</div>
		</div>
	{{ else }}
		<p>No comments yet.</p>
	{{ end }}

	{{ if .LoggedIn }}
		<form method="post" action="/news/{{ .Item.ID }}">
			<div class="form-group">
				<textarea class="form-control" name="text" rows="3" required>{{ .Text }}</textarea>
				{{ with .FieldError "text" }}<div class="text-danger">{{ . }}</div>{{ end }}
			</div>
			<button type="submit" class="btn btn-primary" name="comment">Comment</button>
		</form>
	{{ else }}
		<p><a href="/login?next={{ .Path }}">Log in</a> to comment.</p>
	{{ end }}`)

type newsDetailData struct {
	*context
	form
	Item     core.DBNewsItem
	Body     template.HTML
	Comments []core.DBComment
	Text     string // comment form input, kept on rejection
}

func newsDetail(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := strconv.Atoi(params.ByName("id"))
	if err != nil {
		return core.ErrNotFound
	}

	item, err := ctx.db.GetNewsItem(id)
	if err != nil {
		return err
	}

	var data = &newsDetailData{
		context: ctx,
		Item:    item,
		Body:    renderMarkdown(item.Text()),
	}

	if req.Method == http.MethodPost {
		if _, err := ctx.db.AddComment(ctx.User, id, req.PostFormValue("text")); err == nil {
			ctx.SeeOther("/news/%d#comments", id)
			return nil
		} else if field, message, ok := fieldError(err); ok {
			data.Text = req.PostFormValue("text")
			data.setError(field, message)
		} else {
			return err
		}
	}

	data.Comments, err = ctx.db.GetComments(id)
	if err != nil {
		return err
	}

	return newsDetailTmpl.Execute(w, data)
}
