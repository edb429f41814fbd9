package web

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/kiosk/core"
)

var commentDeleteTmpl = tmpl(`<h1>Delete comment</h1>

	<p>
		<a class="btn btn-secondary" href="/news/{{ .Comment.NewsID }}#comments">Cancel</a>
	</p>

	<blockquote class="blockquote">{{ .Comment.Text }}</blockquote>

	<form method="post">
		<input type="submit" class="btn btn-primary" name="delete" value="Delete">
	</form>`)

type commentDeleteData struct {
	*context
	Comment core.DBComment
}

func commentDelete(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := strconv.Atoi(params.ByName("id"))
	if err != nil {
		return core.ErrNotFound
	}

	comment, err := ctx.db.OpenComment(ctx.User, id)
	if err != nil {
		return err
	}

	if req.PostFormValue("delete") != "" {
		if c, err := ctx.db.DeleteComment(ctx.User, id); err == nil {
			ctx.SeeOther("/news/%d#comments", c.NewsID())
			return nil
		} else {
			ctx.Danger(err)
		}
	}

	return commentDeleteTmpl.Execute(w, &commentDeleteData{
		context: ctx,
		Comment: comment,
	})
}
