package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

var notesDoneTmpl = tmpl(`<h1>Done</h1>

	<p>Your change has been saved.</p>

	<p>
		<a class="btn btn-primary" href="/notes">Back to my notes</a>
	</p>`)

func notesDone(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {
	return notesDoneTmpl.Execute(w, ctx)
}
