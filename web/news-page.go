package web

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/kiosk/core"
	"github.com/wansing/kiosk/util"
)

var newsPageTmpl = tmpl(`<h1>News</h1>

	{{ range .Items }}
		<div class="mb-4">
			<h2><a href="/news/{{ .Item.ID }}">{{ .Item.Title }}</a></h2>
			<div class="text-muted">{{ $.FormatDateTime .Item.TsPublished }}</div>
			<p>{{ .Teaser }}</p>
		</div>
	{{ else }}
		<p>No news yet.</p>
	{{ end }}

	<div class="news-pagelinks">
		{{ range .PageLinks }}
			{{ . }}
		{{ end }}
	</div>`)

type newsTeaser struct {
	Item   core.DBNewsItem
	Teaser string
}

type newsPageData struct {
	*context
	Items []newsTeaser
	page  int // starting with 1
	pages int
}

func (data *newsPageData) PageLinks() []template.HTML {
	return util.PageLinks(
		data.page,
		data.pages,
		func(page int, name string) string {
			return `<a href="/page/` + strconv.Itoa(page) + `">` + name + `</a>`
		},
		func(page int, name string) string {
			return `<span>` + name + `</span>`
		},
	)
}

func newsPage(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var page, _ = strconv.Atoi(params.ByName("page"))
	if page < 1 {
		page = 1
	}

	items, pages, err := ctx.db.LatestNews(page)
	if err != nil {
		return err
	}

	var teasers = make([]newsTeaser, 0, len(items))
	for _, item := range items {
		teasers = append(teasers, newsTeaser{
			Item:   item,
			Teaser: util.Excerpt(strings.NewReader(string(renderMarkdown(item.Text()))), 300),
		})
	}

	return newsPageTmpl.Execute(w, &newsPageData{
		context: ctx,
		Items:   teasers,
		page:    page,
		pages:   pages,
	})
}
