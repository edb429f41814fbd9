package web

import (
	"html/template"

	"gitlab.com/golang-commonmark/markdown"
)

// HTML is off because note and comment bodies are user content, so raw
// HTML must be escaped rather than passed through.
var markdownParser *markdown.Markdown = markdown.New(markdown.HTML(false), markdown.Linkify(true), markdown.Typographer(true), markdown.MaxNesting(10))

func renderMarkdown(content string) template.HTML {
	return template.HTML(markdownParser.RenderToString([]byte(content)))
}
