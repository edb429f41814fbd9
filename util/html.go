package util

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Excerpt returns the text content of the input HTML, up to maxRunes runes,
// considering roughly the first 4000 bytes. Block elements become spaces,
// scripts and styles are skipped.
func Excerpt(input io.Reader, maxRunes int) string {

	tokenizer := html.NewTokenizerFragment(input, "body")
	tokenizer.SetMaxBuf(4096) // roughly the maximum number of bytes tokenized

	var text = &bytes.Buffer{}
	var offset = 0
	var skipTag string

	for {

		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break // assuming tokenizer.Err() == io.EOF
		}

		tagNameBytes, _ := tokenizer.TagName()
		tagName := string(tagNameBytes)

		switch tt {
		case html.StartTagToken:
			if tagName == "script" || tagName == "style" {
				skipTag = tagName
			}
		case html.EndTagToken:
			if tagName == skipTag {
				skipTag = ""
			}
			text.WriteString(" ")
		case html.TextToken:
			if skipTag == "" {
				text.Write(tokenizer.Text())
			}
		}

		offset += len(tokenizer.Raw())
		if offset > 4000 {
			break
		}
	}

	return Trunc(strings.Join(strings.Fields(text.String()), " "), maxRunes)
}
