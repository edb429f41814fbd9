package core

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugRegex *regexp.Regexp = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeSlug normalizes a slug. Especially, dots are removed.
// Almost identical to the javascript function "normalizeSlug".
func NormalizeSlug(slug string) string {

	slug = strings.ToLower(strings.TrimSpace(slug))
	slug = slugRegex.ReplaceAllString(slug, `-`)

	// in addition to the javascript function, remove leading and trailing dashes
	slug = strings.Trim(slug, "-")

	return slug
}

// foldMarks decomposes letters and drops their combining marks, so "é"
// becomes "e" and "ä" becomes "a".
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Latin transcriptions of letters which mark folding can't handle,
// notably the cyrillic alphabet. Keys must be lowercase.
var translitTable = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "j", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "c", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "ju", 'я': "ja",
	'ß': "ss", 'æ': "ae", 'ø': "o", 'œ': "oe", 'ð': "d", 'þ': "th",
}

// Slugify derives a slug from a title: transliterates it to ASCII,
// lowercases it and turns runs of anything else into single hyphens.
// It is deterministic and has no hidden state.
func Slugify(title string) string {

	title = strings.ToLower(strings.TrimSpace(title))

	// transliterate before folding, else NFD decomposes "й" into "и" plus
	// a combining mark and the table entry never matches
	var sb strings.Builder
	for _, r := range title {
		if latin, ok := translitTable[r]; ok {
			sb.WriteString(latin)
		} else {
			sb.WriteRune(r)
		}
	}
	title = sb.String()

	if folded, _, err := transform.String(foldMarks, title); err == nil {
		title = folded
	}

	return NormalizeSlug(title)
}

// AssignSlug determines the slug for a new note. An explicit candidate
// wins, else the slug is derived from the title. Both variants are checked
// with taken, which reports whether a slug is already in use. The sql
// UNIQUE constraint remains the last line of defense against concurrent
// creation.
func AssignSlug(candidate, title string, taken func(string) (bool, error)) (string, error) {

	var slug = NormalizeSlug(candidate)
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return "", ValidationError{Field: "slug", Message: "slug can't be empty"}
	}

	if inUse, err := taken(slug); err != nil {
		return "", err
	} else if inUse {
		return "", ConflictError{Field: "slug", Message: slug + " is already taken, choose a unique slug"}
	}

	return slug, nil
}
