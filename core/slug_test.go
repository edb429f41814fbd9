package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "foo-bar", NormalizeSlug("Foo Bar"))
	assert.Equal(t, "foo-bar", NormalizeSlug("  foo...bar  "))
	assert.Equal(t, "foo-bar", NormalizeSlug("-foo_bar-"))
	assert.Equal(t, "foo-1-2-3", NormalizeSlug("foo 1/2/3"))
	assert.Equal(t, "", NormalizeSlug("..."))
	assert.Equal(t, "", NormalizeSlug(""))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", Slugify("Hello, World!"))
	assert.Equal(t, "uber-strasse", Slugify("Über Straße"))
	assert.Equal(t, "cafe-creme", Slugify("Café Crème"))
	assert.Equal(t, "novaja-zametka", Slugify("Новая заметка"))
	assert.Equal(t, "schuka-i-ersh", Slugify("Щука и ёрш"))
	assert.Equal(t, "podezd", Slugify("подъезд"))
	assert.Equal(t, "jogurt", Slugify("йогурт"))
	assert.Equal(t, "2-plus-2", Slugify("2 plus 2"))
	assert.Equal(t, "", Slugify("!!!"))
}

// Slugify must be deterministic, two equal titles yield the same slug.
func TestSlugifyDeterministic(t *testing.T) {
	assert.Equal(t, Slugify("Заголовок"), Slugify("Заголовок"))
}

func TestAssignSlug(t *testing.T) {

	var noneTaken = func(string) (bool, error) {
		return false, nil
	}

	// explicit candidate wins over the title
	slug, err := AssignSlug("My Slug", "Some Title", noneTaken)
	require.NoError(t, err)
	assert.Equal(t, "my-slug", slug)

	// empty candidate falls back to the title
	slug, err = AssignSlug("", "Some Title", noneTaken)
	require.NoError(t, err)
	assert.Equal(t, "some-title", slug)

	// neither yields anything usable
	_, err = AssignSlug("", "", noneTaken)
	var v ValidationError
	require.True(t, errors.As(err, &v))
	assert.Equal(t, "slug", v.Field)
}

func TestAssignSlugTaken(t *testing.T) {

	var taken = func(slug string) (bool, error) {
		return slug == "in-use", nil
	}

	// explicit candidate collides
	_, err := AssignSlug("In Use", "whatever", taken)
	var c ConflictError
	require.True(t, errors.As(err, &c))
	assert.Equal(t, "slug", c.Field)
	assert.Contains(t, c.Message, "in-use")

	// derived slug collides as well, no silent disambiguation
	_, err = AssignSlug("", "In Use", taken)
	require.True(t, errors.As(err, &c))

	// a free slug passes
	slug, err := AssignSlug("", "Still Free", taken)
	require.NoError(t, err)
	assert.Equal(t, "still-free", slug)
}

func TestAssignSlugTakenError(t *testing.T) {
	var boom = errors.New("boom")
	_, err := AssignSlug("foo", "", func(string) (bool, error) {
		return false, boom
	})
	assert.Equal(t, boom, err)
}
