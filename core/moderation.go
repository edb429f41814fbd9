package core

import (
	"strings"
)

// Moderate checks text against the configured forbidden words. Matching is
// case-sensitive and by substring, so derived forms are caught as well.
// On rejection it returns the configured warning as a ValidationError on
// the text field, and the caller must not persist the text.
func (c *CoreDB) Moderate(text string) error {
	for _, word := range c.Config.BadWords {
		if strings.Contains(text, word) {
			return ValidationError{Field: "text", Message: c.Config.ModerationWarning}
		}
	}
	return nil
}
