// Package htmlsanitize strips markup from user-supplied text before it
// is stored. Comment content and task text are plain text as far as the
// API is concerned; anything that looks like HTML is flattened.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Clean removes all HTML elements and attributes from s and trims
// surrounding whitespace.
func Clean(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
