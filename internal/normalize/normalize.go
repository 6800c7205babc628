package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Name builds a case-insensitive comparison key for content and user names.
func Name(s string) string {
	return folder.String(strings.TrimSpace(s))
}
