package tsparse

import (
	"regexp"
	"strings"
)

// Type text that leaks out of a parser front-end can embed fully-qualified
// module paths (import("...") forms) and absolute filesystem fragments.
// simplifyTypeText strips those so signatures stay readable while the type's
// semantic name is preserved.
var (
	typeofImportRe = regexp.MustCompile(`typeof import\((?:"[^"]*"|'[^']*')\)\.`)
	importRe       = regexp.MustCompile(`import\((?:"[^"]*"|'[^']*')\)\.`)
	absPathRe      = regexp.MustCompile(`(?:/[\w@.\-]+){2,}/?`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// simplifyTypeText normalizes a rendered type string: module-path prefixes
// and absolute path fragments are removed, whitespace runs collapse to a
// single space, and the result is trimmed.
func simplifyTypeText(text string) string {
	if text == "" {
		return ""
	}
	text = typeofImportRe.ReplaceAllString(text, "")
	text = importRe.ReplaceAllString(text, "")
	text = absPathRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// truncate shortens s to at most max characters, appending an ellipsis marker
// when anything was cut.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
