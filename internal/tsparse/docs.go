package tsparse

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// DocExtractor turns a syntax node into its attached documentation text, or
// "" when the node carries none. It is pluggable so a different parser
// front-end can supply documentation its own way; the contract is
// "description text only, tags stripped, empty when none".
type DocExtractor func(node *sitter.Node, source []byte) string

// jsDocFor is the default DocExtractor: it collects the block comments
// immediately preceding a declaration and returns their descriptions joined
// by newlines. Only JSDoc-style comments (starting with "/**") count.
func jsDocFor(node *sitter.Node, source []byte) string {
	var blocks []string
	for sib := node.PrevSibling(); sib != nil && sib.Kind() == "comment"; sib = sib.PrevSibling() {
		text := nodeText(sib, source)
		if !strings.HasPrefix(text, "/**") {
			break
		}
		desc := jsDocDescription(text)
		if desc != "" {
			// Siblings are visited bottom-up; keep source order.
			blocks = append([]string{desc}, blocks...)
		}
	}
	return strings.Join(blocks, "\n")
}

// jsDocDescription strips comment markers from a JSDoc block and returns the
// description lines. Everything from the first @tag onward is dropped.
func jsDocDescription(comment string) string {
	comment = strings.TrimPrefix(comment, "/**")
	comment = strings.TrimSuffix(comment, "*/")

	var lines []string
	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "@") {
			break
		}
		lines = append(lines, line)
	}

	// Trim blank lines on both ends without disturbing interior breaks.
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
