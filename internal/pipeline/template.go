package pipeline

import (
	"sort"
	"strings"
)

// Placeholder tokens recognized in shell templates.
const (
	TokenFirstPageStyle  = "{{FIRST_PAGE_STYLE}}"
	TokenPageStyleClass  = "{{PAGE_STYLE_CLASS}}"
	TokenTitleStyleClass = "{{TITLE_STYLE_CLASS}}"
	TokenCoverTitle      = "{{COVER_TITLE}}"
	TokenTextContent     = "{{TEXT_CONTENT}}"
	TokenPageContent     = "{{PAGE_CONTENT}}"
)

// Substitute replaces every occurrence of each token in tmpl with its value
// in a single pass, so substituted values are never re-scanned for tokens.
// Tokens absent from values are left as-is.
func Substitute(tmpl string, values map[string]string) string {
	if len(values) == 0 {
		return tmpl
	}

	tokens := make([]string, 0, len(values))
	for token := range values {
		tokens = append(tokens, token)
	}
	// Longest first so a token never shadows a longer one sharing its prefix.
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})

	pairs := make([]string, 0, 2*len(tokens))
	for _, token := range tokens {
		pairs = append(pairs, token, values[token])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
