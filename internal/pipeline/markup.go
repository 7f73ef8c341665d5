package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrMarkupRender indicates body text could not be rendered to HTML.
var ErrMarkupRender = errors.New("body markup rendering failed")

// MarkupRenderer renders one line of body text as inline HTML.
type MarkupRenderer interface {
	RenderInline(ctx context.Context, text string) (string, error)
}

// Compile-time interface check.
var _ MarkupRenderer = (*GoldmarkRenderer)(nil)

// GoldmarkRenderer renders body text as literal, escaped inline HTML.
// Only the paragraph parser is registered and every ASCII punctuation
// character is backslash-escaped before parsing, so "*x*", "[t](u)",
// backticks, entities and block markers all stay as typed. Emphasis comes
// only from highlight placeholders.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer creates a GoldmarkRenderer.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	p := parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
	)
	md := goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// WithUnsafe() intentionally not used: highlights travel as placeholders.
		),
	)
	return &GoldmarkRenderer{md: md}
}

// escapePunct backslash-escapes ASCII punctuation so the parser treats it
// as text.
func escapePunct(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < utf8.RuneSelf && util.IsPunct(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// RenderInline renders text without the surrounding <p> element and turns
// highlight placeholders into spans. Leading whitespace is kept verbatim.
func (r *GoldmarkRenderer) RenderInline(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	trimmed := strings.TrimLeft(text, " \t")
	lead := text[:len(text)-len(trimmed)]
	if strings.TrimSpace(trimmed) == "" {
		return lead, nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(escapePunct(trimmed)), &buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMarkupRender, err)
	}

	out := strings.TrimSpace(buf.String())
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return lead + ConvertHighlightPlaceholders(out), nil
}
