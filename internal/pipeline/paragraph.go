package pipeline

import (
	"context"
	"fmt"
	"html"
)

// Paragraph is the rendered markup of one document-mode line.
type Paragraph struct {
	TitleMarkup string
	BodyMarkup  string
}

// Markup returns the paragraph as a <p> element.
func (p Paragraph) Markup() string {
	return "<p>" + p.TitleMarkup + p.BodyMarkup + "</p>"
}

// ParagraphBuilder turns segmented pairs into paragraph markup.
type ParagraphBuilder struct {
	highlighter *Highlighter
	renderer    MarkupRenderer
}

// NewParagraphBuilder creates a ParagraphBuilder. The highlighter decides
// emphasis on the raw body; the renderer escapes and renders it.
func NewParagraphBuilder(h *Highlighter, r MarkupRenderer) *ParagraphBuilder {
	return &ParagraphBuilder{highlighter: h, renderer: r}
}

// Build renders one pair. An inline title becomes <strong>title</strong>
// followed by its separator.
func (b *ParagraphBuilder) Build(ctx context.Context, pair Pair) (Paragraph, error) {
	var p Paragraph
	if pair.Title != "" {
		p.TitleMarkup = "<strong>" + html.EscapeString(pair.Title) + "</strong>" + html.EscapeString(pair.Separator)
	}

	body, err := b.renderer.RenderInline(ctx, b.highlighter.Apply(pair.Body))
	if err != nil {
		return Paragraph{}, err
	}
	p.BodyMarkup = body
	return p, nil
}

// BuildAll renders every pair and returns the <p> markup of each, in order.
func (b *ParagraphBuilder) BuildAll(ctx context.Context, pairs []Pair) ([]string, error) {
	out := make([]string, 0, len(pairs))
	for i, pair := range pairs {
		p, err := b.Build(ctx, pair)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		out = append(out, p.Markup())
	}
	return out, nil
}
