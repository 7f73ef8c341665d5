package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"html/template"
	"strings"
)

// ErrPageRender indicates a page template could not be rendered.
var ErrPageRender = errors.New("page template rendering failed")

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block before </head>, after <body>, or at the
// start of the HTML, whichever is found first. The CSS is sanitized so it
// cannot close the style element.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := StyleBlock(cssContent)
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// StyleBlock wraps sanitized CSS in a <style> element.
func StyleBlock(css string) string {
	return "<style>" + sanitizeCSS(css) + "</style>"
}

// sanitizeCSS escapes "</" so the CSS cannot end its <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// LineCard holds the rendered parts of a per-line card.
type LineCard struct {
	// Title is plain text; it is HTML-escaped on composition.
	Title string

	// Body is rendered inline HTML.
	Body string

	// First marks the cover card.
	First bool
}

// ComposeLineDocument fills a per-line shell template for one card.
// The cover card gets the main-title and first-page classes and the
// first-page style block; other cards get empty values for those tokens.
func ComposeLineDocument(shell string, card LineCard, firstPageCSS string) string {
	values := map[string]string{
		TokenFirstPageStyle:  "",
		TokenPageStyleClass:  "",
		TokenTitleStyleClass: "",
		TokenCoverTitle:      html.EscapeString(card.Title),
		TokenTextContent:     card.Body,
	}
	if card.First {
		values[TokenPageStyleClass] = "first-page"
		values[TokenTitleStyleClass] = "main-title"
		if firstPageCSS != "" {
			values[TokenFirstPageStyle] = StyleBlock(firstPageCSS)
		}
	}
	return Substitute(shell, values)
}

// CoverHeader is the document-mode cover drawn on the first page.
type CoverHeader struct {
	Title     string
	AvatarURI string
	Gradient  string
}

// pageView is the data handed to the page template.
type pageView struct {
	IsFirst  bool
	Title    string
	Avatar   template.URL
	Gradient template.CSS
	Content  template.HTML
}

// PageComposer renders document-mode pages into a shell template.
type PageComposer struct {
	shell string
	tmpl  *template.Template
}

// NewPageComposer parses the page template used inside shell.
// Returns error if the template cannot be parsed.
func NewPageComposer(shell, pageTmpl string) (*PageComposer, error) {
	tmpl, err := template.New("page").Parse(pageTmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &PageComposer{shell: shell, tmpl: tmpl}, nil
}

// ComposePage returns the full HTML document for page. The header is only
// drawn on the first page. Fragment is trusted markup from the renderer;
// avatar and gradient come from the generator, never from the script.
func (c *PageComposer) ComposePage(ctx context.Context, page Page, header CoverHeader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	view := pageView{
		IsFirst: page.IsFirst,
		Content: template.HTML(page.Fragment), //nolint:gosec // rendered by GoldmarkRenderer without unsafe HTML
	}
	if page.IsFirst {
		view.Title = header.Title
		view.Avatar = template.URL(header.AvatarURI)  //nolint:gosec // data URI built from a local file
		view.Gradient = template.CSS(header.Gradient) //nolint:gosec // generated by RandomGradient
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPageRender, err)
	}

	return Substitute(c.shell, map[string]string{
		TokenFirstPageStyle: "",
		TokenPageContent:    buf.String(),
	}), nil
}

// MeasurementDocument returns the shell with one empty, non-first page, used
// to measure the canvas and body heights.
func (c *PageComposer) MeasurementDocument(ctx context.Context) (string, error) {
	return c.ComposePage(ctx, Page{Ordinal: 1}, CoverHeader{})
}
