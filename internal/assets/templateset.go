package assets

import "fmt"

// TemplateSet holds the templates needed to draw both card modes.
type TemplateSet struct {
	Name string // Identifier (name or directory path)

	// Line is the per-line card shell.
	Line string

	// FirstPageStyle is extra CSS applied to the per-line cover card.
	FirstPageStyle string

	// Document is the document-mode shell wrapping one page.
	Document string

	// Page is the html/template source for a document-mode page.
	Page string
}

// Template file names inside a template set directory.
const (
	lineFile      = "line.html"
	firstPageFile = "first-page.css"
	documentFile  = "document.html"
	pageFile      = "page.html"
)

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// templateFiles maps the required files of a set to their content.
type templateFiles map[string][]byte

// newTemplateSet assembles a TemplateSet from the files that were found.
// A set with none of its files does not exist; one missing a required file
// is incomplete.
func newTemplateSet(name string, files templateFiles) (*TemplateSet, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}
	for _, required := range []string{lineFile, documentFile, pageFile} {
		if _, ok := files[required]; !ok {
			return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, required)
		}
	}
	return &TemplateSet{
		Name:           name,
		Line:           string(files[lineFile]),
		FirstPageStyle: string(files[firstPageFile]),
		Document:       string(files[documentFile]),
		Page:           string(files[pageFile]),
	}, nil
}
