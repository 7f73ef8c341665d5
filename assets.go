package carousel

import (
	"errors"

	"github.com/alnah/go-carousel/internal/assets"
)

// Asset name constants for built-in styles and templates.
const (
	// DefaultStyle is the name of the built-in CSS style.
	DefaultStyle = "default"

	// DefaultTemplateSet is the name of the built-in template set.
	DefaultTemplateSet = "default"
)

// AssetLoader defines the contract for loading CSS styles and HTML templates.
// Implementations may load from filesystem, embedded assets, a database, etc.
//
// NewAssetLoader returns a filesystem loader that falls back to the embedded
// defaults. Implement this interface for other backends.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the card templates of a set by name.
	// Returns ErrTemplateSetNotFound if the template set doesn't exist.
	// Returns ErrIncompleteTemplateSet if required templates are missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the templates for both card modes.
//
// Line and FirstPageStyle drive ModeLines; Document and Page drive
// ModeDocument. Line uses the {{FIRST_PAGE_STYLE}}, {{PAGE_STYLE_CLASS}},
// {{TITLE_STYLE_CLASS}}, {{COVER_TITLE}} and {{TEXT_CONTENT}} tokens and may
// contain img#coverAvatarPreview for the avatar. Document uses
// {{FIRST_PAGE_STYLE}} and {{PAGE_CONTENT}}. Page is an html/template
// executed with IsFirst, Title, Avatar, Gradient and Content.
type TemplateSet struct {
	Name           string // Identifier (name or path)
	Line           string // Per-line card shell
	FirstPageStyle string // CSS for the per-line cover card (optional)
	Document       string // Document-mode shell
	Page           string // Document-mode page template
}

// NewTemplateSet creates a TemplateSet from template content.
// This is a convenience constructor for users providing templates directly.
func NewTemplateSet(name, line, firstPageStyle, document, page string) *TemplateSet {
	return &TemplateSet{
		Name:           name,
		Line:           line,
		FirstPageStyle: firstPageStyle,
		Document:       document,
		Page:           page,
	}
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css for CSS styles
//   - templates/{name}/line.html, document.html, page.html and an optional
//     first-page.css for template sets
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps internal AssetResolver to return public types.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.resolver.LoadTemplateSet(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return fromInternalTemplateSet(ts), nil
}

// publicToInternalAdapter lets a public AssetLoader stand in for the
// internal one.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

func (a *publicToInternalAdapter) LoadTemplateSet(name string) (*assets.TemplateSet, error) {
	ts, err := a.pub.LoadTemplateSet(name)
	if err != nil {
		return nil, err
	}
	return toInternalTemplateSet(ts), nil
}

func fromInternalTemplateSet(ts *assets.TemplateSet) *TemplateSet {
	return &TemplateSet{
		Name:           ts.Name,
		Line:           ts.Line,
		FirstPageStyle: ts.FirstPageStyle,
		Document:       ts.Document,
		Page:           ts.Page,
	}
}

func toInternalTemplateSet(ts *TemplateSet) *assets.TemplateSet {
	return &assets.TemplateSet{
		Name:           ts.Name,
		Line:           ts.Line,
		FirstPageStyle: ts.FirstPageStyle,
		Document:       ts.Document,
		Page:           ts.Page,
	}
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateSetNotFound):
		return wrapError(ErrTemplateSetNotFound, err)
	case errors.Is(err, assets.ErrIncompleteTemplateSet):
		return wrapError(ErrIncompleteTemplateSet, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrStyleNotFound, err) // invalid name means not found
	default:
		return err
	}
}

// wrapError returns an error that prints like original but matches sentinel
// with errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel; internal errors stay hidden.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
