package carousel

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alnah/go-carousel/internal/pipeline"
)

// Mode selects how a script becomes cards.
type Mode string

const (
	// ModeLines renders one card per script line. The first line is the cover.
	ModeLines Mode = "lines"

	// ModeDocument packs paragraphs into pages by measured height. The first
	// line is the cover title drawn above the first page's paragraphs.
	ModeDocument Mode = "document"
)

// ParseMode returns the Mode named by s, case-insensitively.
// An empty string selects ModeLines.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeLines):
		return ModeLines, nil
	case string(ModeDocument):
		return ModeDocument, nil
	default:
		return "", fmt.Errorf("%w: %q (must be lines or document)", ErrInvalidMode, s)
	}
}

// Validate checks that m is a known mode. The zero value is valid and
// means ModeLines.
func (m Mode) Validate() error {
	_, err := ParseMode(string(m))
	return err
}

// Viewport bounds in CSS pixels.
const (
	MaxViewportSide = 8192
)

// Viewport is the browser window size used for screenshots.
type Viewport struct {
	Width  int
	Height int
}

// DefaultViewport returns the card size of mode.
func DefaultViewport(m Mode) Viewport {
	if m == ModeDocument {
		return Viewport{Width: 825, Height: 1467}
	}
	return Viewport{Width: 750, Height: 1334}
}

// Validate checks both sides are within 1..MaxViewportSide.
func (v Viewport) Validate() error {
	if v.Width < 1 || v.Width > MaxViewportSide || v.Height < 1 || v.Height > MaxViewportSide {
		return fmt.Errorf("%w: %dx%d (each side must be 1-%d)", ErrInvalidViewport, v.Width, v.Height, MaxViewportSide)
	}
	return nil
}

// MIMEPolicy decides the media type of the avatar data URI.
type MIMEPolicy string

const (
	// MIMEAuto uses MIMETable for ModeLines and MIMEExtension for ModeDocument.
	MIMEAuto MIMEPolicy = ""

	// MIMETable maps known image extensions and falls back to
	// application/octet-stream.
	MIMETable MIMEPolicy = "table"

	// MIMEExtension uses image/<extension> for any extension.
	MIMEExtension MIMEPolicy = "extension"
)

// Validate checks that p is a known policy.
func (p MIMEPolicy) Validate() error {
	switch p {
	case MIMEAuto, MIMETable, MIMEExtension:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be table or extension)", ErrInvalidMIMEPolicy, string(p))
	}
}

// resolve returns the concrete policy for mode.
func (p MIMEPolicy) resolve(m Mode) MIMEPolicy {
	if p != MIMEAuto {
		return p
	}
	if m == ModeDocument {
		return MIMEExtension
	}
	return MIMETable
}

// Input contains generation parameters.
type Input struct {
	Script     string     // Script text (required, may be blank for no cards)
	OutputDir  string     // Directory receiving output_<n>.png (required)
	AvatarPath string     // Avatar image file (optional)
	Mode       Mode       // Card mode (default: ModeLines)
	MIMEPolicy MIMEPolicy // Avatar media type policy (default: per mode)
	Seed       uint64     // Cover gradient seed for ModeDocument (0 = random)
	Manifest   bool       // Also write manifest.json
}

// Validate checks that required fields are present and valid.
func (in Input) Validate() error {
	if strings.TrimSpace(in.OutputDir) == "" {
		return ErrEmptyOutputDir
	}
	if err := in.Mode.Validate(); err != nil {
		return err
	}
	return in.MIMEPolicy.Validate()
}

// mode returns the effective mode.
func (in Input) mode() Mode {
	if in.Mode == "" {
		return ModeLines
	}
	return in.Mode
}

// PageResult describes one written card.
type PageResult struct {
	Ordinal int    // 1-based position
	Path    string // Written PNG file
	Title   string // Card title (cover title on the first document page)
	First   bool   // Cover card
}

// Result is the outcome of a successful Generate call.
type Result struct {
	Mode         Mode
	Pages        []PageResult
	Manifest     string  // manifest.json path when requested
	CanvasHeight float64 // measured page height, ModeDocument only
}

// Empty reports whether the script produced no cards.
func (r *Result) Empty() bool {
	return r == nil || len(r.Pages) == 0
}

// Layout tunes document-mode pagination. Zero fields take the defaults.
type Layout struct {
	HeaderHeight float64 // Height reserved for the cover header (default 400)
	Padding      float64 // Vertical padding of later pages (default 100)
	FillRatio    float64 // Share of the free height to fill, 0-1 (default 0.8)
}

// Validate checks that the layout values are usable.
func (l Layout) Validate() error {
	if l.HeaderHeight < 0 || l.Padding < 0 {
		return fmt.Errorf("%w: header height and padding must not be negative", ErrInvalidLayout)
	}
	if l.FillRatio < 0 || l.FillRatio > 1 {
		return fmt.Errorf("%w: fill ratio %v must be between 0 and 1", ErrInvalidLayout, l.FillRatio)
	}
	return nil
}

// toPipeline resolves defaults against the measured canvas height.
func (l Layout) toPipeline(canvasHeight float64) pipeline.Layout {
	out := pipeline.DefaultLayout(canvasHeight)
	if l.HeaderHeight > 0 {
		out.HeaderHeight = l.HeaderHeight
	}
	if l.Padding > 0 {
		out.Padding = l.Padding
	}
	if l.FillRatio > 0 {
		out.FillRatio = l.FillRatio
	}
	return out
}

// Highlight configures emphasis synthesis for document mode.
// Explicit **text** markup is honored in both modes regardless.
type Highlight struct {
	Heuristic         bool     // Detect key phrases automatically
	VerbNoun          bool     // Also highlight adjacent verb+noun words (needs a Tagger)
	MaxPhrases        int      // Heuristic phrases per paragraph
	ExcludingTriggers []string // Highlight the text after these words
	IncludingTriggers []string // Highlight these words and the text after them
	Phrases           []string // Always highlighted when present
}

// DefaultHighlight returns the built-in Chinese key-phrase rules.
func DefaultHighlight() Highlight {
	d := pipeline.DefaultHighlightOptions()
	return Highlight{
		Heuristic:         d.Heuristic,
		VerbNoun:          true,
		MaxPhrases:        d.MaxPhrases,
		ExcludingTriggers: d.ExcludingTriggers,
		IncludingTriggers: d.IncludingTriggers,
		Phrases:           d.Phrases,
	}
}

func (h Highlight) toPipeline() pipeline.HighlightOptions {
	return pipeline.HighlightOptions{
		Heuristic:         h.Heuristic,
		MaxPhrases:        h.MaxPhrases,
		ExcludingTriggers: h.ExcludingTriggers,
		IncludingTriggers: h.IncludingTriggers,
		Phrases:           h.Phrases,
	}
}

// Token is one word with its part-of-speech tag ("v" verb, "n" noun, ...).
type Token struct {
	Word string
	Tag  string
}

// Tagger segments text into part-of-speech tagged words. It drives the
// verb+noun highlight rule. The default is a gse dictionary tagger, loaded
// on the first document-mode run.
type Tagger interface {
	Tag(text string) []Token
}

// taggerAdapter lets a public Tagger stand in for the internal one.
type taggerAdapter struct {
	pub Tagger
}

func (a taggerAdapter) Tag(text string) []pipeline.Token {
	pub := a.pub.Tag(text)
	out := make([]pipeline.Token, len(pub))
	for i, t := range pub {
		out[i] = pipeline.Token(t)
	}
	return out
}

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	timeout       time.Duration
	assetPath     string
	styleInput    string
	resolvedStyle string
	templateName  string
	layout        Layout
	highlight     Highlight
	viewport      *Viewport
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the browser operation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("carousel: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithAssetPath loads styles and templates from dir, falling back to the
// embedded assets for anything dir does not provide.
func WithAssetPath(dir string) Option {
	return func(g *Generator) {
		g.cfg.assetPath = dir
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(l AssetLoader) Option {
	return func(g *Generator) {
		g.publicAssetLoader = l
	}
}

// WithStyle sets the CSS injected into every card: a style name, a path to
// a .css file, or raw CSS content.
func WithStyle(nameOrPath string) Option {
	return func(g *Generator) {
		g.cfg.styleInput = nameOrPath
	}
}

// WithTemplateSet selects the template set by name (default "default").
func WithTemplateSet(name string) Option {
	return func(g *Generator) {
		g.cfg.templateName = name
	}
}

// WithLayout tunes document-mode pagination.
func WithLayout(l Layout) Option {
	return func(g *Generator) {
		g.cfg.layout = l
	}
}

// WithHighlight replaces the highlight rules.
func WithHighlight(h Highlight) Option {
	return func(g *Generator) {
		g.cfg.highlight = h
	}
}

// WithTagger sets the part-of-speech tagger used by the verb+noun rule.
// Results are cached per paragraph text.
func WithTagger(t Tagger) Option {
	return func(g *Generator) {
		if t != nil {
			g.tagger = taggerAdapter{pub: t}
		}
	}
}

// WithViewport overrides the per-mode card size.
func WithViewport(v Viewport) Option {
	return func(g *Generator) {
		g.cfg.viewport = &v
	}
}

// WithProgress reports one line per card to w.
func WithProgress(w io.Writer) Option {
	return func(g *Generator) {
		g.progress = w
	}
}
