package carousel

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-carousel/internal/assets"
	"github.com/alnah/go-carousel/internal/fileutil"
	"github.com/alnah/go-carousel/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.CSSInjector    = (*pipeline.CSSInjection)(nil)
	_ pipeline.MarkupRenderer = (*pipeline.GoldmarkRenderer)(nil)
	_ pipeline.Tagger         = taggerAdapter{}
)

// Generator turns scripts into PNG cards with one headless browser session.
// Create with NewGenerator, call Generate for each script, and Close when
// done. A Generator is not safe for concurrent use.
type Generator struct {
	cfg               generatorConfig
	assetLoader       assets.AssetLoader // internal loader
	publicAssetLoader AssetLoader        // public loader (from WithAssetLoader)
	templates         *assets.TemplateSet
	markup            pipeline.MarkupRenderer
	cssInjector       pipeline.CSSInjector
	tagger            pipeline.Tagger
	loadTagger        func() (pipeline.Tagger, error)
	renderer          cardRenderer
	progress          io.Writer
}

// NewGenerator creates a Generator with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStyle, WithLayout).
// Returns error if options are invalid or assets cannot be loaded.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			timeout:      defaultTimeout,
			templateName: DefaultTemplateSet,
			highlight:    DefaultHighlight(),
		},
		assetLoader: assets.NewEmbeddedLoader(),
		markup:      pipeline.NewGoldmarkRenderer(),
		cssInjector: &pipeline.CSSInjection{},
		loadTagger:  loadGseTagger,
	}

	for _, opt := range opts {
		opt(g)
	}

	if err := g.cfg.layout.Validate(); err != nil {
		return nil, err
	}
	if g.cfg.viewport != nil {
		if err := g.cfg.viewport.Validate(); err != nil {
			return nil, err
		}
	}

	if g.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(g.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAssetPath, err)
		}
		g.assetLoader = resolver
	}
	if g.publicAssetLoader != nil {
		g.assetLoader = &publicToInternalAdapter{pub: g.publicAssetLoader}
	}

	if err := g.resolveStyle(); err != nil {
		return nil, err
	}

	ts, err := g.assetLoader.LoadTemplateSet(g.cfg.templateName)
	if err != nil {
		return nil, fmt.Errorf("loading template set %q: %w", g.cfg.templateName, convertAssetError(err))
	}
	g.templates = ts

	if g.tagger != nil {
		cached, err := pipeline.NewCachedTagger(g.tagger, pipeline.DefaultTagCacheSize)
		if err != nil {
			return nil, err
		}
		g.tagger = cached
	}

	if g.renderer == nil {
		g.renderer = newRodRenderer(g.cfg.timeout)
	}

	return g, nil
}

// loadGseTagger builds the default dictionary tagger behind a cache.
func loadGseTagger() (pipeline.Tagger, error) {
	t, err := pipeline.NewGseTagger()
	if err != nil {
		return nil, err
	}
	return pipeline.NewCachedTagger(t, pipeline.DefaultTagCacheSize)
}

// Generate renders input.Script into cards under input.OutputDir.
// Cards are produced one at a time and the first failure stops the run;
// cards already written stay on disk. A script without any non-blank line
// yields an empty Result.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (g *Generator) Generate(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := input.mode()
	res := &Result{Mode: mode}

	// The avatar is checked before anything else so a bad path fails even
	// when the script has no content.
	var avatarURI string
	if input.AvatarPath != "" {
		avatarURI, err = EncodeAvatar(input.AvatarPath, input.MIMEPolicy.resolve(mode))
		if err != nil {
			return nil, err
		}
	}

	lines := pipeline.SplitLines(input.Script)
	if len(lines) == 0 {
		return res, nil
	}

	if err := fileutil.EnsureDir(input.OutputDir); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	run := runState{input: input, avatarURI: avatarURI, viewport: g.viewport(mode), result: res}
	switch mode {
	case ModeDocument:
		err = g.generateDocument(ctx, &run, lines)
	default:
		err = g.generateLines(ctx, &run, lines)
	}
	if err != nil {
		return nil, err
	}

	if input.Manifest {
		path, err := writeManifest(input.OutputDir, res)
		if err != nil {
			return nil, err
		}
		res.Manifest = path
	}

	return res, nil
}

// runState carries one Generate call through the mode-specific steps.
type runState struct {
	input     Input
	avatarURI string
	viewport  Viewport
	result    *Result
}

// generateLines renders one card per line. Only explicit **markup** is
// highlighted in this mode.
func (g *Generator) generateLines(ctx context.Context, run *runState, lines []string) error {
	shell, err := pipeline.InjectAvatar(g.templates.Line, run.avatarURI)
	if err != nil {
		return fmt.Errorf("preparing card template: %w", err)
	}
	shell = g.cssInjector.InjectCSS(ctx, shell, g.cfg.resolvedStyle)

	explicit := pipeline.NewHighlighter(pipeline.HighlightOptions{}, nil)

	for i, pair := range pipeline.SegmentLines(lines) {
		n := i + 1
		body, err := g.markup.RenderInline(ctx, explicit.Apply(pair.Body))
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}

		doc := pipeline.ComposeLineDocument(shell, pipeline.LineCard{
			Title: pair.Title,
			Body:  body,
			First: i == 0,
		}, g.templates.FirstPageStyle)

		g.progressf("Generating image for line %d: %s\n", n, pair.Body)
		if err := g.writeCard(ctx, run, doc, PageResult{Ordinal: n, Title: pair.Title, First: i == 0}); err != nil {
			return err
		}
	}
	return nil
}

// generateDocument packs paragraphs into measured pages under a cover header.
func (g *Generator) generateDocument(ctx context.Context, run *runState, lines []string) error {
	title, pairs := pipeline.SegmentDocument(lines)

	tagger, err := g.ensureTagger()
	if err != nil {
		return err
	}
	highlighter := pipeline.NewHighlighter(g.cfg.highlight.toPipeline(), tagger)
	paragraphs, err := pipeline.NewParagraphBuilder(highlighter, g.markup).BuildAll(ctx, pairs)
	if err != nil {
		return err
	}

	shell := g.cssInjector.InjectCSS(ctx, g.templates.Document, g.cfg.resolvedStyle)
	composer, err := pipeline.NewPageComposer(shell, g.templates.Page)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPageRender, err)
	}

	skeleton, err := composer.MeasurementDocument(ctx)
	if err != nil {
		return err
	}
	canvas, err := g.renderer.LoadLayout(ctx, skeleton, run.viewport)
	if err != nil {
		return err
	}
	run.result.CanvasHeight = canvas

	pages, err := pipeline.NewPaginator(g.renderer, g.cfg.layout.toPipeline(canvas)).Paginate(ctx, paragraphs)
	if err != nil {
		return err
	}

	header := pipeline.CoverHeader{
		Title:     title,
		AvatarURI: run.avatarURI,
		Gradient:  pipeline.RandomGradient(pipeline.NewRand(run.input.Seed)),
	}
	for _, page := range pages {
		doc, err := composer.ComposePage(ctx, page, header)
		if err != nil {
			return fmt.Errorf("page %d: %w", page.Ordinal, err)
		}

		pr := PageResult{Ordinal: page.Ordinal, First: page.IsFirst}
		if page.IsFirst {
			pr.Title = title
		}
		if err := g.writeCard(ctx, run, doc, pr); err != nil {
			return err
		}
	}
	return nil
}

// writeCard screenshots doc into output_<ordinal>.png and records it.
func (g *Generator) writeCard(ctx context.Context, run *runState, doc string, page PageResult) error {
	page.Path = filepath.Join(run.input.OutputDir, OutputFileName(page.Ordinal))
	if err := g.renderer.Screenshot(ctx, doc, run.viewport, page.Path); err != nil {
		return fmt.Errorf("card %d: %w", page.Ordinal, err)
	}
	run.result.Pages = append(run.result.Pages, page)
	g.progressf("Generated image: %s\n", page.Path)
	return nil
}

// ensureTagger returns the tagger for the verb+noun rule, loading the
// default one on first need. Returns nil when the rule is off.
func (g *Generator) ensureTagger() (pipeline.Tagger, error) {
	h := g.cfg.highlight
	if !h.Heuristic || !h.VerbNoun {
		return nil, nil
	}
	if g.tagger == nil {
		t, err := g.loadTagger()
		if err != nil {
			return nil, err
		}
		g.tagger = t
	}
	return g.tagger, nil
}

// viewport returns the configured viewport or the default of mode.
func (g *Generator) viewport(mode Mode) Viewport {
	if g.cfg.viewport != nil {
		return *g.cfg.viewport
	}
	return DefaultViewport(mode)
}

func (g *Generator) progressf(format string, args ...any) {
	if g.progress != nil {
		fmt.Fprintf(g.progress, format, args...)
	}
}

// OutputFileName returns the image file name of the card at ordinal.
func OutputFileName(ordinal int) string {
	return fmt.Sprintf("output_%d.png", ordinal)
}

// Close releases resources (headless Chrome browser).
func (g *Generator) Close() error {
	if g.renderer != nil {
		return g.renderer.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS.
// An empty input selects the default style.
func (g *Generator) resolveStyle() error {
	input := g.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	// CSS content? (contains {)
	if strings.Contains(input, "{") {
		g.cfg.resolvedStyle = input
		return nil
	}

	// File path? (contains a separator or ends in .css)
	if fileutil.IsFilePath(input) || fileutil.IsCSS(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: loading style file %q: %v", ErrStyleNotFound, input, err)
		}
		g.cfg.resolvedStyle = string(content)
		return nil
	}

	css, err := g.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	g.cfg.resolvedStyle = css
	return nil
}
