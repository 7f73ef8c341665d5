package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	carousel "github.com/alnah/go-carousel"
)

// ErrInvalidViewportFlag is returned for a malformed --viewport value.
var ErrInvalidViewportFlag = errors.New("invalid viewport")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// assetFlags holds asset-related flags (CSS, templates, custom asset path).
type assetFlags struct {
	style     string // Name, path or raw CSS
	template  string // Template set name
	assetPath string // Override asset directory
}

// layoutFlags holds document-mode pagination flags.
type layoutFlags struct {
	fillRatio    float64
	headerHeight float64
}

// highlightFlags holds emphasis flags.
type highlightFlags struct {
	disabled bool
	phrases  []string
}

// generateFlags holds all flags for a generation run.
type generateFlags struct {
	common     commonFlags
	output     string
	mode       string
	timeout    string
	seed       uint64
	manifest   bool
	mimePolicy string
	viewport   string
	assets     assetFlags
	layout     layoutFlags
	highlight  highlightFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.template, "template", "", "template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addLayoutFlags adds pagination flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.Float64Var(&f.fillRatio, "fill-ratio", 0, "share of the page height to fill (0-1, default 0.8)")
	fs.Float64Var(&f.headerHeight, "header-height", 0, "cover header height in px (default 400)")
}

// addHighlightFlags adds emphasis flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.BoolVar(&f.disabled, "no-highlight", false, "disable automatic key-phrase highlighting")
	fs.StringArrayVar(&f.phrases, "phrase", nil, "phrase to always highlight (repeatable)")
}

// parseGenerateFlags parses generation flags and returns positional args.
// Usage and parse errors are written to stderr.
func parseGenerateFlags(args []string, stderr io.Writer) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("carousel", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &generateFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default \"dist\")")
	fs.StringVarP(&f.mode, "mode", "m", "", "card mode: lines, document")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "browser timeout (e.g., 30s, 2m)")
	fs.Uint64Var(&f.seed, "seed", 0, "cover gradient seed (0 = random)")
	fs.BoolVar(&f.manifest, "manifest", false, "also write manifest.json")
	fs.StringVar(&f.mimePolicy, "mime-policy", "", "avatar media type policy: table, extension")
	fs.StringVar(&f.viewport, "viewport", "", "card size as WIDTHxHEIGHT")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addLayoutFlags(fs, &f.layout)
	addHighlightFlags(fs, &f.highlight)

	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// wantsVerbose reports whether args request verbose output. It is used
// before full parsing, so unknown flags are ignored.
func wantsVerbose(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "--verbose" || arg == "-v" {
			return true
		}
		// Combined short flags such as -qv
		if len(arg) > 2 && arg[0] == '-' && arg[1] != '-' &&
			strings.Trim(arg[1:], "qv") == "" && strings.ContainsRune(arg, 'v') {
			return true
		}
	}
	return false
}

// parseViewport parses "WIDTHxHEIGHT".
func parseViewport(s string) (carousel.Viewport, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return carousel.Viewport{}, fmt.Errorf("%w: %q (want WIDTHxHEIGHT)", ErrInvalidViewportFlag, s)
	}
	width, errW := strconv.Atoi(w)
	height, errH := strconv.Atoi(h)
	if errW != nil || errH != nil {
		return carousel.Viewport{}, fmt.Errorf("%w: %q (want WIDTHxHEIGHT)", ErrInvalidViewportFlag, s)
	}
	v := carousel.Viewport{Width: width, Height: height}
	if err := v.Validate(); err != nil {
		return carousel.Viewport{}, err
	}
	return v, nil
}
