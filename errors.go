package carousel

import (
	"errors"

	"github.com/alnah/go-carousel/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInputNotFound  = errors.New("input file not found")
	ErrReadInput      = errors.New("failed to read input")
	ErrAvatarNotFound = errors.New("avatar image not found")
	ErrAvatarEncode   = errors.New("failed to encode avatar")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrScreenshot     = errors.New("failed to capture screenshot")
	ErrWriteOutput    = errors.New("failed to write output")

	// Pipeline errors, shared with the internal stages so errors.Is matches
	// whichever layer reported them.
	ErrMeasure    = pipeline.ErrMeasure
	ErrPageRender = pipeline.ErrPageRender
	ErrTaggerLoad = pipeline.ErrTaggerLoad

	// Input validation errors.
	ErrEmptyOutputDir    = errors.New("output directory cannot be empty")
	ErrInvalidMode       = errors.New("invalid mode")
	ErrInvalidViewport   = errors.New("invalid viewport")
	ErrInvalidLayout     = errors.New("invalid layout")
	ErrInvalidMIMEPolicy = errors.New("invalid avatar MIME policy")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)
