package main

// Notes:
// - exitCodeFor: we test the sentinel errors from the carousel and config
//   packages and the CLI itself, plus wrapped errors to verify the
//   errors.Is() chain works correctly.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	carousel "github.com/alnah/go-carousel"
	"github.com/alnah/go-carousel/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", carousel.ErrBrowserConnect, ExitBrowser},
		{"page create", carousel.ErrPageCreate, ExitBrowser},
		{"page load", carousel.ErrPageLoad, ExitBrowser},
		{"measure", carousel.ErrMeasure, ExitBrowser},
		{"screenshot", carousel.ErrScreenshot, ExitBrowser},
		{"wrapped screenshot", fmt.Errorf("card 3: %w", carousel.ErrScreenshot), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"input not found", carousel.ErrInputNotFound, ExitIO},
		{"read input", carousel.ErrReadInput, ExitIO},
		{"avatar not found", carousel.ErrAvatarNotFound, ExitIO},
		{"avatar encode", carousel.ErrAvatarEncode, ExitIO},
		{"write output", carousel.ErrWriteOutput, ExitIO},
		{"wrapped write output", fmt.Errorf("card 1: %w", carousel.ErrWriteOutput), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"no input", ErrNoInput, ExitUsage},
		{"too many args", ErrTooManyArgs, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"invalid viewport flag", ErrInvalidViewportFlag, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"empty output dir", carousel.ErrEmptyOutputDir, ExitUsage},
		{"invalid mode", carousel.ErrInvalidMode, ExitUsage},
		{"invalid viewport", carousel.ErrInvalidViewport, ExitUsage},
		{"invalid layout", carousel.ErrInvalidLayout, ExitUsage},
		{"invalid mime policy", carousel.ErrInvalidMIMEPolicy, ExitUsage},
		{"style not found", carousel.ErrStyleNotFound, ExitUsage},
		{"template set not found", carousel.ErrTemplateSetNotFound, ExitUsage},
		{"incomplete template set", carousel.ErrIncompleteTemplateSet, ExitUsage},
		{"invalid asset path", carousel.ErrInvalidAssetPath, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"tagger load", carousel.ErrTaggerLoad, ExitGeneral},
		{"page render", carousel.ErrPageRender, ExitGeneral},
		{"canceled", context.Canceled, ExitGeneral},
		{"interrupted measure", fmt.Errorf("%w: %w", carousel.ErrMeasure, context.Canceled), ExitGeneral},
		{"measure deadline", fmt.Errorf("%w: %w", carousel.ErrMeasure, context.DeadlineExceeded), ExitGeneral},

		// Specific sentinels win over a wrapped os cause
		{"asset path with missing dir", fmt.Errorf("%w: %w", carousel.ErrInvalidAssetPath, os.ErrNotExist), ExitUsage},
		{"write output permission", fmt.Errorf("%w: %w", carousel.ErrWriteOutput, os.ErrPermission), ExitIO},
		{"screenshot write", fmt.Errorf("%w: %w", carousel.ErrScreenshot, os.ErrPermission), ExitBrowser},
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := exitCodeFor(tt.err)
			if got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix convention compliance
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()
	// Verify exit codes follow Unix conventions
	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}

	// Verify custom codes are below 126 (Unix convention)
	if ExitIO >= 126 {
		t.Errorf("ExitIO = %d, should be < 126", ExitIO)
	}
	if ExitBrowser >= 126 {
		t.Errorf("ExitBrowser = %d, should be < 126", ExitBrowser)
	}
}
