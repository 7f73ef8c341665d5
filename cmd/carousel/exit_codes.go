package main

import (
	"context"
	"errors"
	"os"

	carousel "github.com/alnah/go-carousel"
	"github.com/alnah/go-carousel/internal/config"
)

// Exit codes for the carousel CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Cards generated (or nothing to generate)
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid arguments, flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, unwritable output
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Interrupts and deadlines (exit 1) win over the stage that was running.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ExitGeneral
	}

	// Browser errors (exit 4)
	if errors.Is(err, carousel.ErrBrowserConnect) ||
		errors.Is(err, carousel.ErrPageCreate) ||
		errors.Is(err, carousel.ErrPageLoad) ||
		errors.Is(err, carousel.ErrMeasure) ||
		errors.Is(err, carousel.ErrScreenshot) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2), checked before I/O since
	// asset and config sentinels may wrap a missing-file cause.
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidViewportFlag) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, carousel.ErrEmptyOutputDir) ||
		errors.Is(err, carousel.ErrInvalidMode) ||
		errors.Is(err, carousel.ErrInvalidViewport) ||
		errors.Is(err, carousel.ErrInvalidLayout) ||
		errors.Is(err, carousel.ErrInvalidMIMEPolicy) ||
		errors.Is(err, carousel.ErrStyleNotFound) ||
		errors.Is(err, carousel.ErrTemplateSetNotFound) ||
		errors.Is(err, carousel.ErrIncompleteTemplateSet) ||
		errors.Is(err, carousel.ErrInvalidAssetPath) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, carousel.ErrInputNotFound) ||
		errors.Is(err, carousel.ErrReadInput) ||
		errors.Is(err, carousel.ErrAvatarNotFound) ||
		errors.Is(err, carousel.ErrAvatarEncode) ||
		errors.Is(err, carousel.ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
