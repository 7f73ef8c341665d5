package main

import (
	"context"
	"io"
	"os"
	"time"

	carousel "github.com/alnah/go-carousel"
)

// CardGenerator is the interface for the card generation service.
type CardGenerator interface {
	Generate(ctx context.Context, input carousel.Input) (*carousel.Result, error)
	Close() error
}

// Compile-time interface implementation check.
var _ CardGenerator = (*carousel.Generator)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and generator construction.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	NewGenerator func(opts ...carousel.Option) (CardGenerator, error)
}

// DefaultEnv returns the production environment backed by headless Chrome.
func DefaultEnv() *Environment {
	return &Environment{
		Now:          time.Now,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		NewGenerator: newBrowserGenerator,
	}
}

func newBrowserGenerator(opts ...carousel.Option) (CardGenerator, error) {
	g, err := carousel.NewGenerator(opts...)
	if err != nil {
		return nil, err
	}
	return g, nil
}
