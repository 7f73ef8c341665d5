package main

// Notes:
// - parseGenerateFlags: we test short/long forms, repeatable flags,
//   interleaved positionals and parse errors.
// - wantsVerbose: we test the pre-parse scan used for the maxprocs logger.
// - parseViewport: we test format and range validation.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	flag "github.com/spf13/pflag"

	carousel "github.com/alnah/go-carousel"
)

// ---------------------------------------------------------------------------
// TestParseGenerateFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseGenerateFlags(t *testing.T) {
	t.Parallel()

	t.Run("long forms", func(t *testing.T) {
		t.Parallel()

		args := []string{
			"--output", "out", "--mode", "document", "--config", "work",
			"--timeout", "2m", "--seed", "42", "--manifest",
			"--mime-policy", "table", "--viewport", "800x1200",
			"--style", "dark", "--template", "default", "--asset-path", "./assets",
			"--fill-ratio", "0.7", "--header-height", "350",
			"--no-highlight", "--phrase", "a", "--phrase", "b",
			"--quiet", "--verbose",
			"avatar.png", "script.txt",
		}

		f, positional, err := parseGenerateFlags(args, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		checks := []struct {
			name string
			got  any
			want any
		}{
			{"output", f.output, "out"},
			{"mode", f.mode, "document"},
			{"config", f.common.config, "work"},
			{"timeout", f.timeout, "2m"},
			{"seed", f.seed, uint64(42)},
			{"manifest", f.manifest, true},
			{"mimePolicy", f.mimePolicy, "table"},
			{"viewport", f.viewport, "800x1200"},
			{"style", f.assets.style, "dark"},
			{"template", f.assets.template, "default"},
			{"assetPath", f.assets.assetPath, "./assets"},
			{"fillRatio", f.layout.fillRatio, 0.7},
			{"headerHeight", f.layout.headerHeight, 350.0},
			{"noHighlight", f.highlight.disabled, true},
			{"quiet", f.common.quiet, true},
			{"verbose", f.common.verbose, true},
		}
		for _, c := range checks {
			if c.got != c.want {
				t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
			}
		}
		if !slices.Equal(f.highlight.phrases, []string{"a", "b"}) {
			t.Errorf("phrases = %v, want [a b]", f.highlight.phrases)
		}
		if !slices.Equal(positional, []string{"avatar.png", "script.txt"}) {
			t.Errorf("positional = %v, want [avatar.png script.txt]", positional)
		}
	})

	t.Run("short forms and interleaved positionals", func(t *testing.T) {
		t.Parallel()

		f, positional, err := parseGenerateFlags(
			[]string{"script.txt", "-o", "cards", "-m", "lines", "-t", "45s", "-c", "cfg.yaml", "-qv"},
			&bytes.Buffer{},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.output != "cards" || f.mode != "lines" || f.timeout != "45s" || f.common.config != "cfg.yaml" {
			t.Errorf("unexpected flags: %+v", f)
		}
		if !f.common.quiet || !f.common.verbose {
			t.Error("-qv should set quiet and verbose")
		}
		if !slices.Equal(positional, []string{"script.txt"}) {
			t.Errorf("positional = %v, want [script.txt]", positional)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		f, positional, err := parseGenerateFlags(nil, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.output != "" || f.mode != "" || f.seed != 0 || f.manifest || f.highlight.disabled {
			t.Errorf("unexpected non-zero defaults: %+v", f)
		}
		if len(positional) != 0 {
			t.Errorf("positional = %v, want none", positional)
		}
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		for _, args := range [][]string{
			{"--unknown"},
			{"--seed", "-1"},
			{"--fill-ratio", "most"},
			{"--output"},
		} {
			if _, _, err := parseGenerateFlags(args, &bytes.Buffer{}); err == nil {
				t.Errorf("parseGenerateFlags(%v) = nil error, want error", args)
			}
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		var stderr bytes.Buffer
		_, _, err := parseGenerateFlags([]string{"--help"}, &stderr)
		if !errors.Is(err, flag.ErrHelp) {
			t.Fatalf("err = %v, want flag.ErrHelp", err)
		}
		if !bytes.Contains(stderr.Bytes(), []byte("Usage: carousel")) {
			t.Errorf("help should print usage, got %q", stderr.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestWantsVerbose - Pre-parse verbose detection
// ---------------------------------------------------------------------------

func TestWantsVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"none", nil, false},
		{"long", []string{"--verbose", "script.txt"}, true},
		{"short", []string{"script.txt", "-v"}, true},
		{"combined", []string{"-qv"}, true},
		{"combined reversed", []string{"-vq"}, true},
		{"quiet only", []string{"-q"}, false},
		{"other short flag", []string{"-o", "v"}, false},
		{"after terminator", []string{"--", "-v"}, false},
		{"value containing v", []string{"--mode", "-verbose"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := wantsVerbose(tt.args); got != tt.want {
				t.Errorf("wantsVerbose(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseViewport - WIDTHxHEIGHT parsing
// ---------------------------------------------------------------------------

func TestParseViewport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    carousel.Viewport
		wantErr error
	}{
		{"750x1334", carousel.Viewport{Width: 750, Height: 1334}, nil},
		{" 825X1467 ", carousel.Viewport{Width: 825, Height: 1467}, nil},
		{"750", carousel.Viewport{}, ErrInvalidViewportFlag},
		{"axb", carousel.Viewport{}, ErrInvalidViewportFlag},
		{"0x100", carousel.Viewport{}, carousel.ErrInvalidViewport},
		{"100x99999", carousel.Viewport{}, carousel.ErrInvalidViewport},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := parseViewport(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("parseViewport(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseViewport(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
