package carousel

import (
	"errors"
	"testing"

	"github.com/alnah/go-carousel/internal/pipeline"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Mode
		wantErr error
	}{
		{input: "", want: ModeLines},
		{input: "lines", want: ModeLines},
		{input: " Document ", want: ModeDocument},
		{input: "LINES", want: ModeLines},
		{input: "grid", wantErr: ErrInvalidMode},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseMode(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseMode(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultViewport(t *testing.T) {
	t.Parallel()

	if got := DefaultViewport(ModeLines); got != (Viewport{Width: 750, Height: 1334}) {
		t.Errorf("DefaultViewport(lines) = %+v", got)
	}
	if got := DefaultViewport(ModeDocument); got != (Viewport{Width: 825, Height: 1467}) {
		t.Errorf("DefaultViewport(document) = %+v", got)
	}
}

func TestViewport_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		vp      Viewport
		wantErr bool
	}{
		{name: "default", vp: DefaultViewport(ModeLines)},
		{name: "max", vp: Viewport{Width: MaxViewportSide, Height: MaxViewportSide}},
		{name: "zero width", vp: Viewport{Height: 10}, wantErr: true},
		{name: "negative height", vp: Viewport{Width: 10, Height: -1}, wantErr: true},
		{name: "too wide", vp: Viewport{Width: MaxViewportSide + 1, Height: 10}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.vp.Validate()
			if tt.wantErr != errors.Is(err, ErrInvalidViewport) {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMIMEPolicy(t *testing.T) {
	t.Parallel()

	if err := MIMEPolicy("sniff").Validate(); !errors.Is(err, ErrInvalidMIMEPolicy) {
		t.Errorf("Validate(sniff) error = %v", err)
	}

	tests := []struct {
		policy MIMEPolicy
		mode   Mode
		want   MIMEPolicy
	}{
		{policy: MIMEAuto, mode: ModeLines, want: MIMETable},
		{policy: MIMEAuto, mode: ModeDocument, want: MIMEExtension},
		{policy: MIMETable, mode: ModeDocument, want: MIMETable},
		{policy: MIMEExtension, mode: ModeLines, want: MIMEExtension},
	}
	for _, tt := range tests {
		if got := tt.policy.resolve(tt.mode); got != tt.want {
			t.Errorf("%q.resolve(%s) = %q, want %q", tt.policy, tt.mode, got, tt.want)
		}
	}
}

func TestLayout(t *testing.T) {
	t.Parallel()

	t.Run("zero value takes defaults", func(t *testing.T) {
		t.Parallel()

		got := Layout{}.toPipeline(1467)
		if got != pipeline.DefaultLayout(1467) {
			t.Errorf("toPipeline() = %+v, want defaults", got)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Parallel()

		got := Layout{HeaderHeight: 300, Padding: 50, FillRatio: 0.9}.toPipeline(1000)
		want := pipeline.Layout{CanvasHeight: 1000, HeaderHeight: 300, Padding: 50, FillRatio: 0.9}
		if got != want {
			t.Errorf("toPipeline() = %+v, want %+v", got, want)
		}
	})

	t.Run("validate", func(t *testing.T) {
		t.Parallel()

		for _, l := range []Layout{{HeaderHeight: -1}, {Padding: -1}, {FillRatio: 1.01}, {FillRatio: -0.5}} {
			if err := l.Validate(); !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("Validate(%+v) error = %v, want ErrInvalidLayout", l, err)
			}
		}
		if err := (Layout{FillRatio: 1}).Validate(); err != nil {
			t.Errorf("Validate(FillRatio 1) error = %v", err)
		}
	})
}

func TestDefaultHighlight(t *testing.T) {
	t.Parallel()

	h := DefaultHighlight()
	if !h.Heuristic || !h.VerbNoun || h.MaxPhrases != 3 {
		t.Errorf("DefaultHighlight() = %+v", h)
	}
	opts := h.toPipeline()
	if len(opts.ExcludingTriggers) != 2 || len(opts.IncludingTriggers) != 6 || len(opts.Phrases) != 2 {
		t.Errorf("toPipeline() lost rules: %+v", opts)
	}
}

func TestTaggerAdapter(t *testing.T) {
	t.Parallel()

	pub := &fakeTagger{tokens: []Token{{Word: "分析", Tag: "v"}}}
	got := taggerAdapter{pub: pub}.Tag("分析")
	if len(got) != 1 || got[0] != (pipeline.Token{Word: "分析", Tag: "v"}) {
		t.Errorf("Tag() = %+v", got)
	}
}

func TestResult_Empty(t *testing.T) {
	t.Parallel()

	var nilResult *Result
	if !nilResult.Empty() || !(&Result{}).Empty() {
		t.Error("nil and zero results should be empty")
	}
	if (&Result{Pages: []PageResult{{Ordinal: 1}}}).Empty() {
		t.Error("result with pages should not be empty")
	}
}
