package pipeline

import (
	"context"
	"errors"
	"fmt"
)

// ErrMeasure indicates a fragment height could not be measured.
var ErrMeasure = errors.New("measuring fragment height failed")

// Layout budget defaults, in CSS pixels.
const (
	DefaultFillRatio    = 0.8
	DefaultHeaderHeight = 400
	DefaultPagePadding  = 100
)

// Measurer reports the rendered height of a body fragment placed in the
// page's content area.
type Measurer interface {
	MeasureHeight(ctx context.Context, fragment string) (float64, error)
}

// Layout holds the vertical budget used to close pages.
type Layout struct {
	// CanvasHeight is the measured height of an empty page.
	CanvasHeight float64

	// HeaderHeight is reserved for the cover header on the first page.
	HeaderHeight float64

	// Padding is reserved on every other page.
	Padding float64

	// FillRatio is the fraction of the remaining height that body may fill.
	FillRatio float64
}

// DefaultLayout returns a Layout for the given canvas height.
func DefaultLayout(canvasHeight float64) Layout {
	return Layout{
		CanvasHeight: canvasHeight,
		HeaderHeight: DefaultHeaderHeight,
		Padding:      DefaultPagePadding,
		FillRatio:    DefaultFillRatio,
	}
}

// Threshold returns the body height a page must stay under.
func (l Layout) Threshold(first bool) float64 {
	if first {
		return (l.CanvasHeight - l.HeaderHeight) * l.FillRatio
	}
	return (l.CanvasHeight - l.Padding) * l.FillRatio
}

// Page is a closed group of paragraphs. Ordinals start at 1.
type Page struct {
	Ordinal  int
	IsFirst  bool
	Fragment string

	// Paragraphs counts the paragraphs in Fragment.
	Paragraphs int
}

// Paginator groups paragraph markup into pages using measured heights.
type Paginator struct {
	measurer Measurer
	layout   Layout
}

// NewPaginator creates a Paginator measuring with m.
func NewPaginator(m Measurer, layout Layout) *Paginator {
	return &Paginator{measurer: m, layout: layout}
}

// packState carries the pagination fold from one paragraph to the next.
type packState struct {
	pages []Page
	acc   string
	count int
	first bool
}

// Paginate assigns every paragraph to exactly one page, in order.
// The first page is always produced, even with no paragraphs, since it
// carries the cover header. A paragraph taller than an empty page's budget
// gets a page of its own.
func (p *Paginator) Paginate(ctx context.Context, paragraphs []string) ([]Page, error) {
	st := packState{first: true}
	for i, para := range paragraphs {
		next, err := p.step(ctx, st, para)
		if err != nil {
			return nil, fmt.Errorf("paragraph %d: %w", i+1, err)
		}
		st = next
	}
	return st.flush(), nil
}

// step places one paragraph and returns the next state.
func (p *Paginator) step(ctx context.Context, st packState, para string) (packState, error) {
	if err := ctx.Err(); err != nil {
		return st, err
	}

	candidate := st.acc + para
	height, err := p.measurer.MeasureHeight(ctx, candidate)
	if err != nil {
		return st, fmt.Errorf("%w: %w", ErrMeasure, err)
	}

	if height < p.layout.Threshold(st.first) {
		st.acc = candidate
		st.count++
		return st, nil
	}

	// The paragraph opens the next page unmeasured, so one taller than a
	// whole page still lands somewhere and is closed by the next overflow.
	st = st.closePage()
	st.acc = para
	st.count = 1
	return st, nil
}

func (s packState) closePage() packState {
	s.pages = append(s.pages, Page{
		Ordinal:    len(s.pages) + 1,
		IsFirst:    s.first,
		Fragment:   s.acc,
		Paragraphs: s.count,
	})
	s.acc = ""
	s.count = 0
	s.first = false
	return s
}

func (s packState) flush() []Page {
	if s.first || s.count > 0 {
		s = s.closePage()
	}
	return s.pages
}
