package carousel

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-carousel/internal/fileutil"
	"github.com/alnah/go-carousel/internal/pipeline"
	"github.com/alnah/go-carousel/internal/process"
)

// cardRenderer abstracts the browser so the generator can be tested without one.
type cardRenderer interface {
	pipeline.Measurer

	// LoadLayout opens document at viewport and returns the height of its
	// page element. Later MeasureHeight calls fill that page's content box.
	LoadLayout(ctx context.Context, document string, viewport Viewport) (float64, error)

	// Screenshot renders document at viewport and writes a PNG to outputPath.
	Screenshot(ctx context.Context, document string, viewport Viewport, outputPath string) error

	Close() error
}

// Compile-time interface checks.
var _ cardRenderer = (*rodRenderer)(nil)

// Selectors and scripts shared with the document templates.
const (
	pageSelector    = ".page"
	contentSelector = ".content"

	pageHeightJS    = `function() { return this.clientHeight }`
	contentHeightJS = `function(html) { this.innerHTML = html; return this.offsetHeight }`
)

// rodRenderer drives one headless Chrome tab with go-rod.
// The browser and tab are created on first use and reused until Close.
// Rod downloads Chromium on first run if no browser is found.
type rodRenderer struct {
	timeout  time.Duration
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	viewport Viewport
	content  *rod.Element
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBrowserConnect, err)
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		r.killLauncher()
		return fmt.Errorf("%w: %w", ErrBrowserConnect, err)
	}
	return nil
}

// ensurePage returns the session tab sized to viewport.
func (r *rodRenderer) ensurePage(ctx context.Context, viewport Viewport) (*rod.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	if r.page == nil {
		page, err := r.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPageCreate, err)
		}
		r.page = page
	}

	if r.viewport != viewport {
		err := r.page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             viewport.Width,
			Height:            viewport.Height,
			DeviceScaleFactor: 1,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
		}
		r.viewport = viewport
	}

	return r.page.Context(ctx), nil
}

// waitTimeout returns the time left for a browser step: the context
// deadline when there is one, the configured timeout otherwise.
func (r *rodRenderer) waitTimeout(ctx context.Context) (time.Duration, error) {
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return 0, context.DeadlineExceeded
		}
	}
	return timeout, nil
}

// open writes document to a temp file and navigates the tab to it.
// The returned page is bound to ctx and the step timeout.
func (r *rodRenderer) open(ctx context.Context, document string, viewport Viewport) (*rod.Page, error) {
	page, err := r.ensurePage(ctx, viewport)
	if err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(document, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	timeout, err := r.waitTimeout(ctx)
	if err != nil {
		return nil, err
	}
	page = page.Timeout(timeout)

	// Navigating replaces the document the content element belongs to.
	r.content = nil

	if err := page.Navigate("file://" + tmpPath); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return page, nil
}

// LoadLayout implements cardRenderer.
func (r *rodRenderer) LoadLayout(ctx context.Context, document string, viewport Viewport) (float64, error) {
	page, err := r.open(ctx, document, viewport)
	if err != nil {
		return 0, err
	}

	pageEl, err := page.Element(pageSelector)
	if err != nil {
		return 0, fmt.Errorf("%w: finding %s: %v", ErrPageLoad, pageSelector, err)
	}
	height, err := pageEl.Eval(pageHeightJS)
	if err != nil {
		return 0, fmt.Errorf("%w: reading page height: %v", ErrMeasure, err)
	}

	content, err := page.Element(contentSelector)
	if err != nil {
		return 0, fmt.Errorf("%w: finding %s: %v", ErrPageLoad, contentSelector, err)
	}
	r.content = content

	return height.Value.Num(), nil
}

// MeasureHeight implements pipeline.Measurer. LoadLayout must run first.
func (r *rodRenderer) MeasureHeight(ctx context.Context, fragment string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if r.content == nil {
		return 0, fmt.Errorf("%w: no layout loaded", ErrMeasure)
	}

	res, err := r.content.Context(ctx).Eval(contentHeightJS, fragment)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMeasure, err)
	}
	return res.Value.Num(), nil
}

// Screenshot implements cardRenderer.
func (r *rodRenderer) Screenshot(ctx context.Context, document string, viewport Viewport, outputPath string) error {
	page, err := r.open(ctx, document, viewport)
	if err != nil {
		return err
	}

	png, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScreenshot, err)
	}

	if err := fileutil.WriteFileAtomic(outputPath, png); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// Close releases the tab, the browser and its child processes.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.page = nil
	r.content = nil
	r.viewport = Viewport{}
	r.killLauncher()
	return err
}

// killLauncher stops the Chrome process tree started by ensureBrowser.
func (r *rodRenderer) killLauncher() {
	if r.launcher == nil {
		return
	}
	process.KillProcessGroup(r.launcher.PID())
	r.launcher.Kill()
	r.launcher.Cleanup()
	r.launcher = nil
}
