package builder

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/SpkEazy/Auction-Onsite-Builder/internal/fileutil"
)

// rasterExporter abstracts markup-to-JPEG capture to allow different
// backends (tests inject a fake).
type rasterExporter interface {
	Render(ctx context.Context, markup string) ([]byte, error)
	Close() error
}

// pageRenderer abstracts capture from an HTML file to enable testing
// without a browser.
type pageRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
}

// Compile-time interface checks.
var (
	_ rasterExporter = (*chromeExporter)(nil)
	_ pageRenderer   = (*rodRenderer)(nil)
)

// Capture parameters: 2x device scale, JPEG at fixed quality, white page
// background.
const (
	captureScale       = 2.0
	captureJPEGQuality = 92
	viewportWidth      = 1600
	viewportHeight     = 1400
)

// forceVisibleJS lifts the capture container out of its hidden staging
// state so it has real layout for the screenshot.
const forceVisibleJS = `() => {
	const s = this.style;
	s.display = 'block';
	s.visibility = 'visible';
	s.opacity = '1';
	s.pointerEvents = 'auto';
	s.position = 'static';
}`

// restoreStagingJS hides the container again after capture.
const restoreStagingJS = `() => {
	const s = this.style;
	s.display = 'none';
	s.position = 'absolute';
	s.opacity = '0';
	s.pointerEvents = 'none';
}`

// containerSizeJS reports the container's layout size.
const containerSizeJS = `() => [this.offsetWidth, this.offsetHeight]`

// rodRenderer captures page elements using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
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
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderFromFile opens a local HTML file in headless Chrome, waits for the
// page to settle, and captures the capture container as a JPEG.
// The container is restored to its hidden staging state whether or not
// the capture succeeds.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := r.prepareViewport(page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	waitForImagesToLoad(page)
	waitForRenderFrames(page, mountSettleFrames)

	container, found := waitForElement(page, captureSelector, captureWaitTimeout)
	if !found {
		return nil, fmt.Errorf("%w: no capture container in page", ErrContainerNotRendered)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Cleanup must run in the failure path too, so a failed export never
	// leaves the container visible and intercepting input.
	_, _ = container.Eval(forceVisibleJS)
	defer func() { _, _ = container.Eval(restoreStagingJS) }()

	w, h := containerSize(container)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: container has zero size", ErrContainerNotRendered)
	}

	waitForImagesToLoad(page)
	waitForRenderFrames(page, captureSettleFrames)

	bin, err := container.Screenshot(proto.PageCaptureScreenshotFormatJpeg, captureJPEGQuality)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	return bin, nil
}

// prepareViewport applies the 2x capture scale and white background.
func (r *rodRenderer) prepareViewport(page *rod.Page) error {
	metrics := &proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: captureScale,
		Mobile:            false,
	}
	if err := metrics.Call(page); err != nil {
		return err
	}

	// Alpha is left unset; the protocol default is opaque.
	bg := &proto.EmulationSetDefaultBackgroundColorOverride{
		Color: &proto.DOMRGBA{R: 255, G: 255, B: 255},
	}
	return bg.Call(page)
}

// containerSize reads the container's layout size, degrading to zero on
// evaluation failure.
func containerSize(el *rod.Element) (int, int) {
	obj, err := el.Eval(containerSizeJS)
	if err != nil {
		return 0, 0
	}
	arr := obj.Value.Arr()
	if len(arr) != 2 {
		return 0, 0
	}
	return arr[0].Int(), arr[1].Int()
}

// chromeExporter renders mounted markup to a JPEG via headless Chrome,
// handing the markup to the browser through a temp file.
type chromeExporter struct {
	renderer *rodRenderer
}

// newChromeExporter creates a chromeExporter with a production renderer.
func newChromeExporter(timeout time.Duration) *chromeExporter {
	return &chromeExporter{renderer: newRodRenderer(timeout)}
}

// Render captures the markup's capture container as JPEG bytes.
func (c *chromeExporter) Render(ctx context.Context, markup string) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(markup, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath)
}

// Close releases browser resources.
func (c *chromeExporter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
