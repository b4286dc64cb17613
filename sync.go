package builder

import (
	"time"

	"github.com/go-rod/rod"
)

// Wait budgets for the settle steps between DOM mutation and capture.
// None of these waits can fail: a timeout degrades to best effort so a
// stuck page never blocks the export indefinitely.
const (
	captureWaitTimeout = 6 * time.Second
	imageWaitTimeout   = 4 * time.Second
	frameWaitTimeout   = 2 * time.Second

	// Frames to let layout and paint stabilize: after mounting, and again
	// after the container is forced visible for capture.
	mountSettleFrames   = 3
	captureSettleFrames = 4
)

// imagesSettledJS resolves once every <img> has either completed loading
// or failed; a failed image still counts as settled.
const imagesSettledJS = `() => Promise.all(
	Array.from(document.images).map(img =>
		img.complete
			? Promise.resolve()
			: new Promise(resolve => { img.onload = img.onerror = resolve; })
	)
)`

// renderFramesJS resolves after n animation-frame callbacks.
const renderFramesJS = `n => new Promise(resolve => {
	const step = () => { if (n-- <= 0) resolve(); else requestAnimationFrame(step); };
	requestAnimationFrame(step);
})`

// waitForElement polls once per animation frame until a matching element
// exists or the timeout elapses. Returns the element and whether it was
// found; it never fails.
func waitForElement(page *rod.Page, selector string, timeout time.Duration) (*rod.Element, bool) {
	deadline := time.Now().Add(timeout)
	for {
		has, el, err := page.Has(selector)
		if err == nil && has {
			return el, true
		}
		if time.Now().After(deadline) {
			return nil, false
		}
		waitForRenderFrames(page, 1)
	}
}

// waitForImagesToLoad blocks until every image in the page has settled,
// or the timeout elapses.
func waitForImagesToLoad(page *rod.Page) {
	_, _ = page.Timeout(imageWaitTimeout).Eval(imagesSettledJS)
}

// waitForRenderFrames lets n animation frames elapse so layout and paint
// stabilize before measurement or capture.
func waitForRenderFrames(page *rod.Page, frames int) {
	_, err := page.Timeout(frameWaitTimeout).Eval(renderFramesJS, frames)
	if err != nil {
		// rAF may not fire on throttled headless pages; a frame-paced
		// sleep keeps the wait settling instead of spinning.
		time.Sleep(time.Duration(frames) * 16 * time.Millisecond)
	}
}
