package builder

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	qrcode "github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"

	"github.com/SpkEazy/Auction-Onsite-Builder/internal/assets"
)

// photoCompositor draws the normalized photo (and variant decorations)
// onto the variant's photo panel inside mounted markup.
type photoCompositor interface {
	Compose(markup string, variant Variant, form FormData) string
}

// Compile-time interface check.
var _ photoCompositor = (*panelCompositor)(nil)

// Flyer QR badge geometry in panel pixels.
const (
	qrBadgeSize   = 140
	qrBadgeMargin = 24
)

// panelCompositor renders photo panels in-process and injects the result
// as the panel image's source.
type panelCompositor struct {
	loader assets.Loader
	fitter *measuredFitter // face source for the procedural overlay text
}

func newPanelCompositor(loader assets.Loader, fitter *measuredFitter) *panelCompositor {
	return &panelCompositor{loader: loader, fitter: fitter}
}

// Compose draws the photo onto the variant's panel with a cover-fit rule
// and injects the composited bitmap into the markup. It is a no-op when
// the markup has no matching panel or the photo payload is empty, and it
// tolerates any decode failure by leaving the panel untouched: a bad
// photo must never hang or fail the export.
func (c *panelCompositor) Compose(markup string, variant Variant, form FormData) string {
	spec := variantSpecs[variant]

	if form.PropertyImage == "" {
		return markup
	}
	if tag, _, _, ok := findTagWithID(markup, spec.PanelID); !ok || tag != "img" {
		return markup
	}

	photo := decodeImagePayload(form.PropertyImage)
	if photo == nil {
		return markup
	}

	panel := image.NewRGBA(image.Rect(0, 0, spec.PanelW, spec.PanelH))
	drawCoverFit(panel, photo)

	// The overlay is painted strictly after the photo so it is never
	// occluded.
	if spec.Overlay != nil {
		c.drawOverlay(panel, spec.Overlay)
	}

	if spec.QR && form.ListingURL != "" {
		drawQRBadge(panel, form.ListingURL)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, panel); err != nil {
		return markup
	}

	markup, _ = setImgSrc(markup, spec.PanelID, dataURI("image/png", buf.Bytes()))
	return markup
}

// decodeImagePayload decodes a data-URI photo payload, returning nil on
// any failure.
func decodeImagePayload(payload string) image.Image {
	raw := decodeDataURI(payload)
	if raw == nil {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil
	}
	return img
}

// drawCoverFit scales the photo so it fully covers the panel
// (scale = max(panelW/imgW, panelH/imgH)) and centers it; overflow is
// cropped by the panel bounds.
func drawCoverFit(panel *image.RGBA, photo image.Image) {
	pb := panel.Bounds()
	ib := photo.Bounds()
	cw, ch := float64(pb.Dx()), float64(pb.Dy())
	iw, ih := float64(ib.Dx()), float64(ib.Dy())
	if iw == 0 || ih == 0 {
		return
	}

	scale := math.Max(cw/iw, ch/ih)
	dw := iw * scale
	dh := ih * scale
	x := (cw - dw) / 2
	y := (ch - dh) / 2

	dst := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+dw)), int(math.Round(y+dh)),
	)
	xdraw.CatmullRom.Scale(panel, dst, photo, ib, xdraw.Over, nil)
}

// drawOverlay paints the red tag after the photo, with its geometry
// expressed in the 1130-unit design space and scaled by the actual panel
// width.
func (c *panelCompositor) drawOverlay(panel *image.RGBA, ov *overlaySpec) {
	overlay := c.loadOverlayImage(ov)
	if overlay == nil {
		return
	}

	sf := float64(panel.Bounds().Dx()) / 1130

	w := int(math.Round(ov.W * sf))
	h := int(math.Round(ov.H * sf))
	x := int(math.Round((ov.X + ov.NudgeX) * sf))
	y := int(math.Round((ov.Y + ov.NudgeY) * sf))
	if w <= 0 || h <= 0 {
		return
	}

	scaled := imaging.Resize(overlay, w, h, imaging.Lanczos)
	alpha := image.NewUniform(color.Alpha{A: uint8(math.Round(ov.Alpha * 255))})
	rect := image.Rect(x, y, x+w, y+h)
	xdraw.DrawMask(panel, rect, scaled, scaled.Bounds().Min, alpha, image.Point{}, xdraw.Over)
}

// loadOverlayImage fetches the overlay asset, falling back to a drawn tag
// so the social export never loses its tag to a missing file.
func (c *panelCompositor) loadOverlayImage(ov *overlaySpec) image.Image {
	if data, err := c.loader.LoadImage(ov.Asset + ".png"); err == nil {
		if img, _, decErr := image.Decode(bytes.NewReader(data)); decErr == nil {
			return img
		}
	}
	return c.drawFallbackTag(int(ov.W), int(ov.H))
}

// drawFallbackTag renders the built-in red auction tag: a rounded red
// ribbon with white caption text.
func (c *panelCompositor) drawFallbackTag(w, h int) image.Image {
	dc := gg.NewContext(w, h)

	dc.SetHexColor("#c8102e")
	ribbonTop := float64(h) * 0.18
	ribbonH := float64(h) * 0.5
	dc.DrawRoundedRectangle(0, ribbonTop, float64(w), ribbonH, float64(h)*0.04)
	dc.Fill()

	dc.SetFontFace(c.fitter.face(h / 6))
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored("ON AUCTION", float64(w)/2, ribbonTop+ribbonH/2, 0.5, 0.5)

	return dc.Image()
}

// drawQRBadge paints a listing-URL QR code in the bottom-right corner of
// the panel, on a white plate so it stays scannable over the photo.
// Encoding failures skip the badge.
func drawQRBadge(panel *image.RGBA, url string) {
	qr, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return
	}
	badge := qr.Image(qrBadgeSize)

	pb := panel.Bounds()
	x := pb.Max.X - qrBadgeMargin - qrBadgeSize
	y := pb.Max.Y - qrBadgeMargin - qrBadgeSize
	rect := image.Rect(x, y, x+qrBadgeSize, y+qrBadgeSize)
	xdraw.Draw(panel, rect, badge, badge.Bounds().Min, xdraw.Over)
}
