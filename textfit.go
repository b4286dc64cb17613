package builder

import (
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Font fitting bounds. Sizes are CSS pixels; every box reserves a 20px
// padding allowance, matching the fixed boxes in the templates.
const (
	fitMaxFontSize = 200
	fitMinFontSize = 5
	fitBoxPadding  = 20
)

// textFitter shrinks each named text box's content until it fits the
// box's padded bounds.
type textFitter interface {
	Fit(markup string, variant Variant) string
}

// Compile-time interface check.
var _ textFitter = (*measuredFitter)(nil)

// fitFont is the measurement face source, parsed once. The templates
// render with the same sans-serif family, so measured footprints track
// the on-page footprints.
var fitFont = func() *truetype.Font {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		panic("builder: parsing bundled measurement font: " + err.Error())
	}
	return f
}()

// measuredFitter measures text off-screen with a real type face and
// decrements the font size until the footprint fits. Faces are cached per
// size; the cache is owned by the fitter so concurrent services do not
// share faces.
type measuredFitter struct {
	mu    sync.Mutex
	faces map[int]font.Face
}

func newMeasuredFitter() *measuredFitter {
	return &measuredFitter{faces: make(map[int]font.Face)}
}

// Fit applies the fitting rule to every named box of the variant that is
// present in the markup and has inner text. The chosen size is written as
// an inline font-size on the box's text carrier. For identical box
// dimensions and text the result is identical on every run.
func (m *measuredFitter) Fit(markup string, variant Variant) string {
	spec := variantSpecs[variant]

	for _, box := range spec.Boxes {
		text, ok := elementInnerText(markup, box.ID)
		if !ok || text == "" {
			continue
		}

		size := m.fitTextSize(text, box.W-fitBoxPadding, box.H-fitBoxPadding)
		markup, _ = setFitFontSize(markup, box.ID, size)
	}

	return markup
}

// fitTextSize starts at the maximum size and decrements by 1 until both
// the measured width and height fit, or the floor is reached.
func (m *measuredFitter) fitTextSize(text string, maxW, maxH int) int {
	// One scoped measurement context per box, discarded afterwards.
	dc := gg.NewContext(1, 1)

	size := fitMaxFontSize
	for size > fitMinFontSize {
		face := m.face(size)
		dc.SetFontFace(face)

		w, _ := dc.MeasureString(text)
		metrics := face.Metrics()
		h := (metrics.Ascent + metrics.Descent).Ceil()

		if w <= float64(maxW) && h <= maxH {
			break
		}
		size--
	}

	return size
}

// face returns the cached measurement face for a font size.
func (m *measuredFitter) face(size int) font.Face {
	if size < 1 {
		size = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if f, ok := m.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(fitFont, &truetype.Options{Size: float64(size), DPI: 72})
	m.faces[size] = f
	return f
}
