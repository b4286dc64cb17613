package builder

import (
	"strings"
	"testing"

	"github.com/fogleman/gg"
)

func TestFitTextSizeWithinBounds(t *testing.T) {
	t.Parallel()

	fitter := newMeasuredFitter()
	text := "ON AUCTION: 12 BEDROOM ESTATE WITH VINEYARD AND STABLES"

	size := fitter.fitTextSize(text, 280, 100)
	if size < fitMinFontSize || size > fitMaxFontSize {
		t.Fatalf("fitTextSize() = %d, outside [%d, %d]", size, fitMinFontSize, fitMaxFontSize)
	}

	// The chosen size must actually fit, unless the floor stopped the
	// search first.
	if size > fitMinFontSize {
		dc := gg.NewContext(1, 1)
		face := fitter.face(size)
		dc.SetFontFace(face)

		w, _ := dc.MeasureString(text)
		metrics := face.Metrics()
		h := (metrics.Ascent + metrics.Descent).Ceil()
		if w > 280 || h > 100 {
			t.Errorf("size %d measures %gx%d, exceeds 280x100", size, w, h)
		}
	}
}

func TestFitTextSizeShorterTextFitsLarger(t *testing.T) {
	t.Parallel()

	fitter := newMeasuredFitter()

	long := fitter.fitTextSize("EXCEPTIONAL FIVE BEDROOM FAMILY RESIDENCE", 280, 100)
	short := fitter.fitTextSize("SOLD", 280, 100)
	if short < long {
		t.Errorf("short text fit = %d, long text fit = %d; want short >= long", short, long)
	}
}

func TestFitTextSizeWiderBoxFitsLarger(t *testing.T) {
	t.Parallel()

	fitter := newMeasuredFitter()
	text := "AUCTION THIS SATURDAY"

	narrow := fitter.fitTextSize(text, 200, 50)
	wide := fitter.fitTextSize(text, 400, 100)
	if wide < narrow {
		t.Errorf("wide box fit = %d, narrow box fit = %d; want wide >= narrow", wide, narrow)
	}
}

func TestFitTextSizeFloor(t *testing.T) {
	t.Parallel()

	fitter := newMeasuredFitter()

	got := fitter.fitTextSize(strings.Repeat("UNREASONABLY LONG HEADLINE ", 20), 30, 8)
	if got != fitMinFontSize {
		t.Errorf("fitTextSize() = %d, want floor %d", got, fitMinFontSize)
	}
}

func TestFitDeterministic(t *testing.T) {
	t.Parallel()

	markup := `<div id="textbox_1_Red_Tag"><span class="fit">ON AUCTION</span></div>` +
		`<div id="textbox_2_Red_Tag"><span class="fit">NO RESERVE</span></div>`

	first := newMeasuredFitter().Fit(markup, VariantSocial)
	second := newMeasuredFitter().Fit(markup, VariantSocial)
	if first != second {
		t.Errorf("Fit() not deterministic:\n%q\n%q", first, second)
	}
	if !strings.Contains(first, "font-size:") {
		t.Errorf("Fit() did not write an inline size: %q", first)
	}
}

func TestFitSkipsMissingAndEmptyBoxes(t *testing.T) {
	t.Parallel()

	markup := `<div id="textbox_1_Red_Tag"><span class="fit"></span></div>` +
		`<div id="unrelated"><span class="fit">KEEP</span></div>`

	got := newMeasuredFitter().Fit(markup, VariantSocial)
	if got != markup {
		t.Errorf("Fit() = %q, want unchanged markup", got)
	}
}

func TestFaceCacheReusesFaces(t *testing.T) {
	t.Parallel()

	fitter := newMeasuredFitter()
	if fitter.face(24) != fitter.face(24) {
		t.Error("face(24) not cached")
	}
	if fitter.face(0) == nil {
		t.Error("face(0) clamped size returned nil")
	}
}
