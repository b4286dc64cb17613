package builder

import (
	"fmt"
	"strings"
	"time"
)

// Variant selects which marketing asset the pipeline produces.
type Variant string

// Template variants.
const (
	VariantSocial     Variant = "social"
	VariantNewsletter Variant = "newsletter"
	VariantFlyer      Variant = "flyer"
)

// ParseVariant converts a user-supplied name to a Variant
// (case-insensitive). Returns ErrUnknownVariant for anything else.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(s)) {
	case VariantSocial:
		return VariantSocial, nil
	case VariantNewsletter:
		return VariantNewsletter, nil
	case VariantFlyer:
		return VariantFlyer, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// FormData is the listing snapshot collected from the form. It is passed
// by value through the pipeline; every field defaults to the empty string,
// and PropertyImage is empty when no photo was chosen or the upload was
// rejected.
type FormData struct {
	Headline     string
	Subheadline  string
	Subheadline2 string
	City         string
	Suburb       string
	Tag1         string
	Tag2         string
	AuctionDate  string // raw form value, YYYY-MM-DD
	AuctionTime  string // raw form value, HH:MM
	Address      string
	Feat1        string
	Feat2        string
	Feat3        string
	BrokerID     string

	// Description is optional markdown rendered into the newsletter body.
	Description string

	// ListingURL, when set, is encoded as a QR badge on the flyer photo.
	ListingURL string

	// PropertyImage is the normalized photo as a data URI.
	PropertyImage string
}

// tokens returns the placeholder substitution map for this snapshot.
// The broker contact fields are derived from the directory; descriptionHTML
// is the pre-rendered markdown body (may be empty).
func (f FormData) tokens(rec BrokerRecord, descriptionHTML string) map[string]string {
	return map[string]string{
		"headline":     f.Headline,
		"subheadline":  f.Subheadline,
		"subheadline2": f.Subheadline2,
		"city":         f.City,
		"suburb":       f.Suburb,
		"tag1":         f.Tag1,
		"tag2":         f.Tag2,
		"date":         FormatAuctionDate(f.AuctionDate, f.AuctionTime),
		"time":         f.AuctionTime,
		"address":      f.Address,
		"feat1":        f.Feat1,
		"feat2":        f.Feat2,
		"feat3":        f.Feat3,
		"brokerName":   rec.Name,
		"brokerPhone":  rec.Phone,
		"brokerEmail":  rec.Email,
		"description":  descriptionHTML,
	}
}

// ExportArtifact is a finished download: the encoded bytes plus the fixed
// filename for the variant or document.
type ExportArtifact struct {
	Filename string
	Data     []byte
}

// boxSpec names a fixed-size text box that participates in font fitting.
// Width and height are the box's CSS pixel dimensions in the template.
type boxSpec struct {
	ID string
	W  int
	H  int
}

// overlaySpec describes the social red tag in the 1130-unit design space
// of the photo panel. Geometry is scaled by panelWidth/1130 at draw time.
type overlaySpec struct {
	Asset  string  // asset name under images/
	Alpha  float64 // draw opacity
	W, H   float64 // design units
	X, Y   float64 // design units, before nudge
	NudgeX float64 // manual adjustment, design units
	NudgeY float64
}

// variantSpec is the static layout contract for one template variant.
type variantSpec struct {
	Template string // asset name of the markup
	Slot     string // mount point id in the page shell
	PanelID  string // photo panel element id
	PanelW   int
	PanelH   int
	Filename string
	Boxes    []boxSpec
	Overlay  *overlaySpec
	Broker   bool // broker contact/photo substitution applies
	QR       bool // listing-URL QR badge applies
}

// Red tag placement. The tag sits at the top-right of the 1130-unit
// photo panel, nudged right by 60 units.
const (
	socialRedTagAlpha  = 0.96
	socialRedTagNudgeX = 60
	socialRedTagNudgeY = 0
)

// variantSpecs is the immutable layout table for all variants. Box sizes
// must match the fixed text-box dimensions in the embedded templates.
var variantSpecs = map[Variant]variantSpec{
	VariantSocial: {
		Template: "social",
		Slot:     "social-preview",
		PanelID:  "social-property-canvas",
		PanelW:   1130,
		PanelH:   1130,
		Filename: "social.jpg",
		Boxes: []boxSpec{
			{ID: "textbox_1_Red_Tag", W: 300, H: 120},
			{ID: "textbox_2_Red_Tag", W: 300, H: 90},
			{ID: "textbox_Red_Rectangle", W: 1030, H: 140},
			{ID: "textbox_Header_2", W: 1030, H: 160},
		},
		Overlay: &overlaySpec{
			Asset:  "red-tag",
			Alpha:  socialRedTagAlpha,
			W:      490,
			H:      462,
			X:      718 - 40,
			Y:      0,
			NudgeX: socialRedTagNudgeX,
			NudgeY: socialRedTagNudgeY,
		},
	},
	VariantNewsletter: {
		Template: "newsletter",
		Slot:     "newsletter-preview",
		PanelID:  "property-canvas",
		PanelW:   760,
		PanelH:   560,
		Filename: "newsletter.jpg",
		Boxes: []boxSpec{
			{ID: "textbox_1_Red_Tag", W: 260, H: 100},
			{ID: "textbox_2_Red_Tag", W: 260, H: 80},
			{ID: "textbox_Property_Heading", W: 700, H: 120},
		},
		Broker: true,
	},
	VariantFlyer: {
		Template: "flyer",
		Slot:     "flyer-preview",
		PanelID:  "flyer-property-canvas",
		PanelW:   1000,
		PanelH:   700,
		Filename: "flyer.jpg",
		Boxes: []boxSpec{
			{ID: "textbox_1_Red_Banner", W: 420, H: 110},
			{ID: "textbox_2_Red_Banner", W: 420, H: 90},
			{ID: "textbox_Feature_1", W: 300, H: 70},
			{ID: "textbox_Feature_2", W: 300, H: 70},
			{ID: "textbox_Feature_3", W: 300, H: 70},
			{ID: "textbox_1_Blue_Overlay", W: 360, H: 80},
			{ID: "textbox_2_Blue_Overlay", W: 360, H: 80},
			{ID: "textbox_3_Blue_Overlay", W: 360, H: 80},
			{ID: "DATE", W: 480, H: 70},
			{ID: "ADDRESS", W: 760, H: 70},
		},
		Broker: true,
		QR:     true,
	},
}

// captureSelector matches the capture-root element every variant template
// exposes.
const captureSelector = `[id^="capture-container"]`

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout  time.Duration
	assetDir string
}

// defaultTimeout bounds a single export, including browser startup.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the export timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("builder: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithAssetDir points the service at a custom asset directory containing
// templates/, images/ and brokers/ overrides. Embedded defaults are used
// for anything the directory does not provide. An invalid directory
// surfaces as ErrInvalidAssetPath on the first operation that needs it.
func WithAssetDir(dir string) Option {
	return func(s *Service) {
		s.cfg.assetDir = dir
	}
}
