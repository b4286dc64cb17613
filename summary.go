package builder

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"
)

// SummaryFilename is the fixed name of the listing summary document.
const SummaryFilename = "AuctionInc_Property_Summary.docx"

// Run sizes in half-points: bold 14pt labels, 12pt values.
const (
	summaryLabelSize = "28"
	summaryValueSize = "24"
)

// summaryBuilder packages the listing details into a document artifact,
// independent of the raster pipeline.
type summaryBuilder interface {
	Build(form FormData) ([]byte, error)
}

// Compile-time interface check.
var _ summaryBuilder = (*docxSummaryBuilder)(nil)

// summaryField is one labeled line of the summary document.
type summaryField struct {
	Label string
	Value string
}

// summaryFields returns the document's fields in their fixed order. The
// combined date/time string uses the same formatting rule as the form.
func summaryFields(form FormData) []summaryField {
	return []summaryField{
		{"Headline", form.Headline},
		{"City", form.City},
		{"Suburb", form.Suburb},
		{"Tagline 1", form.Tag1},
		{"Tagline 2", form.Tag2},
		{"Date & Time", FormatAuctionDate(form.AuctionDate, form.AuctionTime)},
		{"Feature 1", form.Feat1},
		{"Feature 2", form.Feat2},
		{"Feature 3", form.Feat3},
	}
}

// docxSummaryBuilder writes the summary as a Word document: one paragraph
// per field, with a bold label run and a plain value run.
type docxSummaryBuilder struct{}

// Build packages the summary document and returns its bytes.
func (docxSummaryBuilder) Build(form FormData) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	for _, field := range summaryFields(form) {
		para := doc.AddParagraph()
		para.AddText(field.Label + ": ").Size(summaryLabelSize).Bold()
		para.AddText(field.Value).Size(summaryValueSize)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSummaryBuild, err)
	}

	return buf.Bytes(), nil
}
