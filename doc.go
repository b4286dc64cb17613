// Package builder generates auction marketing assets from a property
// listing: a social post, a newsletter header, and an on-site flyer, each
// rendered from an HTML template into a downloadable JPEG, plus a Word
// summary document of the listing details.
//
// The pipeline mirrors the on-page generator it replaces: the listing form
// snapshot is substituted into a variant template, the property photo is
// composited onto the variant's photo panel with a cover-fit rule (the
// social variant adds a red corner tag painted after the photo), oversized
// text is shrunk until it fits its fixed boxes, and the settled page is
// captured with headless Chrome at 2x scale.
//
// Basic usage:
//
//	svc := builder.New()
//	defer svc.Close()
//
//	art, err := svc.Export(ctx, builder.VariantFlyer, form)
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.WriteFile(art.Filename, art.Data, 0o644)
//
// Chrome is only needed for Export; GeneratePreview and Summary run
// without a browser.
package builder
