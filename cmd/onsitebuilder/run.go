package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	builder "github.com/SpkEazy/Auction-Onsite-Builder"
)

// allVariants is the export-all order; output filenames are fixed per
// variant, so order only affects progress output.
var allVariants = []builder.Variant{
	builder.VariantSocial,
	builder.VariantNewsletter,
	builder.VariantFlyer,
}

// run dispatches the parsed command. errOut receives warnings and
// progress; artifacts go to the output directory.
func run(ctx context.Context, flags *cliFlags, errOut io.Writer) error {
	if flags.version {
		fmt.Fprintln(errOut, "onsitebuilder "+Version)
		return nil
	}

	listing, err := loadListing(flags.listing)
	if err != nil {
		return err
	}
	form := listing.FormData()

	if flags.command == cmdSummary {
		// The summary document needs no browser and no photo.
		svc := builder.New(serviceOptions(flags)...)
		defer svc.Close()
		return writeSummary(svc, form, flags.outDir)
	}

	if flags.command == cmdExportAll {
		return runExportAll(ctx, flags, form, errOut)
	}

	variant, err := builder.ParseVariant(flags.variant)
	if err != nil {
		return err
	}

	svc := builder.New(serviceOptions(flags)...)
	defer svc.Close()

	form.PropertyImage = normalizePhoto(svc, flags.photo, errOut)

	switch flags.command {
	case cmdPreview:
		return writePreview(ctx, svc, variant, form, flags.outDir)
	case cmdExport:
		return writeExport(ctx, svc, variant, form, flags.outDir, flags.verbose, errOut)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, flags.command)
	}
}

// serviceOptions maps CLI flags onto service options.
func serviceOptions(flags *cliFlags) []builder.Option {
	opts := []builder.Option{builder.WithTimeout(flags.timeout)}
	if flags.assets != "" {
		opts = append(opts, builder.WithAssetDir(flags.assets))
	}
	return opts
}

// normalizePhoto reads and normalizes the photo file, degrading to an
// empty payload with a warning: a missing or oversized photo must not
// abort the export.
func normalizePhoto(svc *builder.Service, path string, errOut io.Writer) string {
	if path == "" {
		return ""
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "warning: cannot read photo %s: %v; continuing without a photo\n", path, err)
		return ""
	}

	payload, err := svc.NormalizePhoto(data)
	if errors.Is(err, builder.ErrPhotoTooLarge) {
		fmt.Fprintln(errOut, "warning: please use an image under 8MB; continuing without a photo")
		return ""
	}
	if err != nil {
		fmt.Fprintf(errOut, "warning: %v; continuing without a photo\n", err)
		return ""
	}
	return payload
}

// writePreview renders the variant's markup and writes it next to the
// JPEG artifacts as <variant>-preview.html.
func writePreview(ctx context.Context, svc *builder.Service, variant builder.Variant, form builder.FormData, outDir string) error {
	markup, err := svc.GeneratePreview(ctx, variant, form)
	if err != nil {
		return err
	}

	name := string(variant) + "-preview.html"
	return writeArtifact(outDir, name, []byte(markup))
}

// writeExport captures the variant and writes its JPEG artifact.
func writeExport(ctx context.Context, svc *builder.Service, variant builder.Variant, form builder.FormData, outDir string, verbose bool, errOut io.Writer) error {
	if verbose {
		fmt.Fprintf(errOut, "Exporting %s...\n", variant)
	}

	art, err := svc.Export(ctx, variant, form)
	if err != nil {
		return err
	}

	if err := writeArtifact(outDir, art.Filename, art.Data); err != nil {
		return err
	}

	fmt.Fprintf(errOut, "Created %s\n", filepath.Join(outDir, art.Filename))
	return nil
}

// writeSummary builds and writes the listing summary document.
func writeSummary(svc *builder.Service, form builder.FormData, outDir string) error {
	art, err := svc.Summary(form)
	if err != nil {
		return err
	}
	return writeArtifact(outDir, art.Filename, art.Data)
}

// runExportAll exports every variant using a pool of browser-backed
// services. Each worker normalizes the shared photo once up front so all
// variants composite the same payload.
func runExportAll(ctx context.Context, flags *cliFlags, form builder.FormData, errOut io.Writer) error {
	pool := builder.NewServicePool(builder.ResolvePoolSize(flags.workers), serviceOptions(flags)...)
	defer pool.Close()

	// Normalize once; FormData is copied by value into each export.
	svc, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	form.PropertyImage = normalizePhoto(svc, flags.photo, errOut)
	pool.Release(svc)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, variant := range allVariants {
		wg.Add(1)
		go func(variant builder.Variant) {
			defer wg.Done()

			svc, err := pool.Acquire(ctx)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", variant, err))
				mu.Unlock()
				return
			}
			defer pool.Release(svc)

			err = writeExport(ctx, svc, variant, form, flags.outDir, flags.verbose, errOut)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", variant, err))
				mu.Unlock()
			}
		}(variant)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// writeArtifact writes one artifact into the output directory, creating
// the directory if needed.
func writeArtifact(outDir, name string, data []byte) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
