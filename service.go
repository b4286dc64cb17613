package builder

import (
	"context"
	"fmt"

	"github.com/SpkEazy/Auction-Onsite-Builder/internal/assets"
)

// Service orchestrates the marketing-asset pipeline: normalize photo,
// fill and mount the variant template, composite the photo panel,
// substitute broker details, fit text, and capture or package the
// artifact.
//
// A Service assumes a single in-flight generate/export call at a time;
// callers wanting parallel exports use a ServicePool.
type Service struct {
	cfg        serviceConfig
	normalizer photoNormalizer
	loader     templateLoader
	compositor photoCompositor
	fitter     textFitter
	exporter   rasterExporter
	summary    summaryBuilder

	resolver assets.Loader
	brokers  *BrokerDirectory

	// initErr defers asset/broker setup failures to the first operation,
	// so New stays infallible for pool construction.
	initErr error
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithAssetDir).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(s)
	}

	resolver, err := assets.NewResolver(s.cfg.assetDir)
	if err != nil {
		s.initErr = fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		resolver = nil
	}

	fitter := newMeasuredFitter()

	s.resolver = resolver
	s.normalizer = imagingNormalizer{}
	s.fitter = fitter
	if resolver != nil {
		s.loader = newAssetTemplateLoader(resolver)
		s.compositor = newPanelCompositor(resolver, fitter)
		s.brokers, err = loadDirectory(resolver)
		if err != nil && s.initErr == nil {
			s.initErr = err
		}
	}
	s.summary = docxSummaryBuilder{}
	s.exporter = newChromeExporter(s.cfg.timeout)

	return s
}

// loadDirectory parses the broker directory from the asset resolver.
func loadDirectory(resolver assets.Loader) (*BrokerDirectory, error) {
	yamlText, err := resolver.LoadBrokerConfig()
	if err != nil {
		return nil, fmt.Errorf("loading broker directory: %w", err)
	}
	return LoadBrokerDirectory(yamlText)
}

// NormalizePhoto converts raw upload bytes into the photo payload carried
// by FormData. ErrPhotoTooLarge is non-fatal: warn the user and continue
// with the returned empty payload.
func (s *Service) NormalizePhoto(data []byte) (string, error) {
	return s.normalizer.Normalize(data)
}

// Brokers exposes the immutable broker directory (for form population).
func (s *Service) Brokers() (*BrokerDirectory, error) {
	if s.initErr != nil {
		return nil, s.initErr
	}
	return s.brokers, nil
}

// GeneratePreview runs the pipeline up to (but not including) browser
// capture and returns the populated, composited, fitted page markup.
// Calling it twice with identical FormData yields byte-identical markup.
func (s *Service) GeneratePreview(ctx context.Context, variant Variant, form FormData) (string, error) {
	if s.initErr != nil {
		return "", s.initErr
	}

	spec, ok := variantSpecs[variant]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	rec := s.brokers.Lookup(form.BrokerID)

	markup, err := s.loader.Load(ctx, variant, form, rec)
	if err != nil {
		return "", err
	}

	markup = s.compositor.Compose(markup, variant, form)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if spec.Broker {
		markup = substituteBroker(markup, s.resolver, form.BrokerID, rec)
	}

	markup = s.fitter.Fit(markup, variant)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return markup, nil
}

// Export runs the full pipeline and returns the variant's JPEG artifact.
// Failures at the capture step surface a single error; earlier asset
// problems (bad photo, missing broker assets) degrade silently per the
// pipeline's local-recovery policy.
func (s *Service) Export(ctx context.Context, variant Variant, form FormData) (*ExportArtifact, error) {
	markup, err := s.GeneratePreview(ctx, variant, form)
	if err != nil {
		return nil, err
	}

	data, err := s.exporter.Render(ctx, markup)
	if err != nil {
		return nil, fmt.Errorf("exporting %s: %w", variant, err)
	}

	return &ExportArtifact{
		Filename: variantSpecs[variant].Filename,
		Data:     data,
	}, nil
}

// Summary builds the listing summary document. It does not need a
// browser.
func (s *Service) Summary(form FormData) (*ExportArtifact, error) {
	data, err := s.summary.Build(form)
	if err != nil {
		return nil, err
	}
	return &ExportArtifact{Filename: SummaryFilename, Data: data}, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.exporter != nil {
		return s.exporter.Close()
	}
	return nil
}
