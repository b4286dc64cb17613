package builder

import "errors"

// Sentinel errors for library operations.
var (
	ErrUnknownVariant = errors.New("unknown template variant")

	// Photo normalization errors. ErrPhotoTooLarge is non-fatal: callers
	// warn and continue with an empty photo payload.
	ErrPhotoTooLarge = errors.New("photo exceeds upload size limit")

	// Template loading errors.
	ErrTemplateLoad       = errors.New("failed to load template")
	ErrMountTargetMissing = errors.New("mount target not found in page shell")

	// Export errors.
	ErrContainerNotRendered = errors.New("capture container not rendered")
	ErrExportFailed         = errors.New("design export failed")
	ErrSummaryBuild         = errors.New("summary document build failed")

	// Browser errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Asset loading errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Pool errors.
	ErrPoolClosed = errors.New("service pool is closed")
)
