package main

import (
	"errors"
	"os"

	builder "github.com/SpkEazy/Auction-Onsite-Builder"
)

// Exit codes for the onsitebuilder CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom < 126.
const (
	ExitSuccess = 0 // Artifact written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid command, flags or listing file
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must wrap with
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, builder.ErrBrowserConnect) ||
		errors.Is(err, builder.ErrPageCreate) ||
		errors.Is(err, builder.ErrPageLoad) ||
		errors.Is(err, builder.ErrExportFailed) ||
		errors.Is(err, builder.ErrContainerNotRendered) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrListingRead) {
		return ExitIO
	}

	// Usage errors (exit 2)
	if errors.Is(err, ErrNoCommand) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrListingRequired) ||
		errors.Is(err, ErrListingParse) ||
		errors.Is(err, builder.ErrUnknownVariant) ||
		errors.Is(err, builder.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
