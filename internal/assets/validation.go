package assets

import (
	"fmt"
	"path"
	"strings"
)

// ValidateAssetName checks that a logical template name is a simple
// identifier, so it cannot address files outside the asset directories.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// ValidateImagePath checks a relative image path for traversal attempts.
// Subdirectories are allowed (broker assets live under brokers/<id>/).
func ValidateImagePath(rel string) error {
	if rel == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidAssetName)
	}
	if strings.Contains(rel, `\`) {
		return fmt.Errorf("%w: %q", ErrPathTraversal, rel)
	}
	clean := path.Clean(rel)
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: %q", ErrPathTraversal, rel)
	}
	return nil
}
