package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// Asset directory layout under the custom base path.
const (
	templatesSubdir = "templates"
	imagesSubdir    = "images"
	brokerConfName  = "brokers.yaml"
)

// FilesystemLoader loads assets from a user-supplied directory.
// Implements the Loader interface.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader rooted at basePath.
// Returns ErrInvalidBasePath if the path is not a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	info, err := os.Stat(basePath)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBasePath, basePath)
	}
	return &FilesystemLoader{basePath: basePath}, nil
}

// LoadTemplate loads templates/<name>.html from the base path.
func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := os.ReadFile(filepath.Join(f.basePath, templatesSubdir, name+".html"))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return string(content), nil
}

// LoadImage loads images/<rel> from the base path.
func (f *FilesystemLoader) LoadImage(rel string) ([]byte, error) {
	if err := ValidateImagePath(rel); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(f.basePath, imagesSubdir, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrImageNotFound, rel)
	}
	return data, nil
}

// LoadBrokerConfig loads brokers.yaml from the base path.
func (f *FilesystemLoader) LoadBrokerConfig() (string, error) {
	content, err := os.ReadFile(filepath.Join(f.basePath, brokerConfName))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, brokerConfName)
	}
	return string(content), nil
}

// Compile-time interface check.
var _ Loader = (*FilesystemLoader)(nil)
