package assets

import (
	"embed"
	"fmt"
)

//go:embed templates/*
var templates embed.FS

//go:embed config/brokers.yaml
var brokerConfig []byte

// EmbeddedLoader loads assets compiled into the binary.
// Implements the Loader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTemplate loads an embedded markup template by name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := templates.ReadFile("templates/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	return string(content), nil
}

// LoadImage always reports not found: image assets (overlay graphic,
// broker photos) are filesystem-only, and callers fall back to
// procedural or absent visuals.
func (e *EmbeddedLoader) LoadImage(rel string) ([]byte, error) {
	if err := ValidateImagePath(rel); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %q", ErrImageNotFound, rel)
}

// LoadBrokerConfig returns the embedded broker directory YAML.
func (e *EmbeddedLoader) LoadBrokerConfig() (string, error) {
	return string(brokerConfig), nil
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
