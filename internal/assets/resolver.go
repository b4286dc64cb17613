package assets

import "errors"

// Resolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured it is tried first; embedded assets
// serve anything the custom directory does not provide.
type Resolver struct {
	custom   Loader // nil if no custom path configured
	embedded Loader
}

// NewResolver creates a Resolver. If customBasePath is empty, only
// embedded assets are used. Returns an error if customBasePath is set but
// invalid.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}

	return r, nil
}

// LoadTemplate loads a template, custom first with embedded fallback.
func (r *Resolver) LoadTemplate(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadTemplate(name)
	}

	content, err := r.custom.LoadTemplate(name)
	if err == nil {
		return content, nil
	}
	if !isNotFound(err) {
		return "", err
	}
	return r.embedded.LoadTemplate(name)
}

// LoadImage loads an image asset, custom first with embedded fallback.
func (r *Resolver) LoadImage(rel string) ([]byte, error) {
	if r.custom == nil {
		return r.embedded.LoadImage(rel)
	}

	data, err := r.custom.LoadImage(rel)
	if err == nil {
		return data, nil
	}
	if !isNotFound(err) {
		return nil, err
	}
	return r.embedded.LoadImage(rel)
}

// LoadBrokerConfig loads the broker directory YAML, custom first.
func (r *Resolver) LoadBrokerConfig() (string, error) {
	if r.custom == nil {
		return r.embedded.LoadBrokerConfig()
	}

	content, err := r.custom.LoadBrokerConfig()
	if err == nil {
		return content, nil
	}
	if !isNotFound(err) {
		return "", err
	}
	return r.embedded.LoadBrokerConfig()
}

// HasCustomLoader reports whether a custom asset directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

// isNotFound checks if the error indicates the asset was not found, as
// opposed to a validation or I/O failure that should not fall back.
func isNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound) || errors.Is(err, ErrImageNotFound)
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
