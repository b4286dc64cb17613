package builder

import (
	"fmt"

	"github.com/SpkEazy/Auction-Onsite-Builder/internal/assets"
)

// stubAssets is an in-memory asset loader for tests.
type stubAssets struct {
	templates  map[string]string
	images     map[string][]byte
	brokerYAML string
}

func (s *stubAssets) LoadTemplate(name string) (string, error) {
	if content, ok := s.templates[name]; ok {
		return content, nil
	}
	return "", fmt.Errorf("%w: %q", assets.ErrTemplateNotFound, name)
}

func (s *stubAssets) LoadImage(rel string) ([]byte, error) {
	if data, ok := s.images[rel]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("%w: %q", assets.ErrImageNotFound, rel)
}

func (s *stubAssets) LoadBrokerConfig() (string, error) {
	return s.brokerYAML, nil
}

// Compile-time interface check.
var _ assets.Loader = (*stubAssets)(nil)
