package assets

// Loader is the contract for fetching builder assets by logical name.
type Loader interface {
	// LoadTemplate loads markup by name (without the .html extension):
	// the page shell ("shell") or a variant template ("social",
	// "newsletter", "flyer"). Returns ErrTemplateNotFound if absent.
	LoadTemplate(name string) (string, error)

	// LoadImage loads a binary image asset by path relative to the
	// images directory, e.g. "red-tag.png" or
	// "brokers/jdupreez/broker-photo.jpg".
	// Returns ErrImageNotFound if absent.
	LoadImage(rel string) ([]byte, error)

	// LoadBrokerConfig loads the broker directory YAML.
	LoadBrokerConfig() (string, error)
}
