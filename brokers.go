package builder

import (
	"fmt"
	"html"
	"net/http"

	"github.com/goccy/go-yaml"

	"github.com/SpkEazy/Auction-Onsite-Builder/internal/assets"
)

// BrokerRecord is one broker's contact details. Records are read-only for
// the process lifetime.
type BrokerRecord struct {
	Name  string `yaml:"name"`
	Phone string `yaml:"phone"`
	Email string `yaml:"email"`
}

// brokerConfig is the YAML shape of the broker directory.
type brokerConfig struct {
	Default BrokerRecord            `yaml:"default"`
	Brokers map[string]BrokerRecord `yaml:"brokers"`
}

// BrokerDirectory maps broker identifiers to records. Loaded once at
// startup; never mutated afterwards.
type BrokerDirectory struct {
	def     BrokerRecord
	brokers map[string]BrokerRecord
}

// LoadBrokerDirectory parses a broker directory from YAML.
func LoadBrokerDirectory(yamlText string) (*BrokerDirectory, error) {
	var cfg brokerConfig
	if err := yaml.Unmarshal([]byte(yamlText), &cfg); err != nil {
		return nil, fmt.Errorf("parsing broker directory: %w", err)
	}

	brokers := make(map[string]BrokerRecord, len(cfg.Brokers))
	for id, rec := range cfg.Brokers {
		brokers[id] = rec
	}

	return &BrokerDirectory{def: cfg.Default, brokers: brokers}, nil
}

// Lookup returns the record for the given broker identifier, or the fixed
// default record for unknown or empty identifiers.
func (d *BrokerDirectory) Lookup(id string) BrokerRecord {
	if rec, ok := d.brokers[id]; ok {
		return rec
	}
	return d.def
}

// Len reports how many named brokers the directory holds, excluding the
// default record.
func (d *BrokerDirectory) Len() int {
	return len(d.brokers)
}

// Per-broker asset convention: images/brokers/<id>/<asset>, with shared
// fallback assets under images/brokers/default/.
const (
	brokerPhotoAsset  = "broker-photo.jpg"
	brokerPhoneAsset  = "broker-phone.jpg"
	brokerFallbackDir = "default"
)

// Element ids the broker substitution step rewrites in mounted markup.
const (
	brokerContactID   = "broker-contact"
	brokerPhotoImgID  = "broker-photo"
	brokerPhoneCardID = "broker-phone-card"
)

// loadBrokerImage resolves a per-broker asset with exactly one fallback
// attempt at the shared default path. Returns nil when both are missing;
// the caller proceeds without the image.
func loadBrokerImage(loader assets.Loader, brokerID, asset string) []byte {
	if brokerID != "" {
		if data, err := loader.LoadImage("brokers/" + brokerID + "/" + asset); err == nil {
			return data
		}
	}
	data, err := loader.LoadImage("brokers/" + brokerFallbackDir + "/" + asset)
	if err != nil {
		return nil
	}
	return data
}

// substituteBroker rewrites the contact block and broker images of a
// mounted newsletter/flyer subtree for the selected broker. Asset load
// failures are non-fatal: the affected image is simply left without a
// source.
func substituteBroker(markup string, loader assets.Loader, brokerID string, rec BrokerRecord) string {
	contact := html.EscapeString(rec.Name) + "<br>" +
		html.EscapeString(rec.Phone) + "<br>" +
		html.EscapeString(rec.Email)
	markup, _ = setElementHTML(markup, brokerContactID, contact)

	for imgID, asset := range map[string]string{
		brokerPhotoImgID:  brokerPhotoAsset,
		brokerPhoneCardID: brokerPhoneAsset,
	} {
		data := loadBrokerImage(loader, brokerID, asset)
		if data == nil {
			continue
		}
		markup, _ = setImgSrc(markup, imgID, dataURI(http.DetectContentType(data), data))
	}

	return markup
}
