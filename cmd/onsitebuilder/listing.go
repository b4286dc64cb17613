package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	builder "github.com/SpkEazy/Auction-Onsite-Builder"
)

// Sentinel errors for listing file handling.
var (
	ErrListingRequired = errors.New("a listing file is required (--listing)")
	ErrListingRead     = errors.New("failed to read listing file")
	ErrListingParse    = errors.New("failed to parse listing file")
)

// Listing is the YAML shape of a property listing file.
type Listing struct {
	Headline     string   `yaml:"headline"`
	Subheadline  string   `yaml:"subheadline"`
	Subheadline2 string   `yaml:"subheadline2"`
	City         string   `yaml:"city"`
	Suburb       string   `yaml:"suburb"`
	Tag1         string   `yaml:"tag1"`
	Tag2         string   `yaml:"tag2"`
	Date         string   `yaml:"date"` // YYYY-MM-DD
	Time         string   `yaml:"time"` // HH:MM
	Address      string   `yaml:"address"`
	Features     []string `yaml:"features"` // up to three are used
	Broker       string   `yaml:"broker"`
	Description  string   `yaml:"description"`
	ListingURL   string   `yaml:"listingUrl"`
}

// loadListing reads and parses a listing YAML file.
func loadListing(path string) (*Listing, error) {
	if path == "" {
		return nil, ErrListingRequired
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListingRead, err)
	}

	var l Listing
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListingParse, err)
	}

	return &l, nil
}

// FormData converts the listing into the pipeline's form snapshot.
// Every absent field stays an empty string.
func (l *Listing) FormData() builder.FormData {
	form := builder.FormData{
		Headline:     l.Headline,
		Subheadline:  l.Subheadline,
		Subheadline2: l.Subheadline2,
		City:         l.City,
		Suburb:       l.Suburb,
		Tag1:         l.Tag1,
		Tag2:         l.Tag2,
		AuctionDate:  l.Date,
		AuctionTime:  l.Time,
		Address:      l.Address,
		BrokerID:     l.Broker,
		Description:  l.Description,
		ListingURL:   l.ListingURL,
	}

	feats := []*string{&form.Feat1, &form.Feat2, &form.Feat3}
	for i, feat := range l.Features {
		if i >= len(feats) {
			break
		}
		*feats[i] = feat
	}

	return form
}
