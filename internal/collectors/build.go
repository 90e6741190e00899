package collectors

import (
	"fmt"

	"github.com/aistocktrack/catalog-service/internal/types"
)

// FeedSlug identifies the XLSX feed source
const FeedSlug = "feed"

// BuildFromConfig assembles the collector set named by the configuration.
// Unknown source slugs are an error; a non-empty feed path adds the XLSX
// feed source on top of the named ones.
func BuildFromConfig(sources []string, feedPath string, feedBrand types.BrandType) ([]Collector, error) {
	out := make([]Collector, 0, len(sources)+1)
	for _, slug := range sources {
		c, err := DefaultRegistry.GetOrInit(slug)
		if err != nil {
			return nil, fmt.Errorf("unknown collection source %q: %w", slug, err)
		}
		out = append(out, c)
	}
	if feedPath != "" {
		out = append(out, NewFeedCollector(FeedSlug, "XLSX Feed", feedBrand, feedPath, DefaultFeedMapping()))
	}
	return out, nil
}
