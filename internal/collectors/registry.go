package collectors

import (
	"fmt"
	"sync"
)

// Registry manages collector registration and retrieval by source slug
type Registry struct {
	mu         sync.RWMutex
	collectors map[string]Collector
}

// DefaultRegistry is the global registry instance
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty collector registry
func NewRegistry() *Registry {
	return &Registry{
		collectors: make(map[string]Collector),
	}
}

// Register registers a collector under its slug
func (r *Registry) Register(c Collector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collectors[c.Slug()] = c
}

// Get retrieves a collector by slug
func (r *Registry) Get(slug string) (Collector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.collectors[slug]
	return c, ok
}

// GetOrInit retrieves a collector, creating the built-in simulated sources
// on first use. File-backed sources carry configuration and must be
// registered explicitly.
func (r *Registry) GetOrInit(slug string) (Collector, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.collectors[slug]; ok {
		return c, nil
	}

	var c Collector
	switch slug {
	case SlugPopMart:
		c = NewPopMartCollector()
	case SlugPokemon:
		c = NewPokemonCollector()
	default:
		return nil, fmt.Errorf("no collector implementation for source: %s", slug)
	}

	r.collectors[slug] = c
	return c, nil
}

// List returns the slugs of all registered collectors
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slugs := make([]string, 0, len(r.collectors))
	for slug := range r.collectors {
		slugs = append(slugs, slug)
	}
	return slugs
}

// IsRegistered checks whether a source slug has a collector
func (r *Registry) IsRegistered(slug string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.collectors[slug]
	return ok
}

// InitializeDefaults registers the built-in simulated collectors in the
// default registry
func InitializeDefaults() {
	DefaultRegistry.Register(NewPopMartCollector())
	DefaultRegistry.Register(NewPokemonCollector())
}
