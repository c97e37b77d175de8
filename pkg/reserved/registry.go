package reserved

import (
	"sort"
	"strings"
	"sync"
)

// Edition registry
var (
	editionsMu sync.RWMutex
	editions   = make(map[Dialect]*Edition)
	byName     = make(map[string]*Edition)
)

// Register registers an edition in the global registry, replacing any
// edition previously registered for the same dialect.
func Register(e *Edition) {
	editionsMu.Lock()
	defer editionsMu.Unlock()
	editions[e.Dialect] = e
	byName[strings.ToLower(e.Name)] = e
	for _, alias := range e.Aliases {
		byName[strings.ToLower(alias)] = e
	}
}

// Get returns the edition registered for dialect d.
func Get(d Dialect) (*Edition, bool) {
	editionsMu.RLock()
	defer editionsMu.RUnlock()
	e, ok := editions[d]
	return e, ok
}

// Lookup returns an edition by name or alias.
func Lookup(name string) (*Edition, bool) {
	editionsMu.RLock()
	defer editionsMu.RUnlock()
	e, ok := byName[strings.ToLower(name)]
	return e, ok
}

// List returns all registered editions, oldest first.
func List() []*Edition {
	editionsMu.RLock()
	defer editionsMu.RUnlock()
	out := make([]*Edition, 0, len(editions))
	for _, e := range editions {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dialect < out[j].Dialect })
	return out
}

// Names returns the primary names of all registered editions, oldest first.
func Names() []string {
	list := List()
	names := make([]string, len(list))
	for i, e := range list {
		names[i] = e.Name
	}
	return names
}
