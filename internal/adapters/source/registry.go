package source

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory builds a Source from source-specific options resolved at
// startup (directories, credentials).
type Factory func() (Source, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a source factory under a name. Later registrations for
// the same name win, which lets tests shadow a builtin.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = factory
}

// Open resolves a registered source by name. Unknown names are a
// configuration error and list what is available.
func Open(name string) (Source, error) {
	registryMu.RLock()
	factory, ok := registry[strings.ToLower(name)]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownSource, name, strings.Join(Names(), ", "))
	}
	src, err := factory()
	if err != nil {
		return nil, fmt.Errorf("open source %q: %w", name, err)
	}
	return src, nil
}

// Names lists registered source names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
