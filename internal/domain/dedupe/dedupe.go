// Package dedupe tracks swim fingerprints so the same physical result is
// ingested at most once, even when a row appears in several source files
// or a directory is re-imported after new meets are appended.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen swim fingerprints.
type Deduper interface {
	// SeenAndRecord atomically checks whether fingerprint was seen and
	// records it if not. Returns true if it was already seen.
	SeenAndRecord(ctx context.Context, fingerprint string) bool

	// Size returns the number of distinct fingerprints recorded.
	Size() int
}

// inMemoryDeduper implements Deduper with a plain set. A batch run sees a
// bounded number of rows, so no eviction is needed.
type inMemoryDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewInMemoryDeduper creates an empty in-memory deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}
	for _, opt := range opts {
		opt(d)
	}
	if d.seen == nil {
		d.seen = make(map[string]struct{})
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[fingerprint]; ok {
		return true
	}
	d.seen[fingerprint] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
