package render

import "time"

// Option applies a configuration option to the Markdown renderer.
type Option func(*Markdown)

// WithClock overrides the timestamp source for deterministic output.
func WithClock(now func() time.Time) Option {
	return func(m *Markdown) {
		if now != nil {
			m.now = now
		}
	}
}

// WithGenderTitle prefixes report subtitles with a squad label,
// e.g. "Girls", for per-gender books.
func WithGenderTitle(title string) Option {
	return func(m *Markdown) {
		m.genderTitle = title
	}
}
