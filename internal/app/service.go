// Package app wires the batch pipeline together: source, normalizer,
// classifier, store, aggregator and renderer.
package app

import (
	"io"

	"github.com/laneline/swimrecords/internal/adapters/render"
	"github.com/laneline/swimrecords/internal/adapters/repository"
	"github.com/laneline/swimrecords/internal/adapters/source"
	"github.com/laneline/swimrecords/internal/domain/classify"
	"github.com/laneline/swimrecords/internal/domain/dedupe"
	"github.com/laneline/swimrecords/internal/domain/records"
	"github.com/laneline/swimrecords/pkg/logger"
)

// Default service configuration.
const (
	defaultParallelism = 4
)

// Service orchestrates one team's batch runs. Careers are processed
// independently and results land in disjoint partitions, so the
// per-swimmer work is fanned out without coordination beyond the store
// mutex.
type Service struct {
	log        logger.Logger
	src        source.Source
	store      repository.Store
	deduper    dedupe.Deduper
	classifier *classify.Classifier
	aggregator *records.Aggregator
	renderer   *render.Markdown
	decisions  classify.DecisionSet

	teamName    string
	outputDir   string
	parallelism int
	progressOut io.Writer // nil disables the progress bar
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSource sets the swim data source.
func WithSource(src source.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.src = src
		}
	}
}

// WithStore sets the classified swim store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDeduper sets the ingestion row deduper.
func WithDeduper(d dedupe.Deduper) Option {
	return func(s *Service) {
		if d != nil {
			s.deduper = d
		}
	}
}

// WithClassifier sets the unattached classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(s *Service) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithAggregator sets the record aggregator.
func WithAggregator(a *records.Aggregator) Option {
	return func(s *Service) {
		if a != nil {
			s.aggregator = a
		}
	}
}

// WithRenderer sets the report renderer.
func WithRenderer(r *render.Markdown) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithDecisions sets the classification decision set.
func WithDecisions(d classify.DecisionSet) Option {
	return func(s *Service) {
		s.decisions = d
	}
}

// WithTeamName sets the display name used in reports.
func WithTeamName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.teamName = name
		}
	}
}

// WithOutputDir sets the directory receiving partitions and reports.
func WithOutputDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.outputDir = dir
		}
	}
}

// WithParallelism bounds concurrent per-swimmer classification.
func WithParallelism(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// WithProgress directs progress-bar output to w; nil disables it.
func WithProgress(w io.Writer) Option {
	return func(s *Service) {
		s.progressOut = w
	}
}

// New creates a Service. A source must be supplied via WithSource before
// Classify is called; the other collaborators default to in-memory
// implementations.
func New(opts ...Option) *Service {
	s := &Service{
		store:       repository.NewMemStore(),
		deduper:     dedupe.NewInMemoryDeduper(),
		aggregator:  records.New(),
		teamName:    "Team Records",
		outputDir:   "data/processed",
		parallelism: defaultParallelism,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Default()
	}
	if s.renderer == nil {
		s.renderer = render.NewMarkdown(s.teamName)
	}
	return s
}
