package mdsite

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rabreu/mdsite/internal/logging"
	"github.com/rabreu/mdsite/internal/pipeline"
)

// serviceConfig holds Service construction options.
type serviceConfig struct {
	fetchTimeout time.Duration
}

// Option customizes a Service.
type Option func(*Service)

// WithFetchTimeout bounds remote image fetches. Zero or negative falls back
// to the default.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) { s.cfg.fetchTimeout = d }
}

// WithLogger replaces the logger warnings are emitted on.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// Service converts Markdown documents to articles. It is safe to reuse for
// any number of documents: all per-document state lives in the conversion
// call, never on the Service.
type Service struct {
	cfg       serviceConfig
	converter *pipeline.Converter
	resolver  *pipeline.ImageResolver
	logger    *log.Logger
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithFetchTimeout).
func New(opts ...Option) *Service {
	s := &Service{
		cfg:       serviceConfig{fetchTimeout: pipeline.DefaultFetchTimeout},
		converter: pipeline.NewConverter(),
		logger:    logging.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.resolver = pipeline.NewImageResolver(s.cfg.fetchTimeout)
	return s
}

// Convert runs the full pipeline on one document. Warnings (title
// ambiguity, image failures) are logged and returned on the Article;
// only unparsable front matter, a rendering failure, or context
// cancellation produce an error.
func (s *Service) Convert(ctx context.Context, input Input) (*Article, error) {
	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	// Per-document accumulator; nothing leaks between conversions.
	st := &pipeline.State{}

	title, rest := pipeline.ExtractTitleLine([]byte(input.Markdown))
	st.Title = title

	doc, err := s.converter.Parse(ctx, rest)
	if err != nil {
		return nil, err
	}

	// Title must be settled before callers read metadata; images last so
	// their warnings carry the final src values.
	pipeline.ResolveTitle(doc, st)
	pipeline.ExtractPreamble(doc, st)
	pipeline.InlineImages(ctx, doc, s.resolver, input.BaseDir, st)

	htmlOut, err := s.converter.Render(ctx, doc)
	if err != nil {
		return nil, err
	}

	for _, w := range st.Warnings {
		s.logger.Warn(w)
	}

	metadata := make(Metadata, len(doc.Meta)+2)
	for k, v := range doc.Meta {
		metadata[k] = v
	}
	metadata["title"] = st.Title
	metadata["description"] = st.Preamble

	return &Article{
		HTML:        htmlOut,
		Metadata:    metadata,
		Title:       st.Title,
		Description: st.Preamble,
		Warnings:    st.Warnings,
	}, nil
}
