package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"hubstat/internal/dataset"
	"hubstat/internal/logging"
)

// Result is the outcome of one pipeline run: a table or a failure reason.
// Table is never nil; it is empty when the run failed.
type Result struct {
	Table      *dataset.Table
	Err        error
	Kind       ErrorKind
	Source     string
	StatusCode int
	RunID      string
	FetchedAt  time.Time
	Duration   time.Duration
	Warnings   []dataset.Warning
}

// OK reports whether the run produced a table.
func (r Result) OK() bool {
	return r.Err == nil
}

// Status is a short description used in JSON output and notices.
func (r Result) Status() string {
	if r.OK() {
		return "ok"
	}
	return "failed: " + string(r.Kind)
}

// Recorder receives per-run measurements.
type Recorder interface {
	ObserveRun(outcome string, duration time.Duration, published int)
}

// Pipeline fetches the feed and extracts the published table.
type Pipeline struct {
	source   Source
	logger   *slog.Logger
	recorder Recorder
	clock    clockwork.Clock
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(recorder Recorder) Option {
	return func(p *Pipeline) {
		p.recorder = recorder
	}
}

// WithClock overrides the clock used for run timing.
func WithClock(clock clockwork.Clock) Option {
	return func(p *Pipeline) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// New constructs a pipeline over source.
func New(source Source, opts ...Option) (*Pipeline, error) {
	if source == nil {
		return nil, errors.New("pipeline source required")
	}
	p := &Pipeline{
		source: source,
		logger: logging.NewNop(),
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.NewComponentLogger(p.logger, "pipeline")
	return p, nil
}

// Endpoint returns the source endpoint, which is also the cache key.
func (p *Pipeline) Endpoint() string {
	return p.source.Endpoint()
}

// Run executes fetch then extract once. It never panics on bad input and
// never returns a nil table.
func (p *Pipeline) Run(ctx context.Context) Result {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, p.logger).With(logging.String(logging.FieldFeedURL, p.source.Endpoint()))

	start := p.clock.Now()
	result := Result{Source: p.source.Endpoint(), RunID: runID}

	payload, err := p.source.Fetch(ctx)
	var table *dataset.Table
	if err == nil {
		result.StatusCode = payload.StatusCode
		result.FetchedAt = payload.FetchedAt
		table, result.Warnings, err = dataset.Extract(payload.Value)
	}
	result.Duration = p.clock.Since(start)

	if err != nil {
		result.Err = err
		result.Kind = KindOf(err)
		result.Table = dataset.Empty()
		p.observe(result)
		logging.WarnWithContext(logger, "feed unavailable; continuing with empty table", "pipeline_failed",
			logging.String(logging.FieldErrorKind, string(result.Kind)),
			logging.String(logging.FieldErrorHint, result.Kind.Hint()),
			logging.String(logging.FieldImpact, "report shows no published datasets"),
			logging.Duration("duration", result.Duration),
			logging.Error(err),
		)
		return result
	}

	result.Table = table
	p.observe(result)
	if len(result.Warnings) > 0 {
		logging.WarnWithContext(logger, "dataset_type not a string; rows classified as Primary", "dataset_type_unclassified",
			logging.Int("rows", len(result.Warnings)),
			logging.Int("first_row", result.Warnings[0].Row),
			logging.String(logging.FieldImpact, "affected rows counted as Primary"),
			logging.String(logging.FieldErrorHint, "inspect dataset_type values in the feed"),
		)
	}
	logger.Info("feed loaded",
		logging.String(logging.FieldEventType, "pipeline_succeeded"),
		logging.Int("published", table.Len()),
		logging.Int("columns", len(table.Columns)),
		logging.Int("status_code", result.StatusCode),
		logging.Duration("duration", result.Duration),
	)
	return result
}

// Table runs the pipeline and collapses every failure to an empty table.
func (p *Pipeline) Table(ctx context.Context) *dataset.Table {
	return p.Run(ctx).Table
}

func (p *Pipeline) observe(result Result) {
	if p.recorder == nil {
		return
	}
	p.recorder.ObserveRun(result.Kind.Outcome(), result.Duration, result.Table.Len())
}
