package integrity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ahm16/progcheck/pkg/telemetry"
)

// Result is the outcome of one instrumented check.
type Result struct {
	// RunID identifies the run in logs, spans and history.
	RunID string

	// Violation is the first violation found, or nil when the event is
	// valid.
	Violation *ValidationError

	// Duration is how long the check took.
	Duration time.Duration

	// Counts is the size of the checked event.
	Counts Counts
}

// OK reports whether the check found no violation.
func (r Result) OK() bool {
	return r.Violation == nil
}

// Status returns the result label used in metrics and history.
func (r Result) Status() string {
	if r.OK() {
		return telemetry.ResultValid
	}
	return telemetry.ResultInvalid
}

// Checker runs integrity checks with logging, metrics and tracing. It keeps
// no state between checks.
type Checker struct {
	schema  *Schema
	tel     *telemetry.Telemetry
	logger  zerolog.Logger
	siteDir string
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithSchema sets the schema table used by the checker.
func WithSchema(s *Schema) CheckerOption {
	return func(c *Checker) { c.schema = s }
}

// WithTelemetry sets the telemetry used by the checker.
func WithTelemetry(t *telemetry.Telemetry) CheckerOption {
	return func(c *Checker) { c.tel = t }
}

// WithSiteDir sets the site directory reported with each run.
func WithSiteDir(dir string) CheckerOption {
	return func(c *Checker) { c.siteDir = dir }
}

// NewChecker creates a checker using the default schema and no-op telemetry
// unless configured otherwise.
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{}
	for _, opt := range opts {
		opt(c)
	}
	if c.schema == nil {
		c.schema = DefaultSchema()
	}
	if c.tel == nil {
		c.tel = telemetry.Nop()
	}
	c.logger = telemetry.Component(c.tel.Logger, "integrity")
	return c
}

// Schema returns the schema table used by the checker.
func (c *Checker) Schema() *Schema {
	return c.schema
}

// Check validates event and returns the result. Violations are reported in
// the result, never as an error.
func (c *Checker) Check(ctx context.Context, event Event) Result {
	runID := uuid.New().String()
	_, span := c.tel.Tracer.StartCheckSpan(ctx, runID, c.siteDir)
	defer span.End()

	logger := c.logger.With().Str("run_id", runID).Logger()
	counts := event.Counts()
	logger.Debug().
		Int("people", counts.People).
		Int("sessions", counts.Sessions).
		Int("talks", counts.Talks).
		Int("days", counts.Days).
		Msg("Starting integrity check")

	timer := telemetry.NewTimer()
	err := c.schema.Check(event)
	result := Result{
		RunID:    runID,
		Duration: timer.Duration(),
		Counts:   counts,
	}
	if ve, ok := AsValidationError(err); ok {
		result.Violation = ve
	}

	m := c.tel.Metrics
	m.RecordCheck(result.Status(), result.Duration)
	m.SetDatasetRecords("people", counts.People)
	m.SetDatasetRecords("sessions", counts.Sessions)
	m.SetDatasetRecords("talks", counts.Talks)
	m.SetDatasetRecords("days", counts.Days)

	span.SetAttributes(
		telemetry.AttrResult.String(result.Status()),
		telemetry.AttrPeople.Int(counts.People),
		telemetry.AttrSessions.Int(counts.Sessions),
		telemetry.AttrTalks.Int(counts.Talks),
		telemetry.AttrDays.Int(counts.Days),
	)

	if result.Violation != nil {
		m.RecordViolation(string(result.Violation.Kind))
		span.SetAttributes(telemetry.AttrViolationKind.String(string(result.Violation.Kind)))
		telemetry.RecordError(span, result.Violation)
		logger.Info().
			Str("kind", string(result.Violation.Kind)).
			Dur("duration", result.Duration).
			Msg("Integrity check found a violation")
		return result
	}

	telemetry.RecordSuccess(span)
	logger.Debug().Dur("duration", result.Duration).Msg("Integrity check passed")
	return result
}
