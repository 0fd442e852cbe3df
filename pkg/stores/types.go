package stores

import (
	"context"
	"errors"
	"time"
)

// ErrRunNotFound is returned when a run does not exist.
var ErrRunNotFound = errors.New("run not found")

// RunStatus represents the outcome of a check run
type RunStatus string

const (
	RunStatusValid   RunStatus = "valid"
	RunStatusInvalid RunStatus = "invalid"
	RunStatusError   RunStatus = "error"
)

// Trigger names what started a run
type Trigger string

const (
	TriggerValidate Trigger = "validate"
	TriggerWatch    Trigger = "watch"
)

// Run represents one integrity check of a site
type Run struct {
	ID            string    `json:"id"`
	SiteDir       string    `json:"site_dir"`
	Trigger       Trigger   `json:"trigger"`
	Status        RunStatus `json:"status"`
	ViolationKind *string   `json:"violation_kind,omitempty"`
	Message       *string   `json:"message,omitempty"` // violation line or load error
	People        int       `json:"people"`
	Sessions      int       `json:"sessions"`
	Talks         int       `json:"talks"`
	Days          int       `json:"days"`
	DurationMs    int64     `json:"duration_ms"`
	StartedAt     time.Time `json:"started_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListOptions filters and pages run listings
type ListOptions struct {
	Limit  int
	Offset int
	Status *RunStatus
}

// Store defines the interface for the run history
type Store interface {
	// Lifecycle
	Init(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error

	// Run operations
	RecordRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	LatestRun(ctx context.Context) (*Run, error)
	ListRuns(ctx context.Context, opts ListOptions) ([]*Run, error)
	CountRuns(ctx context.Context) (int, error)
	PruneRuns(ctx context.Context, keep int) (int64, error)

	// Utility
	HealthCheck(ctx context.Context) error
}
