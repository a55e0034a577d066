package search

import (
	"fmt"
	"time"
)

// RunID identifies one search run.
type RunID string

// State is the lifecycle of the pipeline's current run.
type State int

const (
	Idle State = iota
	Running
	Completed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Match is one entry whose name contains the query.
type Match struct {
	RunID RunID
	Path  string
	Name  string
	IsDir bool
}

// Stats is a snapshot of the current run's counters.
type Stats struct {
	RunID         RunID
	State         State
	DirsScheduled int64
	DirsListed    int64
	DirsSkipped   int64
	Matches       int64
	StartedAt     time.Time
	FinishedAt    time.Time
}

// DirectoryUnreadableError reports a subtree skipped because it could not be listed.
type DirectoryUnreadableError struct {
	Path string
	Err  error
}

func (e *DirectoryUnreadableError) Error() string {
	return fmt.Sprintf("cannot read directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryUnreadableError) Unwrap() error {
	return e.Err
}
