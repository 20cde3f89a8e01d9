package core

import "time"

// Store defines the interface for persisted lint state.
type Store interface {
	Open(path string) error
	Close() error

	// Run operations
	CreateRun(paths []string) (*Run, error)
	GetRun(id string) (*Run, error)
	CompleteRun(id string, status RunStatus, stats RunStats) error
	ListRuns(limit int) ([]*Run, error)

	// Waiver operations
	AddWaiver(w *Waiver) error
	ListWaivers() ([]*Waiver, error)
	WaiversForPath(path string) ([]*Waiver, error)
	DeleteWaiver(id string) error
}

// RunStatus represents the status of a lint run.
type RunStatus string

// Run status constants.
const (
	RunStatusRunning    RunStatus = "running"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusIncomplete RunStatus = "incomplete"
	RunStatusFailed     RunStatus = "failed"
)

// RunStats summarises the outcome of a run.
type RunStats struct {
	Files      int
	Findings   int
	Errors     int
	Warnings   int
	Infos      int
	Suppressed int
}

// Run represents one invocation of the linter.
type Run struct {
	ID          string
	Paths       []string
	Status      RunStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Stats       RunStats
}

// Waiver silences a rule over a line range of one file.
// Waivers are stored by the CLI and turned into suppression directives.
type Waiver struct {
	ID        string
	Path      string
	Rule      string // empty waives every rule
	StartLine int
	EndLine   int
	Reason    string
	CreatedAt time.Time
}
