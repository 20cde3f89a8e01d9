// Package state persists lint run history and waivers in SQLite.
//
// The types are defined in pkg/core; this package re-exports them via type
// aliases so callers can stay within one import.
package state

import (
	"github.com/WolffM/vibecheck/pkg/core"
)

type (
	// Store is an alias for core.Store.
	Store = core.Store

	// RunStatus is an alias for core.RunStatus.
	RunStatus = core.RunStatus

	// Run is an alias for core.Run.
	Run = core.Run

	// RunStats is an alias for core.RunStats.
	RunStats = core.RunStats

	// Waiver is an alias for core.Waiver.
	Waiver = core.Waiver
)

// Re-export status constants from core.
const (
	RunStatusRunning    = core.RunStatusRunning
	RunStatusCompleted  = core.RunStatusCompleted
	RunStatusIncomplete = core.RunStatusIncomplete
	RunStatusFailed     = core.RunStatusFailed
)

var _ Store = (*SQLiteStore)(nil)
