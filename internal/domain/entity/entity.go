package entity

import "time"

// RunStatus is the lifecycle state of a backup run.
type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

// Run is one recorded backup attempt against a rotation slot.
type Run struct {
	ID        int64     `json:"id"`
	Day       int       `json:"day"`
	Slot      string    `json:"slot"`
	Checksum  bool      `json:"checksum"`
	Status    RunStatus `json:"status"`
	Message   string    `json:"message,omitempty"`
	BytesSent int64     `json:"bytes_sent"`
	StartedAt time.Time `json:"started_at"`
	// FinishedAt is zero while the run is still in progress.
	FinishedAt time.Time `json:"finished_at,omitempty"`
}

// Duration returns how long the run took, or how long it has been running.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Slot is the catalog row tracking how recently and how often a rotation
// slot has been written. The six rows are seeded by migration and never
// added to or removed at runtime.
type Slot struct {
	ID       int64  `json:"id"`
	Label    string `json:"label"`
	RunCount int64  `json:"run_count"`
	// LastDay is the day-of-year of the last successful write, 0 if never.
	LastDay   int       `json:"last_day"`
	LastRunAt time.Time `json:"last_run_at,omitempty"`
	LastBytes int64     `json:"last_bytes"`
	UpdatedAt time.Time `json:"updated_at"`
}
