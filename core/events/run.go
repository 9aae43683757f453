package events

import "github.com/kilianp07/ridership/core/metrics"

// TrialEvent is published after every trial of a run.
type TrialEvent struct {
	RunID    string
	Scenario string
	Index    int
	Outcome  float64
}

// RunEvent is published once a run has been summarised.
type RunEvent struct {
	Summary metrics.RunSummary
}

// RunFailedEvent is published when a run aborts.
type RunFailedEvent struct {
	RunID    string
	Scenario string
	Err      error
}
