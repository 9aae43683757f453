// Package events defines the simulation events emitted on the event bus.
//
// Available event types:
//   - TrialEvent: one trial of a run completed
//   - RunEvent: a run completed and was summarised
//   - RunFailedEvent: a run aborted with an error
package events
