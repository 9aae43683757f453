package metrics

import (
	"context"

	"github.com/kilianp07/ridership/core/events"
	coremetrics "github.com/kilianp07/ridership/core/metrics"
	"github.com/kilianp07/ridership/infra/logger"
	"github.com/kilianp07/ridership/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and forwards run events to
// the sink. Trial events reach sinks implementing TrialRecorder.
// It stops when the context is canceled or the bus is closed. The returned
// channel is closed once the collector has exited.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	log := logger.New("event-collector")
	trials, _ := sink.(coremetrics.TrialRecorder)
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.RunEvent:
					if err := sink.RecordRun(e.Summary); err != nil {
						log.Errorf("record run %s: %v", e.Summary.RunID, err)
					}
				case events.TrialEvent:
					if trials == nil {
						continue
					}
					if err := trials.RecordTrial(coremetrics.TrialEvent{
						RunID:    e.RunID,
						Scenario: e.Scenario,
						Index:    e.Index,
						Outcome:  e.Outcome,
					}); err != nil {
						log.Errorf("record trial %d: %v", e.Index, err)
					}
				case events.RunFailedEvent:
					log.Warnf("run %s (%s) failed: %v", e.RunID, e.Scenario, e.Err)
				}
			}
		}
	}()
	return done
}
