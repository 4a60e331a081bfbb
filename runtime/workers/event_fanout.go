package workers

import (
	"chat-poll/contract"
	"chat-poll/domain/event"
	"context"
	"log/slog"
	"sync"
	"time"
)

// EventFanout delivers committed domain events to in-process sinks.
//
// Delivery is best effort: no retries, no durability. Every sink gets its own
// goroutine and deadline per event, so a slow sink delays neither the others
// nor the writer that published the event.
type EventFanout struct {
	log         *slog.Logger
	events      <-chan event.DomainEvent
	sinks       []contract.EventSink
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, events <-chan event.DomainEvent, sinkTimeout time.Duration, sinks ...contract.EventSink) *EventFanout {
	return &EventFanout{log: log, events: events, sinkTimeout: sinkTimeout, sinks: sinks}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fan-out")
			return nil
		}
	}
}

// Fanout hands evt to every sink and waits for all of them to return or
// time out.
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	var wg sync.WaitGroup
	for _, sink := range w.sinks {
		wg.Add(1)
		go func(sink contract.EventSink) {
			defer wg.Done()
			sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
			defer cancel()
			if err := sink.Consume(sinkCtx, evt); err != nil {
				w.log.Warn("Sink failed to consume event", "chat_id", evt.ChatID(), "error", err)
			}
		}(sink)
	}
	wg.Wait()
}
