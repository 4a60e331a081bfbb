package runtime

import (
	"chat-poll/domain/event"
	"log/slog"
)

// Dispatcher is the publishing side of the event fan-out channel.
// Publish never blocks: when the buffer is full the event is dropped,
// since sinks are side effects and the message is already committed.
type Dispatcher struct {
	log    *slog.Logger
	events chan<- event.DomainEvent
}

func NewDispatcher(log *slog.Logger, events chan<- event.DomainEvent) *Dispatcher {
	return &Dispatcher{log: log, events: events}
}

func (d *Dispatcher) Publish(e event.DomainEvent) {
	select {
	case d.events <- e:
	default:
		d.log.Warn("Event buffer full, event dropped", "chat_id", e.ChatID(), "type", eventType(e))
	}
}

func eventType(e event.DomainEvent) string {
	switch e.(type) {
	case event.MessageAppended:
		return "message_appended"
	case event.MemberRemoved:
		return "member_removed"
	case event.MessageCensored:
		return "message_censored"
	default:
		return "unknown"
	}
}
