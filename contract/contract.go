//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks -exclude_interfaces=ISupervisor
package contract

import (
	"chat-poll/domain"
	"chat-poll/domain/event"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself, the supervisor does.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker,
// for logging during supervision.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink consumes domain events after they were committed.
// A sink must honor ctx, the fan-out gives each call a deadline.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IPublisher hands events to the fan-out without blocking the caller.
type IPublisher interface {
	Publish(e event.DomainEvent)
}

// INotifier wakes pollers waiting on a chat.
type INotifier interface {
	Wait(chatID domain.ChatID) (<-chan struct{}, func())
	Broadcast(chatID domain.ChatID)
}
