package runtime

import (
	"chat-poll/domain/event"
	"context"
	"log/slog"
	"sync"
)

// Activity is an EventSink keeping running totals of what happened since
// start. The health endpoint reports its snapshot.
type Activity struct {
	log      *slog.Logger
	mu       sync.Mutex
	messages uint64
	kicks    uint64
	censored map[string]uint64
}

type ActivitySnapshot struct {
	MessagesAppended uint64            `json:"messages_appended"`
	MembersRemoved   uint64            `json:"members_removed"`
	CensoredWords    map[string]uint64 `json:"censored_words,omitempty"`
}

func NewActivity(log *slog.Logger) *Activity {
	return &Activity{log: log, censored: make(map[string]uint64)}
}

func (a *Activity) Consume(_ context.Context, e event.DomainEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch evt := e.(type) {
	case event.MessageAppended:
		a.messages++
	case event.MemberRemoved:
		a.kicks++
		a.log.Info("Member removed", "chat_id", evt.Chat, "user_id", evt.User, "by", evt.By)
	case event.MessageCensored:
		for _, word := range evt.Words {
			a.censored[word]++
		}
		a.log.Info("Message censored", "chat_id", evt.Chat, "language", evt.Language, "hits", len(evt.Words))
	}
	return nil
}

func (a *Activity) Snapshot() ActivitySnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	words := make(map[string]uint64, len(a.censored))
	for word, hits := range a.censored {
		words[word] = hits
	}
	return ActivitySnapshot{MessagesAppended: a.messages, MembersRemoved: a.kicks, CensoredWords: words}
}
