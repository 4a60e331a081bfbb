package runtime

import (
	"chat-poll/domain/event"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_Publish_Never_Blocks(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	events := make(chan event.DomainEvent, 1)
	dispatcher := NewDispatcher(log, events)

	done := make(chan struct{})
	go func() {
		dispatcher.Publish(event.MessageAppended{ID: 1, Chat: 1})
		// Buffer is full, this one is dropped
		dispatcher.Publish(event.MessageAppended{ID: 2, Chat: 1})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("Publish blocked on a full buffer")
	}
	req.Len(events, 1)
	req.Equal(event.MessageAppended{ID: 1, Chat: 1}, <-events)
}

func TestActivity_Counts_Events(t *testing.T) {
	req := require.New(t)
	activity := NewActivity(logs.GetLoggerFromLevel(slog.LevelDebug))
	ctx := context.Background()

	req.NoError(activity.Consume(ctx, event.MessageAppended{Chat: 1}))
	req.NoError(activity.Consume(ctx, event.MessageAppended{Chat: 2}))
	req.NoError(activity.Consume(ctx, event.MemberRemoved{Chat: 1, User: 2}))
	req.NoError(activity.Consume(ctx, event.MessageCensored{Chat: 1, Words: []string{"darn", "darn"}}))

	snapshot := activity.Snapshot()
	req.Equal(uint64(2), snapshot.MessagesAppended)
	req.Equal(uint64(1), snapshot.MembersRemoved)
	req.Equal(map[string]uint64{"darn": 2}, snapshot.CensoredWords)
}
