package services

import (
	"chat-poll/auth"
	"chat-poll/domain"
	"chat-poll/domain/event"
	"chat-poll/repositories"
	"chat-poll/runtime"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type env struct {
	users    *repositories.UserRepository
	chats    *repositories.ChatRepository
	messages *repositories.MessageRepository
	notifier *runtime.Notifier
	events   chan event.DomainEvent
	chat     *ChatService
	message  *MessageService
	home     *HomeService
}

type stubSearcher struct {
	ids []domain.MessageID
}

func (s *stubSearcher) Search(_ context.Context, _ domain.ChatID, _ string, limit int) ([]domain.MessageID, error) {
	if len(s.ids) > limit {
		return s.ids[:limit], nil
	}
	return s.ids, nil
}

func newEnv(t *testing.T, config MessageConfig) *env {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	e := &env{
		users:    repositories.NewUserRepository(db),
		chats:    repositories.NewChatRepository(db),
		messages: repositories.NewMessageRepository(db),
		notifier: runtime.NewNotifier(),
		events:   make(chan event.DomainEvent, 64),
	}
	dispatcher := runtime.NewDispatcher(log, e.events)
	e.chat = NewChatService(e.users, e.chats, e.notifier, dispatcher, log)
	e.message = NewMessageService(e.users, e.chats, e.messages, e.notifier, dispatcher, &stubSearcher{}, config, log)
	e.home = NewHomeService(e.users, e.chats, e.message)
	return e
}

func defaultConfig() MessageConfig {
	return MessageConfig{
		PollTimeout:      2 * time.Second,
		PollInterval:     time.Second,
		MaxContentLength: 100,
		SearchLimit:      10,
		SearchMaxLimit:   50,
	}
}

func (e *env) register(t *testing.T, tag string, isAdmin bool) auth.Identity {
	t.Helper()
	user, err := e.users.CreateUser(tag, "hash", isAdmin)
	require.NoError(t, err)
	return auth.IdentityOf(user)
}

// group creates a group owned by owner with the given members already joined.
func (e *env) group(t *testing.T, owner auth.Identity, members ...auth.Identity) domain.ChatID {
	t.Helper()
	chat, err := e.chat.CreateGroup(owner, "group")
	require.NoError(t, err)
	for _, member := range members {
		require.NoError(t, e.chat.Invite(owner, chat.ID, member.Tag))
		require.NoError(t, e.chat.Accept(member, chat.ID))
	}
	return chat.ID
}
