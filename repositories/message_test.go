package repositories

import (
	"chat-poll/domain"
	"chat-poll/errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Append_And_Read_Messages(t *testing.T) {
	req := require.New(t)
	f, db := newFixture(t)
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	chat, err := f.chats.CreateDM(alice.ID, bob.ID)
	req.NoError(err)

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repository := NewMessageRepository(db)
	repository.now = func() time.Time { return at }

	latest, err := repository.LatestMessageID(chat.ID)
	req.NoError(err)
	req.Zero(latest)

	var appended []domain.Message
	for _, author := range []domain.UserID{alice.ID, bob.ID, alice.ID} {
		message, err := repository.AppendMessage(chat.ID, author, "hello")
		req.NoError(err)
		req.Equal(at, message.Created)
		appended = append(appended, message)
	}

	all, err := repository.GetMessagesSince(chat.ID, 0)
	req.NoError(err)
	req.Equal(appended, all)

	since, err := repository.GetMessagesSince(chat.ID, appended[0].ID)
	req.NoError(err)
	req.Equal(appended[1:], since)

	none, err := repository.GetMessagesSince(chat.ID, appended[2].ID)
	req.NoError(err)
	req.Empty(none)

	latest, err = repository.LatestMessageID(chat.ID)
	req.NoError(err)
	req.Equal(appended[2].ID, latest)

	fetched, err := repository.GetMessage(chat.ID, appended[1].ID)
	req.NoError(err)
	req.Equal(appended[1], fetched)
}

func Test_Messages_Are_Isolated_Per_Chat(t *testing.T) {
	req := require.New(t)
	f, db := newFixture(t)
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")
	first, err := f.chats.CreateDM(alice.ID, bob.ID)
	req.NoError(err)
	second, err := f.chats.CreateDM(alice.ID, carol.ID)
	req.NoError(err)
	repository := NewMessageRepository(db)

	_, err = repository.AppendMessage(first.ID, alice.ID, "to bob")
	req.NoError(err)
	toCarol, err := repository.AppendMessage(second.ID, alice.ID, "to carol")
	req.NoError(err)

	messages, err := repository.GetMessagesSince(second.ID, -5)
	req.NoError(err)
	req.Equal([]domain.Message{toCarol}, messages)

	latest, err := repository.LatestMessageID(first.ID)
	req.NoError(err)
	req.Less(latest, toCarol.ID)
}

func Test_Append_Requires_Membership(t *testing.T) {
	req := require.New(t)
	f, db := newFixture(t)
	alice, bob, eve := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "eve")
	chat, err := f.chats.CreateDM(alice.ID, bob.ID)
	req.NoError(err)
	repository := NewMessageRepository(db)

	_, err = repository.AppendMessage(chat.ID, eve.ID, "let me in")
	req.ErrorIs(err, errors.ErrNotMember)
	_, err = repository.AppendMessage(99, alice.ID, "nowhere")
	req.ErrorIs(err, errors.ErrChatNotFound)

	messages, err := repository.GetMessagesSince(chat.ID, 0)
	req.NoError(err)
	req.Empty(messages)
	_, err = repository.GetMessage(chat.ID, 1)
	req.ErrorIs(err, errors.ErrMessageNotFound)
}

func Test_Concurrent_Appends_All_Commit_In_Order(t *testing.T) {
	req := require.New(t)
	f, db := newFixture(t)
	alice := f.user(t, "alice")
	senders := []domain.User{alice, f.user(t, "bob"), f.user(t, "carol"), f.user(t, "dave")}
	repository := NewMessageRepository(db)

	// Given four groups everybody belongs to
	var chats []domain.ChatID
	for _, name := range []string{"one", "two", "three", "four"} {
		chat, err := f.chats.CreateGroup(name, alice.ID)
		req.NoError(err)
		for _, sender := range senders[1:] {
			_, err = f.chats.CreateInvite(chat.ID, sender.ID)
			req.NoError(err)
			_, err = f.chats.AcceptInvite(chat.ID, sender.ID)
			req.NoError(err)
		}
		chats = append(chats, chat.ID)
	}

	// When every member sends into every group at the same time
	const perSender = 25
	var wg sync.WaitGroup
	errs := make(chan error, len(chats)*len(senders)*perSender)
	for _, chatID := range chats {
		for _, sender := range senders {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range perSender {
					if _, err := repository.AppendMessage(chatID, sender.ID, "hi"); err != nil {
						errs <- err
					}
				}
			}()
		}
	}
	wg.Wait()
	close(errs)

	// Then no append fails and every chat reads back its full history in order
	for err := range errs {
		req.NoError(err)
	}
	seen := make(map[domain.MessageID]bool)
	for _, chatID := range chats {
		messages, err := repository.GetMessagesSince(chatID, 0)
		req.NoError(err)
		req.Len(messages, len(senders)*perSender)
		for i, message := range messages {
			req.False(seen[message.ID], "duplicate id %d", message.ID)
			seen[message.ID] = true
			if i > 0 {
				req.Less(messages[i-1].ID, message.ID)
				req.False(message.Created.Before(messages[i-1].Created))
			}
		}
		latest, err := repository.LatestMessageID(chatID)
		req.NoError(err)
		req.Equal(messages[len(messages)-1].ID, latest)
	}
}

func Test_Reopened_Repository_Keeps_Ids_Increasing(t *testing.T) {
	req := require.New(t)
	f, db := newFixture(t)
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	chat, err := f.chats.CreateDM(alice.ID, bob.ID)
	req.NoError(err)

	// Given a repository that appended once and was closed
	first := NewMessageRepository(db)
	before, err := first.AppendMessage(chat.ID, alice.ID, "before")
	req.NoError(err)
	req.NoError(first.Close())

	// When a new repository appends on the same store
	after, err := NewMessageRepository(db).AppendMessage(chat.ID, bob.ID, "after")

	// Then the new id follows the old one and the delta sees it
	req.NoError(err)
	req.Equal(before.ID+1, after.ID)
	delta, err := first.GetMessagesSince(chat.ID, before.ID)
	req.NoError(err)
	req.Equal([]domain.Message{after}, delta)
}

func Test_Describe_Records(t *testing.T) {
	req := require.New(t)
	f, _ := newFixture(t)
	alice := f.user(t, "alice")
	chat, err := f.chats.CreateGroup("friends", alice.ID)
	req.NoError(err)

	kind, detail, err := Describe(chatKey(chat.ID), mustMarshal(t, chatRecord{ID: int64(chat.ID), Name: "friends", IsGroup: true}))
	req.NoError(err)
	req.Equal("chat", kind)
	req.Contains(detail, `name="friends"`)

	kind, detail, err = Describe(seqKey("user"), []byte{0, 0, 0, 0, 0, 0, 0, 1})
	req.NoError(err)
	req.Equal("seq", kind)
	req.Equal("lease=1", detail)
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := marshal(v)
	require.NoError(t, err)
	return data
}
