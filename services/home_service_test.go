package services

import (
	"chat-poll/auth"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHomeService_Home(t *testing.T) {
	t.Run("should return an empty view for an anonymous visitor", func(t *testing.T) {
		req := require.New(t)
		e := newEnv(t, defaultConfig())

		view, err := e.home.Home(auth.Identity{}, 0)

		req.NoError(err)
		req.Nil(view.Identity)
		req.Empty(view.Chats)
		req.NotNil(view.Messages)
	})

	t.Run("should list chats members invites and the open chat", func(t *testing.T) {
		req := require.New(t)
		e := newEnv(t, defaultConfig())
		alice, bob := e.register(t, "alice", false), e.register(t, "bob", false)
		e.register(t, "carol", false)
		chatID := e.group(t, alice, bob)
		other := e.group(t, bob)
		req.NoError(e.chat.Invite(bob, other, "alice"))
		_, err := e.chat.CreateDM(alice, "carol")
		req.NoError(err)
		_, err = e.message.Send(bob, chatID, "hi alice")
		req.NoError(err)

		view, err := e.home.Home(alice, chatID)

		req.NoError(err)
		req.Equal("alice", view.Identity.Tag)
		req.Len(view.Chats, 2)
		req.Len(view.Members[chatID], 2)
		req.Len(view.KnownUsers, 3)
		req.Len(view.Invites, 1)
		req.Equal(other, view.Invites[0].ID)
		req.Len(view.Messages, 1)
		req.Equal("bob", view.Messages[0].Username)
		req.True(view.IsChatAdmin)
	})

	t.Run("should not show messages of a chat the user is not in", func(t *testing.T) {
		req := require.New(t)
		e := newEnv(t, defaultConfig())
		alice, bob := e.register(t, "alice", false), e.register(t, "bob", false)
		chatID := e.group(t, alice)
		_, err := e.message.Send(alice, chatID, "secret")
		req.NoError(err)

		view, err := e.home.Home(bob, chatID)

		req.NoError(err)
		req.Empty(view.Messages)
		req.False(view.IsChatAdmin)
	})
}
