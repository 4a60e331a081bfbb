package services

import (
	"chat-poll/auth"
	"chat-poll/domain"
	"chat-poll/domain/event"
	"chat-poll/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChatService_CreateDM(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, defaultConfig())
	alice, bob := e.register(t, "alice", false), e.register(t, "bob", false)

	chat, err := e.chat.CreateDM(alice, "bob")
	req.NoError(err)
	req.False(chat.IsGroup)

	_, err = e.chat.CreateDM(bob, "alice")
	req.ErrorIs(err, errors.ErrDMExists)
	_, err = e.chat.CreateDM(alice, "alice")
	req.ErrorIs(err, errors.ErrSelfDM)
	_, err = e.chat.CreateDM(alice, "nobody")
	req.ErrorIs(err, errors.ErrUserNotFound)
	_, err = e.chat.CreateDM(auth.Identity{}, "bob")
	req.ErrorIs(err, errors.ErrUnauthorized)

	// A DM is not a group: no invites, no kicks
	req.ErrorIs(e.chat.Invite(alice, chat.ID, "bob"), errors.ErrUnauthorized)
	root := e.register(t, "root", true)
	req.ErrorIs(e.chat.Invite(root, chat.ID, "bob"), errors.ErrNotGroup)
}

func TestChatService_CreateGroup(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, defaultConfig())
	alice := e.register(t, "alice", false)

	_, err := e.chat.CreateGroup(alice, "  ")
	req.ErrorIs(err, errors.ErrEmptyName)

	chat, err := e.chat.CreateGroup(alice, "friends")
	req.NoError(err)

	state, err := e.chat.State(chat.ID, alice.UserID)
	req.NoError(err)
	req.Equal(domain.StateAdmin, state)
}

func TestChatService_Membership_State_Machine(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, defaultConfig())
	alice, bob := e.register(t, "alice", false), e.register(t, "bob", false)
	chatID := e.group(t, alice)

	state := func() domain.MembershipState {
		s, err := e.chat.State(chatID, bob.UserID)
		req.NoError(err)
		return s
	}
	req.Equal(domain.StateNone, state())

	// Bob cannot accept without an invite
	req.ErrorIs(e.chat.Accept(bob, chatID), errors.ErrUnauthorized)

	// NONE -> INVITED
	req.NoError(e.chat.Invite(alice, chatID, "bob"))
	req.Equal(domain.StateInvited, state())
	req.ErrorIs(e.chat.Invite(alice, chatID, "bob"), errors.ErrAlreadyInvited)

	// INVITED -> NONE
	req.NoError(e.chat.Reject(bob, chatID))
	req.Equal(domain.StateNone, state())
	req.ErrorIs(e.chat.Reject(bob, chatID), errors.ErrUnauthorized)

	// NONE -> INVITED -> MEMBER
	req.NoError(e.chat.Invite(alice, chatID, "bob"))
	req.NoError(e.chat.Accept(bob, chatID))
	req.Equal(domain.StateMember, state())
	req.ErrorIs(e.chat.Invite(alice, chatID, "bob"), errors.ErrAlreadyMember)

	// MEMBER -> ADMIN
	req.NoError(e.chat.Promote(alice, chatID, "bob"))
	req.Equal(domain.StateAdmin, state())

	// ADMIN -> NONE
	req.NoError(e.chat.Kick(alice, chatID, "bob"))
	req.Equal(domain.StateNone, state())
}

func TestChatService_Admin_Only_Operations(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, defaultConfig())
	alice, bob, carol := e.register(t, "alice", false), e.register(t, "bob", false), e.register(t, "carol", false)
	chatID := e.group(t, alice, bob)

	// Bob is a plain member
	req.ErrorIs(e.chat.Invite(bob, chatID, "carol"), errors.ErrUnauthorized)
	req.ErrorIs(e.chat.Rename(bob, chatID, "mine"), errors.ErrUnauthorized)
	req.ErrorIs(e.chat.Kick(bob, chatID, "alice"), errors.ErrUnauthorized)
	req.ErrorIs(e.chat.Promote(bob, chatID, "bob"), errors.ErrUnauthorized)

	// Carol is not even a member
	req.ErrorIs(e.chat.Invite(carol, chatID, "carol"), errors.ErrUnauthorized)

	req.NoError(e.chat.Rename(alice, chatID, "renamed"))
	req.ErrorIs(e.chat.Rename(alice, chatID, ""), errors.ErrEmptyName)
	chat, err := e.chats.GetChat(chatID)
	req.NoError(err)
	req.Equal("renamed", chat.Name)

	req.ErrorIs(e.chat.Invite(alice, chatID, "nobody"), errors.ErrUserNotFound)
	req.ErrorIs(e.chat.Kick(alice, chatID, "carol"), errors.ErrNotMember)
}

func TestChatService_Global_Admin_Policy(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, defaultConfig())
	alice, bob := e.register(t, "alice", false), e.register(t, "bob", false)
	root := e.register(t, "root", true)
	chatID := e.group(t, alice, bob)

	// Global admins bypass the chat admin check without being members
	req.NoError(e.chat.Rename(root, chatID, "moderated"))
	req.NoError(e.chat.Promote(root, chatID, "bob"))
	req.NoError(e.chat.Kick(root, chatID, "bob"))

	// But they cannot read, send or join without an invite
	_, err := e.message.History(root, chatID)
	req.ErrorIs(err, errors.ErrUnauthorized)
	_, err = e.message.Send(root, chatID, "hello")
	req.ErrorIs(err, errors.ErrUnauthorized)
	req.ErrorIs(e.chat.Accept(root, chatID), errors.ErrUnauthorized)
}

func TestChatService_Kick_Refuses_Last_Admin(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, defaultConfig())
	alice, bob := e.register(t, "alice", false), e.register(t, "bob", false)
	chatID := e.group(t, alice, bob)

	req.ErrorIs(e.chat.Kick(alice, chatID, "alice"), errors.ErrLastAdmin)

	members, err := e.chat.ListMembers(alice, chatID)
	req.NoError(err)
	req.Len(members, 2)
}

func TestChatService_Kick_Publishes_And_Wakes(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, defaultConfig())
	alice, bob := e.register(t, "alice", false), e.register(t, "bob", false)
	chatID := e.group(t, alice, bob)

	wake, leave := e.notifier.Wait(chatID)
	defer leave()
	req.NoError(e.chat.Kick(alice, chatID, "bob"))

	select {
	case <-wake:
	default:
		req.Fail("pollers of the chat should have been woken")
	}
	evt := <-e.events
	removed, ok := evt.(event.MemberRemoved)
	req.True(ok)
	req.Equal(bob.UserID, removed.User)
	req.Equal(alice.UserID, removed.By)
}

func TestChatService_Read_Models(t *testing.T) {
	req := require.New(t)
	e := newEnv(t, defaultConfig())
	alice, bob := e.register(t, "alice", false), e.register(t, "bob", false)
	chatID := e.group(t, alice)
	req.NoError(e.chat.Invite(alice, chatID, "bob"))

	invites, err := e.chat.ListInvites(bob)
	req.NoError(err)
	req.Len(invites, 1)
	req.Equal(chatID, invites[0].ID)

	chats, err := e.chat.ListChats(bob)
	req.NoError(err)
	req.Empty(chats)

	_, err = e.chat.ListMembers(bob, chatID)
	req.ErrorIs(err, errors.ErrUnauthorized)
}
