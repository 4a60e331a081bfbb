// Package domain contains core concepts of the chat system.
// This file defines chats, memberships and invitations.
// No runtime, network, or storage logic should be added here.
package domain

// ChatID identifies a DM or a group chat.
type ChatID int64

const (
	DMName       = "DM"
	DefaultColor = "#fff"
)

type Chat struct {
	ID      ChatID `json:"id"`
	Name    string `json:"name"`
	IsGroup bool   `json:"is_group"`
}

// ChatMember is a live membership. Its existence is the membership.
type ChatMember struct {
	ID          int64  `json:"id"`
	ChatID      ChatID `json:"chat_id"`
	UserID      UserID `json:"user_id"`
	IsChatAdmin bool   `json:"is_chat_admin"`
	Color       string `json:"color"`
}

// ChatInvite is a pending offer to join a group.
// A user never has an invite and a membership for the same chat.
type ChatInvite struct {
	ID     int64
	ChatID ChatID
	UserID UserID
}

// MembershipState is the position of a (chat, user) pair in the
// NONE -> INVITED -> MEMBER -> ADMIN lifecycle.
type MembershipState int

const (
	StateNone MembershipState = iota
	StateInvited
	StateMember
	StateAdmin
)

func (s MembershipState) String() string {
	switch s {
	case StateInvited:
		return "INVITED"
	case StateMember:
		return "MEMBER"
	case StateAdmin:
		return "ADMIN"
	default:
		return "NONE"
	}
}
