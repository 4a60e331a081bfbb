package event

import (
	"chat-poll/domain"
	"time"
)

type DomainEvent interface {
	ChatID() domain.ChatID
	OccurredAt() time.Time
}

// MessageAppended is published once a message has been committed.
type MessageAppended struct {
	ID      domain.MessageID
	Chat    domain.ChatID
	Author  domain.UserID
	Content string
	At      time.Time
}

func (m MessageAppended) ChatID() domain.ChatID { return m.Chat }

func (m MessageAppended) OccurredAt() time.Time { return m.At }

// MemberRemoved is published when a membership row is deleted by a kick.
type MemberRemoved struct {
	Chat domain.ChatID
	User domain.UserID
	By   domain.UserID
	At   time.Time
}

func (m MemberRemoved) ChatID() domain.ChatID { return m.Chat }

func (m MemberRemoved) OccurredAt() time.Time { return m.At }

// MessageCensored is published when moderation replaced words of a message
// before it was stored.
type MessageCensored struct {
	Chat     domain.ChatID
	Author   domain.UserID
	Words    []string
	Language string
	At       time.Time
}

func (m MessageCensored) ChatID() domain.ChatID { return m.Chat }

func (m MessageCensored) OccurredAt() time.Time { return m.At }
