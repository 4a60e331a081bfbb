// Package domain contains core concepts of the chat system.
// This file defines Message entities and their read model.
// Messages are immutable once appended.
package domain

import "time"

// MessageID is allocated in increasing order. Zero or a negative value is
// the "nothing seen yet" sentinel used by pollers.
type MessageID int64

// UnknownAuthor is shown when the author record no longer exists.
const UnknownAuthor = "Unknown"

// Message is ordered by (Created, ID) ascending inside a chat.
type Message struct {
	ID      MessageID
	ChatID  ChatID
	UserID  UserID
	Created time.Time
	Content string
}

// MessageView is a message annotated with its author's tag.
type MessageView struct {
	ID       MessageID `json:"id"`
	Content  string    `json:"content"`
	Username string    `json:"username"`
	Created  int64     `json:"created"`
}
