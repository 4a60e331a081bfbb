//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"chat-poll/domain"
	"chat-poll/errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type IMessageRepository interface {
	AppendMessage(chatID domain.ChatID, userID domain.UserID, content string) (domain.Message, error)
	GetMessage(chatID domain.ChatID, id domain.MessageID) (domain.Message, error)
	GetMessagesSince(chatID domain.ChatID, after domain.MessageID) ([]domain.Message, error)
	LatestMessageID(chatID domain.ChatID) (domain.MessageID, error)
}

// appendStripes is the number of locks appends are spread over by chat id.
const appendStripes = 64

type MessageRepository struct {
	db  *badger.DB
	now func() time.Time
	ids *sequence

	// Appends to one chat hold the same stripe from id allocation to
	// commit, so a chat's messages become visible in id order.
	stripes [appendStripes]sync.Mutex
}

func NewMessageRepository(db *badger.DB) *MessageRepository {
	return &MessageRepository{db: db, now: time.Now, ids: newSequence(db, "message")}
}

// Close returns the unused message ids leased from the store.
func (m *MessageRepository) Close() error {
	return m.ids.release()
}

type messageRecord struct {
	ID      int64  `cbor:"id"`
	ChatID  int64  `cbor:"chat_id"`
	UserID  int64  `cbor:"user_id"`
	Created int64  `cbor:"created"`
	Content string `cbor:"content"`
}

// AppendMessage stores a message as "msg:{chat}:{id}".
// Appends to different chats run concurrently. Within a chat they are
// serialized, and the membership check shares the write transaction, so a
// user kicked concurrently cannot slip a message in after the kick commits.
// A failed append leaves a gap in the ids.
func (m *MessageRepository) AppendMessage(chatID domain.ChatID, userID domain.UserID, content string) (domain.Message, error) {
	stripe := &m.stripes[uint64(chatID)%appendStripes]
	stripe.Lock()
	defer stripe.Unlock()

	id, err := m.ids.next()
	if err != nil {
		return domain.Message{}, fmt.Errorf("append message to chat %d: %w", chatID, err)
	}
	created := messageRecord{
		ID:      id,
		ChatID:  int64(chatID),
		UserID:  int64(userID),
		Created: m.now().Unix(),
		Content: content,
	}
	err = update(m.db, func(txn *badger.Txn) error {
		if err := getRecord(txn, chatKey(chatID), &chatRecord{}); err != nil {
			return notFound(err, errors.ErrChatNotFound)
		}
		member, err := exists(txn, memberKey(chatID, userID))
		if err != nil {
			return err
		}
		if !member {
			return errors.ErrNotMember
		}
		return setRecord(txn, messageKey(chatID, domain.MessageID(id)), created)
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("append message to chat %d: %w", chatID, err)
	}
	return toMessage(created), nil
}

func (m *MessageRepository) GetMessage(chatID domain.ChatID, id domain.MessageID) (domain.Message, error) {
	var record messageRecord
	err := m.db.View(func(txn *badger.Txn) error {
		return getRecord(txn, messageKey(chatID, id), &record)
	})
	if err != nil {
		return domain.Message{}, notFound(err, errors.ErrMessageNotFound)
	}
	return toMessage(record), nil
}

// GetMessagesSince returns the messages of a chat with an id strictly
// greater than after, ascending. after <= 0 returns the whole history.
func (m *MessageRepository) GetMessagesSince(chatID domain.ChatID, after domain.MessageID) ([]domain.Message, error) {
	if after < 0 {
		after = 0
	}
	var messages []domain.Message
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := messagePrefix(chatID)
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(messageKey(chatID, after+1)); it.ValidForPrefix(prefix); it.Next() {
			var record messageRecord
			if err := it.Item().Value(func(val []byte) error {
				return unmarshal(val, &record)
			}); err != nil {
				return err
			}
			messages = append(messages, toMessage(record))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read messages of chat %d: %w", chatID, err)
	}
	return messages, nil
}

// LatestMessageID returns the highest message id of a chat, 0 when empty.
func (m *MessageRepository) LatestMessageID(chatID domain.ChatID) (domain.MessageID, error) {
	var latest int64
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := messagePrefix(chatID)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		options.PrefetchValues = false
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration starts at the greatest key <= the seek key.
		it.Seek(append(prefix, 0xFF))
		if !it.ValidForPrefix(prefix) {
			return nil
		}
		var err error
		latest, err = lastSegment(it.Item().Key())
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("latest message of chat %d: %w", chatID, err)
	}
	return domain.MessageID(latest), nil
}

func toMessage(record messageRecord) domain.Message {
	return domain.Message{
		ID:      domain.MessageID(record.ID),
		ChatID:  domain.ChatID(record.ChatID),
		UserID:  domain.UserID(record.UserID),
		Created: time.Unix(record.Created, 0).UTC(),
		Content: record.Content,
	}
}
