//go:generate go run go.uber.org/mock/mockgen -source=chat.go -destination=../mocks/mock_chat_repository.go -package=mocks
package repositories

import (
	"chat-poll/domain"
	"chat-poll/errors"
	stderrors "errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

// IChatRepository stores chats together with their membership and invite
// rows. Every multi-step transition runs inside one Badger transaction.
type IChatRepository interface {
	CreateDM(first, second domain.UserID) (domain.Chat, error)
	CreateGroup(name string, creator domain.UserID) (domain.Chat, error)
	GetChat(id domain.ChatID) (domain.Chat, error)
	RenameChat(id domain.ChatID, name string) error
	DMExists(first, second domain.UserID) (bool, error)

	GetMember(chatID domain.ChatID, userID domain.UserID) (domain.ChatMember, error)
	ListMembers(chatID domain.ChatID) ([]domain.ChatMember, error)
	ListChats(userID domain.UserID) ([]domain.Chat, error)
	SetChatAdmin(chatID domain.ChatID, userID domain.UserID, isAdmin bool) error
	RemoveMember(chatID domain.ChatID, userID domain.UserID) error

	CreateInvite(chatID domain.ChatID, userID domain.UserID) (domain.ChatInvite, error)
	GetInvite(chatID domain.ChatID, userID domain.UserID) (domain.ChatInvite, error)
	ListInvites(chatID domain.ChatID) ([]domain.ChatInvite, error)
	ListUserInvites(userID domain.UserID) ([]domain.Chat, error)
	AcceptInvite(chatID domain.ChatID, userID domain.UserID) (domain.ChatMember, error)
	RemoveInvite(chatID domain.ChatID, userID domain.UserID) error
}

type ChatRepository struct {
	db        *badger.DB
	chatIDs   *sequence
	memberIDs *sequence
	inviteIDs *sequence
}

func NewChatRepository(db *badger.DB) *ChatRepository {
	return &ChatRepository{
		db:        db,
		chatIDs:   newSequence(db, "chat"),
		memberIDs: newSequence(db, "member"),
		inviteIDs: newSequence(db, "invite"),
	}
}

// Close returns the unused chat, member and invite ids leased from the store.
func (c *ChatRepository) Close() error {
	return stderrors.Join(c.chatIDs.release(), c.memberIDs.release(), c.inviteIDs.release())
}

type chatRecord struct {
	ID      int64  `cbor:"id"`
	Name    string `cbor:"name"`
	IsGroup bool   `cbor:"is_group"`
}

type memberRecord struct {
	ID          int64  `cbor:"id"`
	ChatID      int64  `cbor:"chat_id"`
	UserID      int64  `cbor:"user_id"`
	IsChatAdmin bool   `cbor:"is_chat_admin"`
	Color       string `cbor:"color"`
}

type inviteRecord struct {
	ID     int64 `cbor:"id"`
	ChatID int64 `cbor:"chat_id"`
	UserID int64 `cbor:"user_id"`
}

// CreateDM creates a non-group chat with exactly the two given members.
// The dm:{low}:{high} key makes the pair unique in either order.
func (c *ChatRepository) CreateDM(first, second domain.UserID) (domain.Chat, error) {
	if first == second {
		return domain.Chat{}, errors.ErrSelfDM
	}
	chatID, err := c.chatIDs.next()
	if err != nil {
		return domain.Chat{}, fmt.Errorf("create dm: %w", err)
	}
	memberIDs, err := c.memberIDs.take(2)
	if err != nil {
		return domain.Chat{}, fmt.Errorf("create dm: %w", err)
	}
	var created chatRecord
	err = update(c.db, func(txn *badger.Txn) error {
		for _, userID := range []domain.UserID{first, second} {
			if err := requireUser(txn, userID); err != nil {
				return err
			}
		}
		taken, err := exists(txn, dmKey(first, second))
		if err != nil {
			return err
		}
		if taken {
			return errors.ErrDMExists
		}
		if created, err = insertChat(txn, chatID, domain.DMName, false); err != nil {
			return err
		}
		if err = setRecord(txn, dmKey(first, second), created.ID); err != nil {
			return err
		}
		if _, err = insertMember(txn, memberIDs[0], domain.ChatID(chatID), first, false); err != nil {
			return err
		}
		_, err = insertMember(txn, memberIDs[1], domain.ChatID(chatID), second, false)
		return err
	})
	if err != nil {
		return domain.Chat{}, fmt.Errorf("create dm: %w", err)
	}
	return toChat(created), nil
}

// CreateGroup creates the chat, the creator's membership and the creator's
// admin flag as one unit, so a group is never left without an admin.
func (c *ChatRepository) CreateGroup(name string, creator domain.UserID) (domain.Chat, error) {
	chatID, err := c.chatIDs.next()
	if err != nil {
		return domain.Chat{}, fmt.Errorf("create group: %w", err)
	}
	memberID, err := c.memberIDs.next()
	if err != nil {
		return domain.Chat{}, fmt.Errorf("create group: %w", err)
	}
	var created chatRecord
	err = update(c.db, func(txn *badger.Txn) error {
		if err := requireUser(txn, creator); err != nil {
			return err
		}
		var err error
		if created, err = insertChat(txn, chatID, name, true); err != nil {
			return err
		}
		_, err = insertMember(txn, memberID, domain.ChatID(chatID), creator, true)
		return err
	})
	if err != nil {
		return domain.Chat{}, fmt.Errorf("create group: %w", err)
	}
	return toChat(created), nil
}

func (c *ChatRepository) GetChat(id domain.ChatID) (domain.Chat, error) {
	var record chatRecord
	err := c.db.View(func(txn *badger.Txn) error {
		return getRecord(txn, chatKey(id), &record)
	})
	if err != nil {
		return domain.Chat{}, notFound(err, errors.ErrChatNotFound)
	}
	return toChat(record), nil
}

func (c *ChatRepository) RenameChat(id domain.ChatID, name string) error {
	err := update(c.db, func(txn *badger.Txn) error {
		var record chatRecord
		if err := getRecord(txn, chatKey(id), &record); err != nil {
			return err
		}
		record.Name = name
		return setRecord(txn, chatKey(id), record)
	})
	return notFound(err, errors.ErrChatNotFound)
}

func (c *ChatRepository) DMExists(first, second domain.UserID) (bool, error) {
	var found bool
	err := c.db.View(func(txn *badger.Txn) error {
		var err error
		found, err = exists(txn, dmKey(first, second))
		return err
	})
	return found, err
}

func (c *ChatRepository) GetMember(chatID domain.ChatID, userID domain.UserID) (domain.ChatMember, error) {
	var record memberRecord
	err := c.db.View(func(txn *badger.Txn) error {
		return getRecord(txn, memberKey(chatID, userID), &record)
	})
	if err != nil {
		return domain.ChatMember{}, notFound(err, errors.ErrNotMember)
	}
	return toMember(record), nil
}

func (c *ChatRepository) ListMembers(chatID domain.ChatID) ([]domain.ChatMember, error) {
	var records []memberRecord
	err := c.db.View(func(txn *badger.Txn) error {
		var err error
		records, err = scanRecords[memberRecord](txn, memberPrefix(chatID))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list members of chat %d: %w", chatID, err)
	}
	return lo.Map(records, func(item memberRecord, _ int) domain.ChatMember {
		return toMember(item)
	}), nil
}

// ListChats returns the chats userID is a member of, ordered by id.
func (c *ChatRepository) ListChats(userID domain.UserID) ([]domain.Chat, error) {
	chats, err := c.chatsIndexedBy(membershipPrefix(userID))
	if err != nil {
		return nil, fmt.Errorf("list chats of user %d: %w", userID, err)
	}
	return chats, nil
}

// SetChatAdmin flips the admin flag of an existing member. Demoting the
// last admin of a group is refused.
func (c *ChatRepository) SetChatAdmin(chatID domain.ChatID, userID domain.UserID, isAdmin bool) error {
	err := update(c.db, func(txn *badger.Txn) error {
		var record memberRecord
		if err := getRecord(txn, memberKey(chatID, userID), &record); err != nil {
			return notFound(err, errors.ErrNotMember)
		}
		if record.IsChatAdmin == isAdmin {
			return nil
		}
		if !isAdmin {
			if err := ensureAnotherAdmin(txn, chatID, userID); err != nil {
				return err
			}
		}
		record.IsChatAdmin = isAdmin
		return setRecord(txn, memberKey(chatID, userID), record)
	})
	if err != nil {
		return fmt.Errorf("set chat admin: %w", err)
	}
	return nil
}

// RemoveMember deletes a membership row. A kicked admin loses the admin
// flag with the row. Removing the last admin of a group is refused.
func (c *ChatRepository) RemoveMember(chatID domain.ChatID, userID domain.UserID) error {
	err := update(c.db, func(txn *badger.Txn) error {
		var record memberRecord
		if err := getRecord(txn, memberKey(chatID, userID), &record); err != nil {
			return notFound(err, errors.ErrNotMember)
		}
		if record.IsChatAdmin {
			if err := ensureAnotherAdmin(txn, chatID, userID); err != nil {
				return err
			}
		}
		if err := txn.Delete(memberKey(chatID, userID)); err != nil {
			return err
		}
		return txn.Delete(membershipKey(userID, chatID))
	})
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	return nil
}

// CreateInvite moves a pair from NONE to INVITED. The member and invite
// keys are checked inside the write transaction, so two admins inviting the
// same user concurrently produce one invite and one ErrAlreadyInvited.
func (c *ChatRepository) CreateInvite(chatID domain.ChatID, userID domain.UserID) (domain.ChatInvite, error) {
	id, err := c.inviteIDs.next()
	if err != nil {
		return domain.ChatInvite{}, fmt.Errorf("create invite: %w", err)
	}
	var created inviteRecord
	err = update(c.db, func(txn *badger.Txn) error {
		if err := getRecord(txn, chatKey(chatID), &chatRecord{}); err != nil {
			return notFound(err, errors.ErrChatNotFound)
		}
		if err := requireUser(txn, userID); err != nil {
			return err
		}
		invited, err := exists(txn, inviteKey(chatID, userID))
		if err != nil {
			return err
		}
		if invited {
			return errors.ErrAlreadyInvited
		}
		member, err := exists(txn, memberKey(chatID, userID))
		if err != nil {
			return err
		}
		if member {
			return errors.ErrAlreadyMember
		}
		created = inviteRecord{ID: id, ChatID: int64(chatID), UserID: int64(userID)}
		if err = setRecord(txn, inviteKey(chatID, userID), created); err != nil {
			return err
		}
		return txn.Set(invitationKey(userID, chatID), nil)
	})
	if err != nil {
		return domain.ChatInvite{}, fmt.Errorf("create invite: %w", err)
	}
	return toInvite(created), nil
}

func (c *ChatRepository) GetInvite(chatID domain.ChatID, userID domain.UserID) (domain.ChatInvite, error) {
	var record inviteRecord
	err := c.db.View(func(txn *badger.Txn) error {
		return getRecord(txn, inviteKey(chatID, userID), &record)
	})
	if err != nil {
		return domain.ChatInvite{}, notFound(err, errors.ErrInviteNotFound)
	}
	return toInvite(record), nil
}

func (c *ChatRepository) ListInvites(chatID domain.ChatID) ([]domain.ChatInvite, error) {
	var records []inviteRecord
	err := c.db.View(func(txn *badger.Txn) error {
		var err error
		records, err = scanRecords[inviteRecord](txn, invitePrefix(chatID))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list invites of chat %d: %w", chatID, err)
	}
	return lo.Map(records, func(item inviteRecord, _ int) domain.ChatInvite {
		return toInvite(item)
	}), nil
}

// ListUserInvites returns the chats userID has a pending invite to.
func (c *ChatRepository) ListUserInvites(userID domain.UserID) ([]domain.Chat, error) {
	chats, err := c.chatsIndexedBy(invitationPrefix(userID))
	if err != nil {
		return nil, fmt.Errorf("list invites of user %d: %w", userID, err)
	}
	return chats, nil
}

// AcceptInvite deletes the invite and inserts the membership in one
// transaction: a failure leaves the user INVITED, never in neither state.
func (c *ChatRepository) AcceptInvite(chatID domain.ChatID, userID domain.UserID) (domain.ChatMember, error) {
	memberID, err := c.memberIDs.next()
	if err != nil {
		return domain.ChatMember{}, fmt.Errorf("accept invite: %w", err)
	}
	var created memberRecord
	err = update(c.db, func(txn *badger.Txn) error {
		if err := deleteInvite(txn, chatID, userID); err != nil {
			return err
		}
		var err error
		created, err = insertMember(txn, memberID, chatID, userID, false)
		return err
	})
	if err != nil {
		return domain.ChatMember{}, fmt.Errorf("accept invite: %w", err)
	}
	return toMember(created), nil
}

func (c *ChatRepository) RemoveInvite(chatID domain.ChatID, userID domain.UserID) error {
	err := update(c.db, func(txn *badger.Txn) error {
		return deleteInvite(txn, chatID, userID)
	})
	if err != nil {
		return fmt.Errorf("remove invite: %w", err)
	}
	return nil
}

func (c *ChatRepository) chatsIndexedBy(prefix []byte) ([]domain.Chat, error) {
	var chats []domain.Chat
	err := c.db.View(func(txn *badger.Txn) error {
		keys, err := scanKeys(txn, prefix)
		if err != nil {
			return err
		}
		for _, key := range keys {
			id, err := lastSegment(key)
			if err != nil {
				return err
			}
			var record chatRecord
			if err = getRecord(txn, chatKey(domain.ChatID(id)), &record); err != nil {
				return err
			}
			chats = append(chats, toChat(record))
		}
		return nil
	})
	return chats, err
}

func insertChat(txn *badger.Txn, id int64, name string, isGroup bool) (chatRecord, error) {
	record := chatRecord{ID: id, Name: name, IsGroup: isGroup}
	return record, setRecord(txn, chatKey(domain.ChatID(id)), record)
}

func insertMember(txn *badger.Txn, id int64, chatID domain.ChatID, userID domain.UserID, isAdmin bool) (memberRecord, error) {
	member, err := exists(txn, memberKey(chatID, userID))
	if err != nil {
		return memberRecord{}, err
	}
	if member {
		return memberRecord{}, errors.ErrAlreadyMember
	}
	record := memberRecord{
		ID:          id,
		ChatID:      int64(chatID),
		UserID:      int64(userID),
		IsChatAdmin: isAdmin,
		Color:       domain.DefaultColor,
	}
	if err = setRecord(txn, memberKey(chatID, userID), record); err != nil {
		return memberRecord{}, err
	}
	return record, txn.Set(membershipKey(userID, chatID), nil)
}

func deleteInvite(txn *badger.Txn, chatID domain.ChatID, userID domain.UserID) error {
	invited, err := exists(txn, inviteKey(chatID, userID))
	if err != nil {
		return err
	}
	if !invited {
		return errors.ErrInviteNotFound
	}
	if err = txn.Delete(inviteKey(chatID, userID)); err != nil {
		return err
	}
	return txn.Delete(invitationKey(userID, chatID))
}

// ensureAnotherAdmin fails with ErrLastAdmin when userID is the only admin
// left in a group chat.
func ensureAnotherAdmin(txn *badger.Txn, chatID domain.ChatID, userID domain.UserID) error {
	var chat chatRecord
	if err := getRecord(txn, chatKey(chatID), &chat); err != nil {
		return notFound(err, errors.ErrChatNotFound)
	}
	if !chat.IsGroup {
		return nil
	}
	members, err := scanRecords[memberRecord](txn, memberPrefix(chatID))
	if err != nil {
		return err
	}
	others := lo.CountBy(members, func(m memberRecord) bool {
		return m.IsChatAdmin && m.UserID != int64(userID)
	})
	if others == 0 {
		return errors.ErrLastAdmin
	}
	return nil
}

func requireUser(txn *badger.Txn, userID domain.UserID) error {
	found, err := exists(txn, userKey(userID))
	if err != nil {
		return err
	}
	if !found {
		return errors.ErrUserNotFound
	}
	return nil
}

// notFound maps badger.ErrKeyNotFound to the given domain error and leaves
// every other error as is.
func notFound(err error, target error) error {
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return target
	}
	return err
}

func toChat(record chatRecord) domain.Chat {
	return domain.Chat{ID: domain.ChatID(record.ID), Name: record.Name, IsGroup: record.IsGroup}
}

func toMember(record memberRecord) domain.ChatMember {
	return domain.ChatMember{
		ID:          record.ID,
		ChatID:      domain.ChatID(record.ChatID),
		UserID:      domain.UserID(record.UserID),
		IsChatAdmin: record.IsChatAdmin,
		Color:       record.Color,
	}
}

func toInvite(record inviteRecord) domain.ChatInvite {
	return domain.ChatInvite{
		ID:     record.ID,
		ChatID: domain.ChatID(record.ChatID),
		UserID: domain.UserID(record.UserID),
	}
}
