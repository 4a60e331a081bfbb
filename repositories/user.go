//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"chat-poll/domain"
	"chat-poll/errors"
	stderrors "errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

type IUserRepository interface {
	CreateUser(tag, passwordHash string, isAdmin bool) (domain.User, error)
	GetUserByTag(tag string) (domain.User, error)
	GetUserByID(id domain.UserID) (domain.User, error)
	UpdateDescription(id domain.UserID, description string) error
}

type UserRepository struct {
	db  *badger.DB
	ids *sequence
}

func NewUserRepository(db *badger.DB) *UserRepository {
	return &UserRepository{db: db, ids: newSequence(db, "user")}
}

// Close returns the unused user ids leased from the store.
func (u *UserRepository) Close() error {
	return u.ids.release()
}

type userRecord struct {
	ID           int64  `cbor:"id"`
	Tag          string `cbor:"tag"`
	Description  string `cbor:"description"`
	PasswordHash string `cbor:"password_hash"`
	IsAdmin      bool   `cbor:"is_admin"`
}

// CreateUser persists a new user. The tag index key doubles as the
// uniqueness constraint: a second registration of the same tag fails with
// ErrTagTaken, even when both race.
func (u *UserRepository) CreateUser(tag, passwordHash string, isAdmin bool) (domain.User, error) {
	id, err := u.ids.next()
	if err != nil {
		return domain.User{}, fmt.Errorf("create user %q: %w", tag, err)
	}
	var created userRecord
	err = update(u.db, func(txn *badger.Txn) error {
		taken, err := exists(txn, tagKey(tag))
		if err != nil {
			return err
		}
		if taken {
			return errors.ErrTagTaken
		}
		created = userRecord{ID: id, Tag: tag, PasswordHash: passwordHash, IsAdmin: isAdmin}
		if err = setRecord(txn, userKey(domain.UserID(id)), created); err != nil {
			return err
		}
		return setRecord(txn, tagKey(tag), id)
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("create user %q: %w", tag, err)
	}
	return toUser(created), nil
}

func (u *UserRepository) GetUserByTag(tag string) (domain.User, error) {
	var record userRecord
	err := u.db.View(func(txn *badger.Txn) error {
		var id int64
		if err := getRecord(txn, tagKey(tag), &id); err != nil {
			return err
		}
		return getRecord(txn, userKey(domain.UserID(id)), &record)
	})
	if err != nil {
		return domain.User{}, userLookupError(err)
	}
	return toUser(record), nil
}

func (u *UserRepository) GetUserByID(id domain.UserID) (domain.User, error) {
	var record userRecord
	err := u.db.View(func(txn *badger.Txn) error {
		return getRecord(txn, userKey(id), &record)
	})
	if err != nil {
		return domain.User{}, userLookupError(err)
	}
	return toUser(record), nil
}

func (u *UserRepository) UpdateDescription(id domain.UserID, description string) error {
	err := update(u.db, func(txn *badger.Txn) error {
		var record userRecord
		if err := getRecord(txn, userKey(id), &record); err != nil {
			return err
		}
		record.Description = description
		return setRecord(txn, userKey(id), record)
	})
	if err != nil {
		return userLookupError(err)
	}
	return nil
}

func userLookupError(err error) error {
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return errors.ErrUserNotFound
	}
	return fmt.Errorf("user lookup: %w", err)
}

func toUser(record userRecord) domain.User {
	return domain.User{
		ID:           domain.UserID(record.ID),
		Tag:          record.Tag,
		Description:  record.Description,
		PasswordHash: record.PasswordHash,
		IsAdmin:      record.IsAdmin,
	}
}
