package repositories

import (
	"chat-poll/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Create_And_Fetch_User(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	created, err := repository.CreateUser("alice", "hash", false)
	req.NoError(err)
	req.Positive(int64(created.ID))

	byTag, err := repository.GetUserByTag("alice")
	req.NoError(err)
	req.Equal(created, byTag)

	byID, err := repository.GetUserByID(created.ID)
	req.NoError(err)
	req.Equal(created, byID)
}

func Test_Create_User_With_Taken_Tag(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	_, err := repository.CreateUser("alice", "hash", false)
	req.NoError(err)
	_, err = repository.CreateUser("alice", "other", true)
	req.ErrorIs(err, errors.ErrTagTaken)
}

func Test_Unknown_User(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	_, err := repository.GetUserByTag("ghost")
	req.ErrorIs(err, errors.ErrUserNotFound)
	_, err = repository.GetUserByID(42)
	req.ErrorIs(err, errors.ErrUserNotFound)
	req.ErrorIs(repository.UpdateDescription(42, "hello"), errors.ErrUserNotFound)
}

func Test_Update_Description(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	created, err := repository.CreateUser("alice", "hash", false)
	req.NoError(err)
	req.NoError(repository.UpdateDescription(created.ID, "likes tea"))

	fetched, err := repository.GetUserByID(created.ID)
	req.NoError(err)
	req.Equal("likes tea", fetched.Description)
	req.Equal("hash", fetched.PasswordHash)
}
