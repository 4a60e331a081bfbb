package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")
	ErrEmptyWords  = fmt.Errorf("no words have been found")

	ErrBadRequest      = fmt.Errorf("bad request")
	ErrEmptyContent    = fmt.Errorf("message content is empty")
	ErrContentTooLong  = fmt.Errorf("message content is too long")
	ErrEmptyName       = fmt.Errorf("name too short")
	ErrNotGroup        = fmt.Errorf("chat is not a group")
	ErrInvalidTag      = fmt.Errorf("invalid tag")
	ErrInvalidPassword = fmt.Errorf("password does not meet complexity requirements")
	ErrSelfDM          = fmt.Errorf("cannot open a direct message with yourself")

	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidSession     = fmt.Errorf("invalid or expired session")

	ErrTagTaken         = fmt.Errorf("tag already taken")
	ErrPasswordMismatch = fmt.Errorf("passwords do not match")
	ErrDMExists         = fmt.Errorf("direct message already exists")
	ErrAlreadyInvited   = fmt.Errorf("user already invited")
	ErrAlreadyMember    = fmt.Errorf("user already a member")
	ErrLastAdmin        = fmt.Errorf("cannot remove the last admin of a group")

	ErrUserNotFound    = fmt.Errorf("user not found")
	ErrChatNotFound    = fmt.Errorf("chat not found")
	ErrInviteNotFound  = fmt.Errorf("invite not found")
	ErrNotMember       = fmt.Errorf("user is not a member of the chat")
	ErrMessageNotFound = fmt.Errorf("message not found")

	ErrTokenGeneration = fmt.Errorf("session token generation failed")
)
