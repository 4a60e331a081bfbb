package domain

// UserID identifies a registered user. Zero means "no user".
type UserID int64

// User is a registered account. Tag is the unique handle used for login
// and lookups; IsAdmin grants override rights across every chat.
type User struct {
	ID           UserID
	Tag          string
	Description  string
	PasswordHash string
	IsAdmin      bool
}
