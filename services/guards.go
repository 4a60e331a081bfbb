package services

import (
	"chat-poll/auth"
	"chat-poll/domain"
	"chat-poll/errors"
	"chat-poll/repositories"
	stderrors "errors"
)

// Guards answers who may do what in a chat. Every service operation calls
// the Require* checks it needs, in order, before touching state.
type Guards struct {
	chats repositories.IChatRepository
}

func NewGuards(chats repositories.IChatRepository) Guards {
	return Guards{chats: chats}
}

func IsAuthenticated(identity auth.Identity) bool {
	return identity.IsAuthenticated()
}

func (g Guards) IsChatMember(chatID domain.ChatID, userID domain.UserID) (bool, error) {
	if userID <= 0 {
		return false, nil
	}
	_, err := g.chats.GetMember(chatID, userID)
	switch {
	case stderrors.Is(err, errors.ErrNotMember):
		return false, nil
	case err != nil:
		return false, err
	default:
		return true, nil
	}
}

// IsChatAdmin is true for a member holding the chat admin flag and for any
// global admin, member or not.
func (g Guards) IsChatAdmin(chatID domain.ChatID, identity auth.Identity) (bool, error) {
	if !identity.IsAuthenticated() {
		return false, nil
	}
	if identity.IsAdmin {
		return true, nil
	}
	member, err := g.chats.GetMember(chatID, identity.UserID)
	switch {
	case stderrors.Is(err, errors.ErrNotMember):
		return false, nil
	case err != nil:
		return false, err
	default:
		return member.IsChatAdmin, nil
	}
}

func RequireAuthenticated(identity auth.Identity) error {
	if !identity.IsAuthenticated() {
		return errors.ErrUnauthorized
	}
	return nil
}

// RequireMember applies to global admins too: they read and write only the
// chats they belong to.
func (g Guards) RequireMember(chatID domain.ChatID, identity auth.Identity) error {
	if err := RequireAuthenticated(identity); err != nil {
		return err
	}
	member, err := g.IsChatMember(chatID, identity.UserID)
	if err != nil {
		return err
	}
	if !member {
		return errors.ErrUnauthorized
	}
	return nil
}

func (g Guards) RequireAdmin(chatID domain.ChatID, identity auth.Identity) error {
	if err := RequireAuthenticated(identity); err != nil {
		return err
	}
	admin, err := g.IsChatAdmin(chatID, identity)
	if err != nil {
		return err
	}
	if !admin {
		return errors.ErrUnauthorized
	}
	return nil
}
