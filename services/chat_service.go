package services

import (
	"chat-poll/auth"
	"chat-poll/contract"
	"chat-poll/domain"
	"chat-poll/domain/event"
	"chat-poll/errors"
	"chat-poll/repositories"
	stderrors "errors"
	"log/slog"
	"strings"
	"time"
)

type IChatService interface {
	CreateDM(identity auth.Identity, targetTag string) (domain.Chat, error)
	CreateGroup(identity auth.Identity, name string) (domain.Chat, error)
	Rename(identity auth.Identity, chatID domain.ChatID, name string) error
	Invite(identity auth.Identity, chatID domain.ChatID, targetTag string) error
	Accept(identity auth.Identity, chatID domain.ChatID) error
	Reject(identity auth.Identity, chatID domain.ChatID) error
	Promote(identity auth.Identity, chatID domain.ChatID, targetTag string) error
	Kick(identity auth.Identity, chatID domain.ChatID, targetTag string) error
	ListChats(identity auth.Identity) ([]domain.Chat, error)
	ListMembers(identity auth.Identity, chatID domain.ChatID) ([]domain.ChatMember, error)
	ListInvites(identity auth.Identity) ([]domain.Chat, error)
	State(chatID domain.ChatID, userID domain.UserID) (domain.MembershipState, error)
}

// ChatService drives the per (chat, user) membership state machine:
// NONE -> INVITED -> MEMBER -> ADMIN, back to NONE by reject or kick.
type ChatService struct {
	users     repositories.IUserRepository
	chats     repositories.IChatRepository
	guards    Guards
	notifier  contract.INotifier
	publisher contract.IPublisher
	log       *slog.Logger
}

func NewChatService(users repositories.IUserRepository, chats repositories.IChatRepository,
	notifier contract.INotifier, publisher contract.IPublisher, log *slog.Logger) *ChatService {
	return &ChatService{
		users:     users,
		chats:     chats,
		guards:    NewGuards(chats),
		notifier:  notifier,
		publisher: publisher,
		log:       log,
	}
}

func (s *ChatService) CreateDM(identity auth.Identity, targetTag string) (domain.Chat, error) {
	if err := RequireAuthenticated(identity); err != nil {
		return domain.Chat{}, err
	}
	target, err := s.users.GetUserByTag(targetTag)
	if err != nil {
		return domain.Chat{}, err
	}
	if target.ID == identity.UserID {
		return domain.Chat{}, errors.ErrSelfDM
	}
	chat, err := s.chats.CreateDM(identity.UserID, target.ID)
	if err != nil {
		return domain.Chat{}, err
	}
	s.log.Debug("DM created", "chat_id", chat.ID, "between", []domain.UserID{identity.UserID, target.ID})
	return chat, nil
}

func (s *ChatService) CreateGroup(identity auth.Identity, name string) (domain.Chat, error) {
	if err := RequireAuthenticated(identity); err != nil {
		return domain.Chat{}, err
	}
	if strings.TrimSpace(name) == "" {
		return domain.Chat{}, errors.ErrEmptyName
	}
	chat, err := s.chats.CreateGroup(name, identity.UserID)
	if err != nil {
		return domain.Chat{}, err
	}
	s.log.Debug("Group created", "chat_id", chat.ID, "creator", identity.UserID)
	return chat, nil
}

func (s *ChatService) Rename(identity auth.Identity, chatID domain.ChatID, name string) error {
	if err := s.guards.RequireAdmin(chatID, identity); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return errors.ErrEmptyName
	}
	if _, err := s.requireGroup(chatID); err != nil {
		return err
	}
	return s.chats.RenameChat(chatID, name)
}

// Invite moves the target from NONE to INVITED.
func (s *ChatService) Invite(identity auth.Identity, chatID domain.ChatID, targetTag string) error {
	if err := s.guards.RequireAdmin(chatID, identity); err != nil {
		return err
	}
	if _, err := s.requireGroup(chatID); err != nil {
		return err
	}
	target, err := s.users.GetUserByTag(targetTag)
	if err != nil {
		return err
	}
	if _, err = s.chats.CreateInvite(chatID, target.ID); err != nil {
		return err
	}
	s.log.Debug("User invited", "chat_id", chatID, "user_id", target.ID, "by", identity.UserID)
	return nil
}

// Accept moves the caller from INVITED to MEMBER. Without an invite the
// caller is refused, global admins included.
func (s *ChatService) Accept(identity auth.Identity, chatID domain.ChatID) error {
	if err := RequireAuthenticated(identity); err != nil {
		return err
	}
	_, err := s.chats.AcceptInvite(chatID, identity.UserID)
	if stderrors.Is(err, errors.ErrInviteNotFound) {
		return errors.ErrUnauthorized
	}
	return err
}

// Reject moves the caller from INVITED back to NONE.
func (s *ChatService) Reject(identity auth.Identity, chatID domain.ChatID) error {
	if err := RequireAuthenticated(identity); err != nil {
		return err
	}
	err := s.chats.RemoveInvite(chatID, identity.UserID)
	if stderrors.Is(err, errors.ErrInviteNotFound) {
		return errors.ErrUnauthorized
	}
	return err
}

func (s *ChatService) Promote(identity auth.Identity, chatID domain.ChatID, targetTag string) error {
	if err := s.guards.RequireAdmin(chatID, identity); err != nil {
		return err
	}
	if _, err := s.requireGroup(chatID); err != nil {
		return err
	}
	target, err := s.users.GetUserByTag(targetTag)
	if err != nil {
		return err
	}
	return s.chats.SetChatAdmin(chatID, target.ID, true)
}

// Kick removes the target's membership. Pollers of the chat are woken so
// that a poll held by the kicked user ends promptly.
func (s *ChatService) Kick(identity auth.Identity, chatID domain.ChatID, targetTag string) error {
	if err := s.guards.RequireAdmin(chatID, identity); err != nil {
		return err
	}
	if _, err := s.requireGroup(chatID); err != nil {
		return err
	}
	target, err := s.users.GetUserByTag(targetTag)
	if err != nil {
		return err
	}
	if err = s.chats.RemoveMember(chatID, target.ID); err != nil {
		return err
	}
	s.notifier.Broadcast(chatID)
	s.publisher.Publish(event.MemberRemoved{Chat: chatID, User: target.ID, By: identity.UserID, At: time.Now().UTC()})
	return nil
}

func (s *ChatService) ListChats(identity auth.Identity) ([]domain.Chat, error) {
	if err := RequireAuthenticated(identity); err != nil {
		return nil, err
	}
	return s.chats.ListChats(identity.UserID)
}

func (s *ChatService) ListMembers(identity auth.Identity, chatID domain.ChatID) ([]domain.ChatMember, error) {
	if err := s.guards.RequireMember(chatID, identity); err != nil {
		return nil, err
	}
	return s.chats.ListMembers(chatID)
}

func (s *ChatService) ListInvites(identity auth.Identity) ([]domain.Chat, error) {
	if err := RequireAuthenticated(identity); err != nil {
		return nil, err
	}
	return s.chats.ListUserInvites(identity.UserID)
}

// State reports where a (chat, user) pair stands in the state machine.
func (s *ChatService) State(chatID domain.ChatID, userID domain.UserID) (domain.MembershipState, error) {
	member, err := s.chats.GetMember(chatID, userID)
	if err == nil {
		if member.IsChatAdmin {
			return domain.StateAdmin, nil
		}
		return domain.StateMember, nil
	}
	if !stderrors.Is(err, errors.ErrNotMember) {
		return domain.StateNone, err
	}
	_, err = s.chats.GetInvite(chatID, userID)
	switch {
	case err == nil:
		return domain.StateInvited, nil
	case stderrors.Is(err, errors.ErrInviteNotFound):
		return domain.StateNone, nil
	default:
		return domain.StateNone, err
	}
}

func (s *ChatService) requireGroup(chatID domain.ChatID) (domain.Chat, error) {
	chat, err := s.chats.GetChat(chatID)
	if err != nil {
		return domain.Chat{}, err
	}
	if !chat.IsGroup {
		return domain.Chat{}, errors.ErrNotGroup
	}
	return chat, nil
}
