package services

import (
	"chat-poll/auth"
	"chat-poll/domain"
	"chat-poll/errors"
	"chat-poll/repositories"
	stderrors "errors"

	"github.com/samber/lo"
)

// UserView is the public part of a user.
type UserView struct {
	ID          domain.UserID `json:"id"`
	Tag         string        `json:"tag"`
	Description string        `json:"description"`
}

// HomeView is everything the home page shows to a signed-in user.
type HomeView struct {
	Identity    *UserView                             `json:"user,omitempty"`
	Chats       []domain.Chat                         `json:"chats"`
	Members     map[domain.ChatID][]domain.ChatMember `json:"chat_members"`
	KnownUsers  map[domain.UserID]UserView            `json:"known_users"`
	Invites     []domain.Chat                         `json:"invites"`
	Messages    []domain.MessageView                  `json:"messages"`
	IsChatAdmin bool                                  `json:"is_chat_admin"`
}

type IHomeService interface {
	Home(identity auth.Identity, selected domain.ChatID) (HomeView, error)
}

type HomeService struct {
	users    repositories.IUserRepository
	chats    repositories.IChatRepository
	messages IMessageService
	guards   Guards
}

func NewHomeService(users repositories.IUserRepository, chats repositories.IChatRepository, messages IMessageService) *HomeService {
	return &HomeService{users: users, chats: chats, messages: messages, guards: NewGuards(chats)}
}

// Home builds the view of the identity. selected is the open chat, 0 for
// none; its messages are only filled in for members.
func (s *HomeService) Home(identity auth.Identity, selected domain.ChatID) (HomeView, error) {
	view := HomeView{
		Chats:      []domain.Chat{},
		Members:    map[domain.ChatID][]domain.ChatMember{},
		KnownUsers: map[domain.UserID]UserView{},
		Invites:    []domain.Chat{},
		Messages:   []domain.MessageView{},
	}
	if !identity.IsAuthenticated() {
		return view, nil
	}

	me, err := s.users.GetUserByID(identity.UserID)
	if err != nil {
		return view, err
	}
	view.Identity = lo.ToPtr(toUserView(me))

	chats, err := s.chats.ListChats(identity.UserID)
	if err != nil {
		return view, err
	}
	view.Chats = append(view.Chats, chats...)

	for _, chat := range chats {
		members, err := s.chats.ListMembers(chat.ID)
		if err != nil {
			return view, err
		}
		view.Members[chat.ID] = members
		for _, member := range members {
			if _, known := view.KnownUsers[member.UserID]; known {
				continue
			}
			user, err := s.users.GetUserByID(member.UserID)
			if stderrors.Is(err, errors.ErrUserNotFound) {
				continue
			}
			if err != nil {
				return view, err
			}
			view.KnownUsers[member.UserID] = toUserView(user)
		}
	}

	invites, err := s.chats.ListUserInvites(identity.UserID)
	if err != nil {
		return view, err
	}
	view.Invites = append(view.Invites, invites...)

	if _, open := view.Members[selected]; selected > 0 && open {
		if view.Messages, err = s.messages.History(identity, selected); err != nil {
			return view, err
		}
		if view.IsChatAdmin, err = s.guards.IsChatAdmin(selected, identity); err != nil {
			return view, err
		}
	}
	return view, nil
}

func toUserView(user domain.User) UserView {
	return UserView{ID: user.ID, Tag: user.Tag, Description: user.Description}
}
