package services

import (
	"chat-poll/auth"
	"chat-poll/contract"
	"chat-poll/domain"
	"chat-poll/domain/event"
	"chat-poll/errors"
	"chat-poll/moderation"
	"chat-poll/repositories"
	"chat-poll/search"
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"
)

// Censor rewrites message content before it is stored.
type Censor interface {
	Censor(content string) (string, []string)
}

// Searcher finds message ids of a chat matching free text.
type Searcher interface {
	Search(ctx context.Context, chatID domain.ChatID, terms string, limit int) ([]domain.MessageID, error)
}

type MessageConfig struct {
	PollTimeout      time.Duration
	PollInterval     time.Duration
	MaxContentLength int
	SearchLimit      int
	SearchMaxLimit   int
}

type IMessageService interface {
	Send(identity auth.Identity, chatID domain.ChatID, content string) (domain.MessageID, error)
	Poll(ctx context.Context, identity auth.Identity, chatID domain.ChatID, lastSeen domain.MessageID) ([]domain.MessageView, error)
	History(identity auth.Identity, chatID domain.ChatID) ([]domain.MessageView, error)
	Search(ctx context.Context, identity auth.Identity, chatID domain.ChatID, rawQuery string) ([]domain.MessageView, error)
}

type MessageService struct {
	users     repositories.IUserRepository
	messages  repositories.IMessageRepository
	guards    Guards
	notifier  contract.INotifier
	publisher contract.IPublisher
	searcher  Searcher
	censor    Censor
	config    MessageConfig
	log       *slog.Logger
}

func NewMessageService(users repositories.IUserRepository, chats repositories.IChatRepository,
	messages repositories.IMessageRepository, notifier contract.INotifier, publisher contract.IPublisher,
	searcher Searcher, config MessageConfig, log *slog.Logger) *MessageService {
	if config.PollInterval <= 0 {
		config.PollInterval = config.PollTimeout
	}
	return &MessageService{
		users:     users,
		messages:  messages,
		guards:    NewGuards(chats),
		notifier:  notifier,
		publisher: publisher,
		searcher:  searcher,
		config:    config,
		log:       log,
	}
}

// WithCensor enables moderation of message content.
func (s *MessageService) WithCensor(censor Censor) *MessageService {
	s.censor = censor
	return s
}

// Send appends a message and wakes the chat's pollers once it is committed.
func (s *MessageService) Send(identity auth.Identity, chatID domain.ChatID, content string) (domain.MessageID, error) {
	if err := s.guards.RequireMember(chatID, identity); err != nil {
		return 0, err
	}
	if strings.TrimSpace(content) == "" {
		return 0, errors.ErrEmptyContent
	}
	if s.config.MaxContentLength > 0 && utf8.RuneCountInString(content) > s.config.MaxContentLength {
		return 0, errors.ErrContentTooLong
	}

	stored := content
	var censored []string
	if s.censor != nil {
		stored, censored = s.censor.Censor(content)
	}

	message, err := s.messages.AppendMessage(chatID, identity.UserID, stored)
	if stderrors.Is(err, errors.ErrNotMember) {
		// Kicked between the guard and the write
		return 0, errors.ErrUnauthorized
	}
	if err != nil {
		return 0, err
	}

	s.notifier.Broadcast(chatID)
	s.publisher.Publish(event.MessageAppended{
		ID:      message.ID,
		Chat:    chatID,
		Author:  identity.UserID,
		Content: message.Content,
		At:      message.Created,
	})
	if len(censored) > 0 {
		s.publisher.Publish(event.MessageCensored{
			Chat:     chatID,
			Author:   identity.UserID,
			Words:    censored,
			Language: moderation.DetectLanguage(content),
			At:       message.Created,
		})
	}
	return message.ID, nil
}

// Poll blocks until the chat holds messages newer than lastSeen and returns
// them ascending. It returns an empty result once PollTimeout elapsed and
// ctx's error when the caller went away. Membership is checked before every
// read, so a member kicked mid-poll gets ErrUnauthorized.
func (s *MessageService) Poll(ctx context.Context, identity auth.Identity, chatID domain.ChatID, lastSeen domain.MessageID) ([]domain.MessageView, error) {
	if lastSeen < 0 {
		lastSeen = 0
	}
	pollCtx, cancel := context.WithTimeout(ctx, s.config.PollTimeout)
	defer cancel()
	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for {
		if err := s.guards.RequireMember(chatID, identity); err != nil {
			return nil, err
		}

		// Subscribe before reading: an append committed after the read
		// closes this channel.
		wake, leave := s.notifier.Wait(chatID)
		messages, err := s.newMessages(chatID, lastSeen)
		if err != nil || len(messages) > 0 {
			leave()
			if err != nil {
				return nil, err
			}
			return s.annotate(messages), nil
		}

		select {
		case <-wake:
			leave()
		case <-ticker.C:
			leave()
		case <-pollCtx.Done():
			leave()
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return nil, nil
		}
	}
}

func (s *MessageService) newMessages(chatID domain.ChatID, lastSeen domain.MessageID) ([]domain.Message, error) {
	latest, err := s.messages.LatestMessageID(chatID)
	if err != nil || latest <= lastSeen {
		return nil, err
	}
	return s.messages.GetMessagesSince(chatID, lastSeen)
}

// History returns every message of the chat without waiting.
func (s *MessageService) History(identity auth.Identity, chatID domain.ChatID) ([]domain.MessageView, error) {
	if err := s.guards.RequireMember(chatID, identity); err != nil {
		return nil, err
	}
	messages, err := s.messages.GetMessagesSince(chatID, 0)
	if err != nil {
		return nil, err
	}
	return s.annotate(messages), nil
}

// Search runs a full-text query such as "lunch --limit 5" over one chat.
func (s *MessageService) Search(ctx context.Context, identity auth.Identity, chatID domain.ChatID, rawQuery string) ([]domain.MessageView, error) {
	if err := s.guards.RequireMember(chatID, identity); err != nil {
		return nil, err
	}
	query := search.NewSearchQuery(rawQuery, s.config.SearchLimit, s.config.SearchMaxLimit)
	if query.IsEmpty() {
		return nil, errors.ErrBadRequest
	}
	ids, err := s.searcher.Search(ctx, chatID, query.Terms, query.Limit)
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(ids))
	for _, id := range ids {
		message, err := s.messages.GetMessage(chatID, id)
		if stderrors.Is(err, errors.ErrMessageNotFound) {
			s.log.Warn("Indexed message missing from storage", "chat_id", chatID, "message_id", id)
			continue
		}
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return s.annotate(messages), nil
}

// annotate resolves author tags once per author. Authors that cannot be
// found are shown as "Unknown".
func (s *MessageService) annotate(messages []domain.Message) []domain.MessageView {
	tags := make(map[domain.UserID]string)
	views := make([]domain.MessageView, 0, len(messages))
	for _, message := range messages {
		tag, ok := tags[message.UserID]
		if !ok {
			tag = domain.UnknownAuthor
			if user, err := s.users.GetUserByID(message.UserID); err == nil {
				tag = user.Tag
			} else if !stderrors.Is(err, errors.ErrUserNotFound) {
				s.log.Warn("Author lookup failed", "user_id", message.UserID, "error", err)
			}
			tags[message.UserID] = tag
		}
		views = append(views, domain.MessageView{
			ID:       message.ID,
			Content:  message.Content,
			Username: tag,
			Created:  message.Created.Unix(),
		})
	}
	return views
}
