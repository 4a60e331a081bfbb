package server

import (
	"chat-poll/auth"
	"chat-poll/domain"
	"chat-poll/errors"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) createDM(c *gin.Context) {
	tag, ok := c.GetPostForm("tag")
	if !ok {
		badRequest(c)
		return
	}
	chat, err := s.deps.Chats.CreateDM(identity(c), tag)
	switch {
	case stderrors.Is(err, errors.ErrUserNotFound):
		c.Redirect(http.StatusFound, "/?create-dm&no-user")
	case stderrors.Is(err, errors.ErrDMExists):
		c.Redirect(http.StatusFound, "/?create-dm&dm-exists")
	case stderrors.Is(err, errors.ErrSelfDM):
		c.Redirect(http.StatusFound, "/?create-dm&self-dm")
	case err != nil:
		s.fail(c, err)
	default:
		c.Redirect(http.StatusFound, chatURL(chat.ID))
	}
}

func (s *Server) createGroup(c *gin.Context) {
	name, ok := c.GetPostForm("name")
	if !ok {
		badRequest(c)
		return
	}
	chat, err := s.deps.Chats.CreateGroup(identity(c), name)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, chatURL(chat.ID))
}

func (s *Server) invite(c *gin.Context) {
	fields, ok := postForms(c, "tag", "chat_id")
	if !ok {
		badRequest(c)
		return
	}
	chatID, ok := parseChatID(fields[1])
	if !ok {
		badRequest(c)
		return
	}
	err := s.deps.Chats.Invite(identity(c), chatID, fields[0])
	switch {
	case stderrors.Is(err, errors.ErrAlreadyInvited):
		c.Redirect(http.StatusFound, chatURL(chatID, "invite", "has-invite"))
	case stderrors.Is(err, errors.ErrAlreadyMember):
		c.Redirect(http.StatusFound, chatURL(chatID, "invite", "is-member"))
	case stderrors.Is(err, errors.ErrUserNotFound):
		c.Redirect(http.StatusFound, chatURL(chatID, "invite", "no-user"))
	case err != nil:
		s.fail(c, err)
	default:
		c.Redirect(http.StatusFound, chatURL(chatID))
	}
}

func (s *Server) acceptInvite(c *gin.Context) {
	chatID, ok := parseChatID(c.PostForm("chat_id"))
	if !ok {
		badRequest(c)
		return
	}
	if err := s.deps.Chats.Accept(identity(c), chatID); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, chatURL(chatID))
}

// rejectInvite goes back to the chat named by ?return= when there is one.
func (s *Server) rejectInvite(c *gin.Context) {
	chatID, ok := parseChatID(c.PostForm("chat_id"))
	if !ok {
		badRequest(c)
		return
	}
	if err := s.deps.Chats.Reject(identity(c), chatID); err != nil {
		s.fail(c, err)
		return
	}
	if back, ok := parseChatID(c.Query("return")); ok {
		c.Redirect(http.StatusFound, chatURL(back))
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) renameGroup(c *gin.Context) {
	fields, ok := postForms(c, "name", "chat_id")
	if !ok {
		badRequest(c)
		return
	}
	chatID, ok := parseChatID(fields[1])
	if !ok {
		badRequest(c)
		return
	}
	if err := s.deps.Chats.Rename(identity(c), chatID, fields[0]); err != nil {
		if stderrors.Is(err, errors.ErrEmptyName) {
			c.String(http.StatusBadRequest, "Name too short.")
			return
		}
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, chatURL(chatID, "settings"))
}

// kickMember treats an unknown tag or a user outside the chat as a no-op.
func (s *Server) kickMember(c *gin.Context) {
	s.manageMember(c, s.deps.Chats.Kick)
}

func (s *Server) promoteMember(c *gin.Context) {
	s.manageMember(c, s.deps.Chats.Promote)
}

func (s *Server) manageMember(c *gin.Context, action func(auth.Identity, domain.ChatID, string) error) {
	fields, ok := postForms(c, "tag", "chat_id")
	if !ok {
		badRequest(c)
		return
	}
	chatID, ok := parseChatID(fields[1])
	if !ok {
		badRequest(c)
		return
	}
	err := action(identity(c), chatID, fields[0])
	switch {
	case err == nil, stderrors.Is(err, errors.ErrUserNotFound), stderrors.Is(err, errors.ErrNotMember):
		c.Redirect(http.StatusFound, chatURL(chatID, "settings"))
	case stderrors.Is(err, errors.ErrLastAdmin):
		c.Redirect(http.StatusFound, chatURL(chatID, "settings", "last-admin"))
	default:
		s.fail(c, err)
	}
}
