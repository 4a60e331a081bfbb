package server

import (
	"chat-poll/domain"
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type pollRequest struct {
	ChatID        *int64 `json:"chat_id" binding:"required"`
	LastMessageID *int64 `json:"last_message_id" binding:"required"`
}

type searchRequest struct {
	ChatID *int64 `json:"chat_id" binding:"required"`
	Query  string `json:"query" binding:"required"`
}

func (s *Server) sendMessage(c *gin.Context) {
	fields, ok := postForms(c, "chat_id", "content")
	if !ok {
		badRequest(c)
		return
	}
	chatID, ok := parseChatID(fields[0])
	if !ok {
		badRequest(c)
		return
	}
	if _, err := s.deps.Messages.Send(identity(c), chatID, fields[1]); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, chatURL(chatID))
}

// pollMessages holds the request until new messages arrive. A timeout, a
// client that went away and a server shutting down all end with 204.
func (s *Server) pollMessages(c *gin.Context) {
	var req pollRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		badRequest(c)
		return
	}
	messages, err := s.deps.Messages.Poll(c.Request.Context(), identity(c),
		domain.ChatID(*req.ChatID), domain.MessageID(*req.LastMessageID))
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		s.log.Debug("Poll abandoned", "chat_id", *req.ChatID, "error", err)
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	if messages == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (s *Server) searchMessages(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		badRequest(c)
		return
	}
	messages, err := s.deps.Messages.Search(c.Request.Context(), identity(c), domain.ChatID(*req.ChatID), req.Query)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}
