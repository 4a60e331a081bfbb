package server

import (
	"chat-poll/auth"
	"chat-poll/domain"
	"net/http"
	goruntime "runtime"

	"github.com/gin-gonic/gin"
)

type sessionResponse struct {
	RequestToken string         `json:"request_token"`
	User         *auth.Identity `json:"user"`
}

func (s *Server) health(c *gin.Context) {
	details := gin.H{"goroutines": goruntime.NumGoroutine()}
	if s.deps.Process != nil {
		if stats, ok := s.deps.Process.Latest(); ok {
			details["process"] = stats
		}
	}
	if s.deps.Queues != nil {
		details["queues"] = s.deps.Queues.Latest()
	}
	if s.deps.Activity != nil {
		details["activity"] = s.deps.Activity.Snapshot()
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "details": details})
}

// session hands the request token to the client, which must echo it on
// every /api call.
func (s *Server) session(c *gin.Context) {
	response := sessionResponse{RequestToken: c.GetString(requestTokenKey)}
	if current := identity(c); current.IsAuthenticated() {
		response.User = &current
	}
	c.JSON(http.StatusOK, response)
}

// home returns the signed-in view; ?chat= selects the open chat.
func (s *Server) home(c *gin.Context) {
	var selected domain.ChatID
	if raw, ok := c.GetQuery("chat"); ok {
		if selected, ok = parseChatID(raw); !ok {
			badRequest(c)
			return
		}
	}
	view, err := s.deps.Home.Home(identity(c), selected)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
