package server

import (
	"chat-poll/domain"
	"chat-poll/errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// fail answers err as a short plain-text line. Unknown errors are logged
// and hidden behind a 500.
func (s *Server) fail(c *gin.Context, err error) {
	switch errors.KindOf(err) {
	case errors.KindBadRequest, errors.KindNotFound:
		c.String(http.StatusBadRequest, "Bad Request.")
	case errors.KindUnauthorized:
		c.String(http.StatusUnauthorized, "Unauthorized.")
	case errors.KindConflict:
		c.String(http.StatusConflict, "Conflict.")
	default:
		s.log.Error("Request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.String(http.StatusInternalServerError, "Internal Server Error.")
	}
}

func badRequest(c *gin.Context) {
	c.String(http.StatusBadRequest, "Bad Request.")
}

// postForms returns the named form fields, false when one is missing.
func postForms(c *gin.Context, names ...string) ([]string, bool) {
	values := make([]string, 0, len(names))
	for _, name := range names {
		value, ok := c.GetPostForm(name)
		if !ok {
			return nil, false
		}
		values = append(values, value)
	}
	return values, true
}

func parseChatID(raw string) (domain.ChatID, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return domain.ChatID(id), true
}

// chatURL builds "/?chat={id}" followed by bare query flags.
func chatURL(chatID domain.ChatID, flags ...string) string {
	url := fmt.Sprintf("/?chat=%d", chatID)
	for _, flag := range flags {
		url += "&" + flag
	}
	return url
}
