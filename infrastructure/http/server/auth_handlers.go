package server

import (
	"chat-poll/errors"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var registerFlags = []struct {
	err  error
	flag string
}{
	{errors.ErrTagTaken, "tag-taken"},
	{errors.ErrPasswordMismatch, "password-mismatch"},
	{errors.ErrInvalidTag, "invalid-tag"},
	{errors.ErrInvalidPassword, "password-weak"},
}

func (s *Server) login(c *gin.Context) {
	fields, ok := postForms(c, "tag", "password")
	if !ok {
		badRequest(c)
		return
	}
	user, err := s.deps.Auth.Login(fields[0], fields[1])
	if stderrors.Is(err, errors.ErrInvalidCredentials) {
		c.Redirect(http.StatusFound, "/login?check-credentials")
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	if err = s.writeSession(c, user.ID, c.GetString(requestTokenKey)); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) register(c *gin.Context) {
	fields, ok := postForms(c, "tag", "password", "password-again")
	if !ok {
		badRequest(c)
		return
	}
	_, err := s.deps.Auth.Register(fields[0], fields[1], fields[2])
	for _, known := range registerFlags {
		if stderrors.Is(err, known.err) {
			c.Redirect(http.StatusFound, "/register?"+known.flag)
			return
		}
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// logout drops the identity but keeps the request token of the session.
func (s *Server) logout(c *gin.Context) {
	if err := s.writeSession(c, 0, c.GetString(requestTokenKey)); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) updateProfile(c *gin.Context) {
	description, ok := c.GetPostForm("description")
	if !ok {
		badRequest(c)
		return
	}
	if err := s.deps.Auth.UpdateDescription(identity(c), description); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}
