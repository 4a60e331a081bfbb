package server

import (
	"chat-poll/auth"
	"chat-poll/domain"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	sessionCookie      = "session"
	requestTokenField  = "request_token"
	requestTokenHeader = "X-Request-Token"
	requestTokenKey    = "request_token"
)

// loggingMiddleware provides request logging.
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.log.Info("HTTP request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// sessionMiddleware makes sure every visitor holds a signed session with a
// request token, then resolves the session's user into the request's
// identity. The user is read on every request, so a deleted account or a
// changed admin flag takes effect immediately.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var claims *auth.SessionClaims
		if raw, err := c.Cookie(sessionCookie); err == nil {
			claims, _ = s.deps.Sessions.Parse(raw)
		}
		if claims == nil {
			claims = &auth.SessionClaims{RequestToken: auth.NewRequestToken()}
			if err := s.writeSession(c, 0, claims.RequestToken); err != nil {
				s.fail(c, err)
				c.Abort()
				return
			}
		}

		identity, err := s.deps.Auth.Resolve(domain.UserID(claims.UserID))
		if err != nil {
			s.fail(c, err)
			c.Abort()
			return
		}
		c.Set(requestTokenKey, claims.RequestToken)
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// requestTokenMiddleware rejects state-changing calls that do not echo the
// session's request token, as a form field, a JSON field or a header.
func (s *Server) requestTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := c.GetString(requestTokenKey)
		given := c.GetHeader(requestTokenHeader)
		if given == "" {
			if isJSON(c) {
				var body struct {
					RequestToken string `json:"request_token"`
				}
				if err := c.ShouldBindBodyWith(&body, binding.JSON); err == nil {
					given = body.RequestToken
				}
			} else {
				given = c.PostForm(requestTokenField)
			}
		}
		if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(given)) != 1 {
			c.String(http.StatusUnauthorized, "Unauthorized.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireIdentityMiddleware sends anonymous form posts to the login page
// and answers anonymous JSON calls with 401.
func (s *Server) requireIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity(c).IsAuthenticated() {
			c.Next()
			return
		}
		if isJSON(c) {
			c.String(http.StatusUnauthorized, "Unauthorized.")
		} else {
			c.Redirect(http.StatusFound, "/login")
		}
		c.Abort()
	}
}

func (s *Server) writeSession(c *gin.Context, userID domain.UserID, requestToken string) error {
	signed, err := s.deps.Sessions.Issue(userID, requestToken)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookie, signed, int(s.deps.Sessions.Duration().Seconds()), "/", "", s.config.SecureCookie, true)
	return nil
}

func identity(c *gin.Context) auth.Identity {
	return auth.FromContext(c.Request.Context())
}

func isJSON(c *gin.Context) bool {
	return c.ContentType() == binding.MIMEJSON
}
