package server

import (
	"chat-poll/auth"
	"chat-poll/runtime"
	"chat-poll/runtime/workers"
	"chat-poll/services"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ActivityReporter interface {
	Snapshot() runtime.ActivitySnapshot
}

type ProcessReporter interface {
	Latest() (workers.ProcessStats, bool)
}

type QueueReporter interface {
	Latest() []workers.ChannelCapacity
}

// Dependencies are the services behind the HTTP surface. The reporters are
// optional and only feed /health.
type Dependencies struct {
	Auth     services.IAuthService
	Chats    services.IChatService
	Messages services.IMessageService
	Home     services.IHomeService
	Sessions auth.SessionManager
	Activity ActivityReporter
	Process  ProcessReporter
	Queues   QueueReporter
}

type Config struct {
	// SecureCookie marks the session cookie Secure, for deployments behind TLS.
	SecureCookie bool
}

type Server struct {
	deps   Dependencies
	config Config
	engine *gin.Engine
	log    *slog.Logger
}

func NewServer(log *slog.Logger, deps Dependencies, config Config) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{deps: deps, config: config, engine: gin.New(), log: log}

	s.engine.Use(gin.Recovery())
	s.engine.Use(s.loggingMiddleware())
	s.engine.Use(s.sessionMiddleware())
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.health)
	s.engine.GET("/session", s.session)
	s.engine.GET("/", s.home)
	s.engine.GET("/logout", s.logout)

	api := s.engine.Group("/api", s.requestTokenMiddleware())
	{
		api.POST("/login", s.login)
		api.POST("/register", s.register)

		protected := api.Group("", s.requireIdentityMiddleware())
		protected.POST("/profile", s.updateProfile)
		protected.POST("/create-dm", s.createDM)
		protected.POST("/create-group", s.createGroup)
		protected.POST("/send-message", s.sendMessage)
		protected.POST("/poll-messages", s.pollMessages)
		protected.POST("/search-messages", s.searchMessages)
		protected.POST("/invite", s.invite)
		protected.POST("/join/accept", s.acceptInvite)
		protected.POST("/join/reject", s.rejectInvite)

		group := protected.Group("/group")
		group.POST("/rename", s.renameGroup)
		group.POST("/kick", s.kickMember)
		group.POST("/promote", s.promoteMember)
	}
}
