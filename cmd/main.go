package main

import (
	"chat-poll/auth"
	"chat-poll/domain/event"
	"chat-poll/infrastructure/http/server"
	"chat-poll/internal"
	"chat-poll/moderation"
	"chat-poll/repositories"
	"chat-poll/runtime"
	"chat-poll/runtime/workers"
	"chat-poll/search"
	"chat-poll/services"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires every component and blocks until the server is shut down.
// Deferred closes run before main exits.
func run() error {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Storage
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	index, err := search.Open(config.BlugeFilepath, log)
	if err != nil {
		return fmt.Errorf("search index opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing search index...")
		_ = index.Close()
	}()

	users := repositories.NewUserRepository(db)
	chats := repositories.NewChatRepository(db)
	messages := repositories.NewMessageRepository(db)
	defer func() {
		if err := errors.Join(users.Close(), chats.Close(), messages.Close()); err != nil {
			log.Warn("Releasing id sequences failed", "error", err)
		}
	}()

	// 3. Event pipeline & workers
	events := make(chan event.DomainEvent, config.BufferSize)
	activity := runtime.NewActivity(log)
	heartbeat := workers.NewHeartbeatWorker(log, config.MetricInterval)
	capacity := workers.NewChannelCapacityWorker(log,
		[]workers.NamedChannel{{Name: "domain_events", Channel: events}},
		config.MetricInterval, config.LowCapacityThreshold)
	sup := workers.NewSupervisor(log)
	sup.Add(
		workers.NewEventFanout(log, events, config.SinkTimeout, index, activity),
		heartbeat,
		capacity,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	supervised := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supervised)
	}()

	// 4. Services
	notifier := runtime.NewNotifier()
	dispatcher := runtime.NewDispatcher(log, events)
	authService := services.NewAuthService(users, auth.NewHasher(auth.DefaultParams), log)
	chatService := services.NewChatService(users, chats, notifier, dispatcher, log)
	messageService := services.NewMessageService(users, chats, messages, notifier, dispatcher, index, services.MessageConfig{
		PollTimeout:      config.PollTimeout,
		PollInterval:     config.PollInterval,
		MaxContentLength: config.MaxContentLength,
		SearchLimit:      config.SearchLimit,
		SearchMaxLimit:   config.SearchMaxLimit,
	}, log)

	if config.CensorMessages {
		moderator, err := newModerator(config, log)
		if err != nil {
			return err
		}
		messageService.WithCensor(moderator)
	}

	if config.AdminTag != "" {
		created, err := authService.EnsureAdmin(config.AdminTag, config.AdminPassword)
		if err != nil {
			return fmt.Errorf("admin bootstrap failed: %w", err)
		}
		if created {
			log.Info("Global admin account created", "tag", config.AdminTag)
		}
	}

	// 5. HTTP server. Requests derive from baseCtx, cancelling it releases
	// every parked poller.
	handler := server.NewServer(log, server.Dependencies{
		Auth:     authService,
		Chats:    chatService,
		Messages: messageService,
		Home:     services.NewHomeService(users, chats, messageService),
		Sessions: auth.NewSessionManager(config.SessionSecret, config.AuthTokenDuration),
		Activity: activity,
		Process:  heartbeat,
		Queues:   capacity,
	}, server.Config{SecureCookie: config.SecureCookie}).Handler()

	baseCtx, cancelRequests := context.WithCancel(ctx)
	defer cancelRequests()
	address := net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
	httpServer := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      config.PollTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 6. Wait for a signal or a server failure
	wait := gfshutdown.GracefulShutdown(context.Background(), config.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Info("Shutting down HTTP server")
				cancelRequests()
				return httpServer.Shutdown(ctx)
			},
			"workers": func(ctx context.Context) error {
				sup.Stop()
				select {
				case <-supervised:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			},
		},
	)

	select {
	case err := <-errChan:
		return err
	case code := <-wait:
		if code != 0 {
			return fmt.Errorf("shutdown finished with code %d", code)
		}
	}
	log.Info("Program stopped cleanly")
	return nil
}

func newModerator(config internal.Config, log *slog.Logger) (*moderation.Moderator, error) {
	replacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return nil, err
	}
	censored, err := moderation.NewCensoredLoader().LoadAll()
	if err != nil {
		return nil, fmt.Errorf("censored words loading failed: %w", err)
	}
	log.Info("Moderation enabled", "words", len(censored.Words), "languages", censored.Languages)
	return moderation.NewModerator(censored.Words, replacement, log)
}
