package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dkotelnikov/contacts/internal/db"
	"github.com/dkotelnikov/contacts/internal/handlers"
	"github.com/dkotelnikov/contacts/internal/handlers/middleware"
	"github.com/dkotelnikov/contacts/internal/logger"
	"github.com/dkotelnikov/contacts/internal/repository/postgres"
	redisrepo "github.com/dkotelnikov/contacts/internal/repository/redis"
	"github.com/dkotelnikov/contacts/internal/service/auth"
	"github.com/dkotelnikov/contacts/internal/service/auth/tokenmanager"
	"github.com/dkotelnikov/contacts/internal/service/contact"
	"github.com/dkotelnikov/contacts/internal/service/user"
)

// Key prefix for revoked token records in redis
const revocationPrefix = "contacts"

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler

	closeFns []func()
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	// Initialize logger
	logger, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	// Connect to redis that keeps the revocation records
	redisOpts, err := goredis.ParseURL(c.RedisURI)
	if err != nil {
		return nil, fmt.Errorf("error while parsing redis uri. Err: %w", err)
	}
	redisClient := goredis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error while connecting to redis. Err: %w", err)
	}

	// Initialize repositories
	storage := postgres.NewStorage(pool)
	ledger := redisrepo.NewRevocationLedger(redisClient, revocationPrefix)

	// Initialize services
	tokenManager, err := tokenmanager.New(tokenmanager.Config{
		SecretKey: c.SecretKey,
		TokenTTL:  c.TokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("error while creating token manager. Err: %w", err)
	}
	userService := user.NewService(auth.DefaultHasher, storage.User())
	contactService := contact.NewService(storage.Contact())
	authService, err := auth.NewService(auth.Config{}, tokenManager, storage.User(), ledger)
	if err != nil {
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}

	// Initialize handlers
	userHandler := handlers.NewUser(userService)
	authHandler := handlers.NewAuth(authService)
	contactHandler := handlers.NewContact(contactService)
	authMiddleware := middleware.AuthMiddleware(authService)

	mux := handlers.NewRouter(
		userHandler,
		authHandler,
		contactHandler,
		authMiddleware,
		middleware.LoggerMiddleware(logger),
	)

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
		closeFns: []func(){
			pool.Close,
			func() { _ = redisClient.Close() },
		},
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	defer func() {
		for _, closeFn := range s.closeFns {
			closeFn()
		}
	}()

	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			slog.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		slog.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	slog.Info("Starting server", "address", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
