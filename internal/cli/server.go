package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trivia-board-service/internal/app"
	"trivia-board-service/internal/config"
	"trivia-board-service/internal/infra/memory"
	infrapostgres "trivia-board-service/internal/infra/postgres"
	infraredis "trivia-board-service/internal/infra/redis"
	infrasqlite "trivia-board-service/internal/infra/sqlite"
	transport "trivia-board-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the board server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia board server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	store, cleanup, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	service := app.NewGameService(ctx, store, logger)
	wsHandler := transport.NewWSHandler(service, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info().Str("port", finalPort).Msg("starting trivia board service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info().Msg("shutting down server...")
	case <-ctx.Done():
		logger.Info().Msg("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildStore picks the persistence backend from config: Redis first, then
// Postgres, then the local SQLite file, with an in-memory fallback so the
// game can always start.
func buildStore(ctx context.Context, cfg config.Config, logger zerolog.Logger) (app.BoardStore, func(), error) {
	slot := cfg.Storage.Slot

	if cfg.Redis.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis board store")
		return infraredis.NewBoardStore(client, slot), func() { client.Close() }, nil
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return nil, nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Msg("using postgres board store")
		return infrapostgres.NewBoardStore(pool, slot), pool.Close, nil
	}

	if cfg.SQLite.Path != "" {
		store, err := infrasqlite.NewBoardStore(cfg.SQLite.Path, slot)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("path", cfg.SQLite.Path).Msg("using sqlite board store")
		return store, func() { store.Close() }, nil
	}

	logger.Warn().Msg("no durable backend configured, board state will not survive restarts")
	return memory.NewBoardStore(slot), func() {}, nil
}
