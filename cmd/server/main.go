package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/VitaminP8/socialgraph/graph"
	"github.com/VitaminP8/socialgraph/internal/config"
	"github.com/VitaminP8/socialgraph/internal/password"
	"github.com/VitaminP8/socialgraph/internal/reqctx"
	"github.com/VitaminP8/socialgraph/internal/subscription"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "socialgraph",
		Short:         "GraphQL API для пользователей, постов и комментариев",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var storageType, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP сервер",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(storageType)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = net.JoinHostPort("", cfg.Port)
			}
			return serve(cfg, addr)
		},
	}
	cmd.Flags().StringVar(&storageType, "storage", "", "тип хранилища: memory, postgres или mongo (по умолчанию STORAGE)")
	cmd.Flags().StringVar(&addr, "addr", "", "адрес HTTP сервера (по умолчанию :PORT)")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	var storageType string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Создать таблицы и уникальные индексы",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(storageType)
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			b, err := openBackend(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer b.close(context.Background())

			logger.Info("migration completed", "storage", cfg.Storage)
			return nil
		},
	}
	cmd.Flags().StringVar(&storageType, "storage", "", "тип хранилища: postgres или mongo")
	return cmd
}

func loadConfig(storageType string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if storageType != "" {
		cfg.Storage = storageType
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.IsDev() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func serve(cfg *config.Config, addr string) error {
	logger := newLogger(cfg)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	b, err := openBackend(startCtx, cfg, logger)
	cancel()
	if err != nil {
		return err
	}

	feed := subscription.NewSubscriptionManager()
	stopAudit := auditChanges(feed, logger)

	resolver := graph.NewResolver(b.stores, password.NewBcryptHasher(cfg.BcryptCost), feed, logger)
	exec := graph.NewExecutor(resolver, logger)
	exec.SetConcurrency(cfg.Concurrency)
	gql := graph.NewHandler(exec, logger, cfg.ComplexityLimit)

	mux := http.NewServeMux()
	mux.Handle("/query", gql)
	if cfg.IsDev() {
		// Страница с тестовым интерфейсом Playground
		mux.Handle("/", playground.Handler("GraphQL Playground", "/query"))
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", reqctx.HeaderRequestID},
		ExposedHeaders:   []string{reqctx.HeaderRequestID},
		AllowCredentials: false,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           reqctx.Middleware(logger)(corsHandler.Handler(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// запуск HTTP сервера; ListenAndServe блокирует до Shutdown, поэтому в горутине
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", addr, "storage", cfg.Storage, "transactions", cfg.Transactions)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		if err != nil {
			logger.Error("server failed", "error", err)
		}
	}

	logger.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	shutdownErr := server.Shutdown(shutdownCtx)
	stopAudit()
	b.close(shutdownCtx)

	if shutdownErr != nil {
		return shutdownErr
	}
	logger.Info("server stopped")
	return nil
}

// auditChanges пишет в лог каждое событие ленты изменений
func auditChanges(feed subscription.Manager, logger *slog.Logger) func() {
	topics := []subscription.Topic{subscription.TopicUser, subscription.TopicPost, subscription.TopicComment}
	cancels := make([]func(), 0, len(topics))

	for _, topic := range topics {
		ch, cancel := feed.Subscribe(topic)
		cancels = append(cancels, cancel)
		go func() {
			for ev := range ch {
				logger.Info("change",
					"entity", string(ev.Entity),
					"op", string(ev.Op),
					"id", ev.ID,
					"related", ev.Related,
				)
			}
		}()
	}

	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}
