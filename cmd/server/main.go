package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-core/contract"
	grpcserver "chat-core/infrastructure/grpc/server"
	httpserver "chat-core/infrastructure/http/server"
	"chat-core/infrastructure/storage"
	"chat-core/internal"
	"chat-core/moderation"
	"chat-core/notify"
	"chat-core/runtime"
	"chat-core/runtime/workers"
	"chat-core/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	store := storage.NewChatStore(db, log, config.LimitMessages, config.StoreConflictRetries)
	eventLog := storage.NewEventLog(db, log)

	// 3. Push provider, created once and closed last
	provider, err := notify.New(log, notify.Config{
		Kind:       config.PushProvider,
		WebhookURL: config.PushWebhookURL,
		Timeout:    config.PushTimeout,
	})
	if err != nil {
		return fmt.Errorf("push provider: %w", err)
	}
	defer func() { _ = provider.Close() }()

	moderator, err := buildModerator(log, config)
	if err != nil {
		return err
	}

	// 4. Live delivery & core
	registry := runtime.NewRegistry()
	fanout := runtime.NewFanout(log, registry, provider, config.SinkTimeout)
	fanoutWorker := workers.NewFanoutWorker(log, fanout, config.FanoutBufferSize)
	guard := services.NewAuthService(log, store)
	chatService := services.NewChatService(log, store, fanoutWorker, eventLog, moderator, guard)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. gRPC health
	grpcAddress := fmt.Sprintf("%s:%d", config.HTTPHost, config.GRPCPort)
	grpcListener, err := net.Listen("tcp", grpcAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", grpcAddress, err)
	}
	healthServer := grpcserver.NewHealthServer(log)
	healthWorker := workers.NewHealthWorker(log, store, healthServer.Status(), grpcserver.ServiceName, config.HealthInterval)

	// 7. Supervision
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(fanoutWorker, healthWorker)
	supervised := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supervised)
	}()

	// 8. HTTP
	httpAddress := fmt.Sprintf("%s:%d", config.HTTPHost, config.HTTPPort)
	srv := &http.Server{
		Addr:              httpAddress,
		Handler:           httpserver.NewServer(log, chatService, registry, config.ConnectionBufferSize).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 2)
	go func() {
		if err := healthServer.Serve(grpcListener); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()
	go func() {
		log.Info("Starting HTTP server", "address", httpAddress, "at", time.Now().UTC())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 9. Wait for Stop or Error
	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case runErr = <-errChan:
	}

	// 10. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown incomplete", "error", err)
	}
	healthServer.GracefulStop()
	stop()
	sup.Stop()
	<-supervised
	log.Info("Program stopped cleanly")
	return runErr
}

func buildModerator(log *slog.Logger, config internal.Config) (contract.Moderator, error) {
	if config.CensoredWordsDir == "" {
		return nil, nil
	}
	replacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return nil, err
	}
	data, err := runtime.NewCensoredLoader(os.DirFS(config.CensoredWordsDir)).LoadAll(".")
	if err != nil {
		return nil, fmt.Errorf("censored words: %w", err)
	}
	log.Info("Censored words loaded", "words", len(data.Words), "languages", data.Languages)
	return moderation.NewModerator(data.Words, replacement, log)
}
