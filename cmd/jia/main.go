// Package main provides the jia binary entry point.
// Jia is an AI productivity assistant gateway: it turns conversational
// messages into chat replies or structured project plans, backed by a
// capability-based model registry with ordered fallback.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/spf13/cobra"

	// Register LLM providers via init()
	_ "github.com/jia-labs/jia/llm/providers"

	"github.com/jia-labs/jia/assistant"
	"github.com/jia-labs/jia/config"
	"github.com/jia-labs/jia/intent"
	"github.com/jia-labs/jia/llm"
	"github.com/jia-labs/jia/model"
	"github.com/jia-labs/jia/plan"
	"github.com/jia-labs/jia/store"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "jia"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "jia",
		Short: "AI productivity assistant gateway",
		Long: `Jia is an AI productivity assistant gateway.

It provides:
- Conversational chat with bounded per-conversation history
- Project plan synthesis from free-form descriptions
- Scheduling recommendations
- A capability-based model registry with ordered fallback and circuit breaking

State lives in NATS JetStream KV buckets, or in memory when no NATS URL
is configured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, logLevel)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func run(configPath, logLevel string) error {
	// Configure logging
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := loadConfig(configPath, logger)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Build the model registry
	registry, err := buildRegistry(cfg)
	if err != nil {
		return fmt.Errorf("build model registry: %w", err)
	}

	client := llm.NewClient(registry,
		llm.WithLogger(logger),
		llm.WithTimeout(cfg.Model.Timeout))

	// Wire storage: NATS JetStream KV when configured, in-memory otherwise
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conversations, plans, cleanup, err := buildStores(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build stores: %w", err)
	}
	defer cleanup()

	synth := plan.NewSynthesizer(client, plan.WithLogger(logger))

	gateway := assistant.New(client, synth, conversations, plans,
		assistant.WithLogger(logger),
		assistant.WithThresholds(intent.Thresholds{
			MinWords:          cfg.Intent.MinWords,
			MinKeywordMatches: cfg.Intent.MinKeywords,
		}),
		assistant.WithHistoryWindow(cfg.History.PromptWindow))

	mux := http.NewServeMux()
	gateway.RegisterHTTPHandlers(cfg.Server.APIPrefix, mux)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Jia ready",
			"version", Version,
			"addr", cfg.Server.Addr,
			"api_prefix", cfg.Server.APIPrefix)
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("Shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func loadConfig(configPath string, logger *slog.Logger) (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.NewLoader(logger).Load()
}

func buildRegistry(cfg *config.Config) (*model.Registry, error) {
	if cfg.Model.RegistryFile != "" {
		return model.LoadFromFile(cfg.Model.RegistryFile)
	}
	return model.NewDefaultRegistry(), nil
}

// buildStores returns the conversation and plan stores plus a cleanup
// function that closes any underlying connection.
func buildStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.ConversationStore, store.PlanStore, func(), error) {
	if cfg.NATS.URL == "" {
		logger.Info("Using in-memory stores")
		conversations := store.NewMemoryConversationStore(store.WithHistoryLimit(cfg.History.Limit))
		return conversations, store.NewMemoryPlanStore(), func() {}, nil
	}

	nc, err := nats.Connect(cfg.NATS.URL, nats.Name(appName))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, nil, fmt.Errorf("create JetStream context: %w", err)
	}

	conversations, err := store.NewNATSConversationStore(ctx, js)
	if err != nil {
		nc.Close()
		return nil, nil, nil, err
	}
	conversations.SetHistoryLimit(cfg.History.Limit)

	plans, err := store.NewNATSPlanStore(ctx, js)
	if err != nil {
		nc.Close()
		return nil, nil, nil, err
	}

	logger.Info("Using NATS JetStream stores", "url", cfg.NATS.URL)
	return conversations, plans, nc.Close, nil
}
