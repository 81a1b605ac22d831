package main

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/coinpulse/backend/internal/api"
	appconfig "github.com/coinpulse/backend/internal/config"
	"github.com/coinpulse/backend/internal/content"
	"github.com/coinpulse/backend/internal/feedback"
	"github.com/coinpulse/backend/internal/insight"
	"github.com/coinpulse/backend/internal/user"
	"github.com/coinpulse/backend/pkg/llm"
	"github.com/coinpulse/backend/pkg/storage"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*configPath)
		},
	}
}

func runServe(configPath string) error {
	cfg, err := appconfig.Load(configPath)
	if err != nil {
		return err
	}

	db, err := storage.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx, user.Schema); err != nil {
		return err
	}
	if err := db.Migrate(ctx, feedback.Schema); err != nil {
		return err
	}

	uStore := user.NewStore(db)
	fStore := feedback.NewStore(db)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	timeout := cfg.Timeout.Std()

	tokens := content.NewTokenCache(cfg.Reddit.ClientID, cfg.Reddit.ClientSecret,
		cfg.Reddit.UserAgent, timeout)
	news := content.NewNewsSource(cfg.CryptoPanic.APIKey, timeout)
	memes := content.NewMemeSource(tokens, cfg.Reddit.UserAgent, timeout, rng)
	filter := content.NewMemeFilter(cfg.MemeFilter)
	aggregator := content.NewAggregator(news, memes, cfg.Reddit.Subreddits, filter, rng)

	// Insight generation degrades to the static table when no completion API
	// key is configured.
	var completions llm.Client
	if cfg.LLM.APIKey != "" {
		if completions, err = llm.NewClient(cfg.LLM); err != nil {
			return err
		}
		defer completions.Close()
	} else {
		slog.Warn("no completion API key configured, insights use static fallback")
	}
	insights := insight.NewGenerator(completions, rng)

	server := api.NewServer(uStore, fStore, aggregator, insights, cfg.Server.JWTSecret)
	handler := corsMiddleware(server.Routes(), cfg.Server.CORSOrigin)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: handler,
	}

	go func() {
		slog.Info("starting REST API server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// corsMiddleware allows the configured frontend origin.
func corsMiddleware(next http.Handler, origin string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
