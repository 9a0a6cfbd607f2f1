// Command arthneeti runs the Arth-Neeti game server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/arthneeti/arthneeti/internal/advisor"
	"github.com/arthneeti/arthneeti/internal/api"
	"github.com/arthneeti/arthneeti/internal/config"
	"github.com/arthneeti/arthneeti/internal/deck"
	"github.com/arthneeti/arthneeti/internal/engine"
	"github.com/arthneeti/arthneeti/internal/entropy"
	"github.com/arthneeti/arthneeti/internal/llm"
	"github.com/arthneeti/arthneeti/internal/market"
	"github.com/arthneeti/arthneeti/internal/persistence"
)

func main() {
	// Text logs on a terminal, JSON when piped to a collector.
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler
	if isatty.IsTerminal(os.Stdout.Fd()) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("Arth-Neeti financial literacy game server")

	dbPath := envOrDefault("ARTHNEETI_DB", "data/arthneeti.db")
	apiPort := envIntOrDefault("ARTHNEETI_PORT", 8080)
	geminiKey := os.Getenv("GEMINI_API_KEY")
	adminKey := os.Getenv("ARTHNEETI_ADMIN_KEY")

	os.MkdirAll(filepath.Dir(dbPath), 0755)
	store, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("database opened", "path", dbPath)

	ctx := context.Background()
	llmClient, err := llm.NewClient(ctx, geminiKey)
	if err != nil {
		slog.Error("failed to create LLM client", "error", err)
		os.Exit(1)
	}
	if llmClient.Enabled() {
		slog.Info("LLM client enabled (Gemini)")
	} else {
		slog.Warn("GEMINI_API_KEY not set; AI scenarios, advice, and reports use deterministic fallbacks")
	}
	if adminKey == "" {
		slog.Warn("ARTHNEETI_ADMIN_KEY not set; admin endpoints will be disabled")
	}

	cfg := config.Default()
	rng := entropy.NewCrypto()
	sim := market.NewSimulator(cfg, rng)
	adv := advisor.New(llmClient, rng)
	eng := engine.New(cfg, store, deck.Builtin(), sim, adv, rng, llmClient, engine.Options{})

	server := &api.Server{
		Eng:      eng,
		Store:    store,
		Port:     apiPort,
		AdminKey: adminKey,
	}
	if llmClient.Enabled() {
		server.Translator = llmClient
	}
	server.Start()

	fmt.Printf("Arth-Neeti is live: http://localhost:%d/api/v1/status\n", apiPort)
	fmt.Println("Serving... (Ctrl+C to stop)")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
