package main

import (
	"log/slog"
	"os"

	"github.com/franceviagens/portal/internal/app"
	"github.com/franceviagens/portal/internal/config"
	"github.com/franceviagens/portal/internal/logging"
	"github.com/franceviagens/portal/internal/server"
)

// Version can be set at build time.
// Example: go build -ldflags "-X 'main.Version=1.2.0'"
var Version = "dev"

func main() {
	logging.New()

	cfg, err := config.New()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	s, err := server.New(app.New(cfg), Version)
	if err != nil {
		slog.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}

	if err := s.Start(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
