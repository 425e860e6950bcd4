package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/tripledger/tripledger/internal/api"
	"github.com/tripledger/tripledger/internal/auth"
	"github.com/tripledger/tripledger/internal/config"
	"github.com/tripledger/tripledger/internal/service"
	"github.com/tripledger/tripledger/internal/storage/sqlite"
	"github.com/tripledger/tripledger/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	server := api.NewServer(
		service.NewAuthService(authenticator, jwtManager),
		service.NewTripService(store),
		service.NewExpenseService(store),
		service.NewTransferService(store),
		service.NewInviteService(store),
		jwtManager,
	)

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("server starting", "address", addr)
	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
