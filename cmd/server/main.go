package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/jagmansidhu/DaRoommate/internal/auth"
	"github.com/jagmansidhu/DaRoommate/internal/config"
	"github.com/jagmansidhu/DaRoommate/internal/invite"
	"github.com/jagmansidhu/DaRoommate/internal/server"
	"github.com/jagmansidhu/DaRoommate/internal/service"
	"github.com/jagmansidhu/DaRoommate/internal/storage/sqlite"
	"github.com/jagmansidhu/DaRoommate/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.DBPath)

	dispatcher := invite.NewDispatcher(invite.LogSender{})
	defer dispatcher.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, 24*time.Hour)

	roomSvc := service.NewRoomService(store, dispatcher)
	locks := roomSvc.Locks()
	srv := server.New(
		roomSvc,
		service.NewChoreService(store, locks),
		service.NewUtilityService(store, locks),
		service.NewLedgerService(store, locks),
		service.NewGroceryService(store),
		jwtManager,
	)

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr: addr,
		// h2c allows HTTP/2 without TLS behind the reverse proxy.
		Handler:           h2c.NewHandler(srv.Router(cfg.GinMode), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
