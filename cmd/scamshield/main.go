package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"scamshield/internal/account"
	"scamshield/internal/brain"
	"scamshield/internal/community"
	"scamshield/internal/config"
	"scamshield/internal/core/ports"
	"scamshield/internal/handlers"
	"scamshield/internal/login"
	"scamshield/internal/scanner"
	"scamshield/internal/session"
	"scamshield/internal/storage"
	"scamshield/internal/ui/telegram"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()
	log.Println("🛡️  ScamShield starting...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, closeStore := openStore(ctx, cfg)
	defer closeStore()

	myBrain, err := brain.NewGeminiBrain(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("❌ AI gateway: %v", err)
	}

	var alerts ports.Notifier
	if cfg.AlertsEnabled() {
		n, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️  Telegram alerts disabled: %v", err)
		} else {
			alerts = n
			log.Println("📨 Telegram alerts enabled")
		}
	}

	router := session.NewRouter()
	accounts := account.NewStore(kv, cfg.AuthLatency)
	form := login.NewForm(accounts, func(username string) {
		u := router.Login(username)
		log.Printf("👤 %s logged in", u.Username)
	}, cfg.RegisterRedirectDelay)
	feed := community.NewFeed(myBrain, community.SeedPosts())
	scan := scanner.NewService(myBrain, alerts)

	h := handlers.New(router, form, feed, scan)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(h, cfg.AllowedOrigins, handlers.NewIPRateLimiter(cfg.ScanRatePerMinute)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("🚀 Listening on :%s", cfg.Port)
	if err := serve(ctx, srv, 10*time.Second); err != nil {
		log.Printf("❌ server: %v", err)
	}
	form.Close()
	feed.Wait()
	scan.Wait()
}

// serve runs srv until ctx is cancelled or the listener fails, then shuts it down.
// It returns the listener error, if any.
func serve(ctx context.Context, srv *http.Server, grace time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var err error
	select {
	case <-ctx.Done():
		log.Println("🛑 Shutting down...")
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		log.Printf("⚠️  shutdown: %v", serr)
	}
	return err
}

// openStore picks PostgreSQL, then Redis, then the JSON file, falling through
// whenever a configured backend cannot be reached.
func openStore(ctx context.Context, cfg *config.Config) (ports.KeyValueStore, func()) {
	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgresStorage(ctx, cfg.DatabaseURL)
		if err == nil {
			log.Println("🐘 Storage: PostgreSQL Connected")
			return pg, func() { pg.Close() }
		}
		log.Printf("⚠️  PostgreSQL unavailable: %v", err)
	}

	if cfg.RedisURL != "" {
		rs, err := storage.NewRedisStorage(ctx, cfg.RedisURL)
		if err == nil {
			log.Println("🟥 Storage: Redis Connected")
			return rs, func() { rs.Close() }
		}
		log.Printf("⚠️  Redis unavailable: %v", err)
	}

	js, err := storage.NewJSONStorage(cfg.StoragePath)
	if err != nil {
		log.Fatalf("❌ JSON storage: %v", err)
	}
	log.Println("📄 Storage: JSON File Mode")
	return js, func() {}
}
