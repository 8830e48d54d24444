package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"kondate/internal/config"
	"kondate/internal/db"
	"kondate/internal/db/mock"
	applog "kondate/internal/log"
	"kondate/internal/server"
)

func main() {
	if err := config.LoadDotenv(".env"); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if cfg.Logging.Level != "" {
		if err := applog.SetLevel(cfg.Logging.Level); err != nil {
			log.Fatalf("invalid log level %q: %v", cfg.Logging.Level, err)
		}
	}

	var database *gorm.DB
	if cfg.Database.UseMock {
		applog.Info(context.Background(), "using in-memory mock database")
		database, err = mock.New(context.Background())
		if err != nil {
			log.Fatalf("failed to initialize mock database: %v", err)
		}
	} else {
		database = db.MustConfigure(cfg.Database)
	}

	srv, err := server.New(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Session.Lifetime,
			CookieName:   cfg.Session.CookieName,
			CookieDomain: cfg.Session.CookieDomain,
			CookieSecure: cfg.Session.CookieSecure,
		},
		Database: database,
	})
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	go func() {
		applog.Info(context.Background(), "starting http server", "addr", cfg.Server.Addr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server encountered an error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	<-sigCh

	applog.Info(context.Background(), "shutting down http server")
	if err := srv.Stop(); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	_ = applog.Sync()
}
